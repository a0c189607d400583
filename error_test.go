package ldapname

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWrappedError tests that match the result code when an error is wrapped.
func TestWrappedError(t *testing.T) {
	resultCodes := []uint16{
		LDAPResultProtocolError,
		LDAPResultBusy,
		LDAPResultNoSuchAttribute,
	}

	tests := []struct {
		name     string
		err      error
		codes    []uint16
		expected bool
	}{
		// success
		{
			name: "a normal error",
			err: &Error{
				ResultCode: LDAPResultBusy,
			},
			codes:    resultCodes,
			expected: true,
		},

		{
			name: "a wrapped error",
			err: fmt.Errorf("wrap: %w", &Error{
				ResultCode: LDAPResultBusy,
			}),
			codes:    resultCodes,
			expected: true,
		},

		{
			name: "multiple wrapped error",
			err: fmt.Errorf("second: %w",
				fmt.Errorf("first: %w",
					&Error{
						ResultCode: LDAPResultNoSuchAttribute,
					},
				),
			),
			codes:    resultCodes,
			expected: true,
		},

		// failure
		{
			name: "not match a normal error",
			err: &Error{
				ResultCode: LDAPResultSuccess,
			},
			codes:    resultCodes,
			expected: false,
		},

		{
			name: "not match a wrapped error",
			err: fmt.Errorf("wrap: %w", &Error{
				ResultCode: LDAPResultNoSuchObject,
			}),
			codes:    resultCodes,
			expected: false,
		},

		{
			name:     "not an ldap error",
			err:      errors.New("plain"),
			codes:    resultCodes,
			expected: false,
		},

		{
			name:     "nil",
			err:      nil,
			codes:    resultCodes,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := IsErrorAnyOf(tt.err, tt.codes...)
			if tt.expected != actual {
				t.Errorf("expected %t, but got %t", tt.expected, actual)
			}
		})
	}
}

func TestMapResultCode(t *testing.T) {
	tests := []struct {
		code     uint16
		category error
	}{
		{LDAPResultOperationsError, ErrNaming},
		{LDAPResultProtocolError, ErrCommunication},
		{LDAPResultTimeLimitExceeded, ErrTimeLimitExceeded},
		{LDAPResultSizeLimitExceeded, ErrSizeLimitExceeded},
		{LDAPResultAuthMethodNotSupported, ErrAuthenticationNotSupported},
		{LDAPResultStrongAuthRequired, ErrAuthenticationNotSupported},
		{LDAPResultAdminLimitExceeded, ErrLimitExceeded},
		{LDAPResultUnavailableCriticalExtension, ErrOperationNotSupported},
		{LDAPResultNoSuchAttribute, ErrNoSuchAttribute},
		{LDAPResultUndefinedAttributeType, ErrInvalidAttributeIdentifier},
		{LDAPResultInappropriateMatching, ErrInvalidSearchFilter},
		{LDAPResultConstraintViolation, ErrInvalidAttributeValue},
		{LDAPResultAttributeOrValueExists, ErrAttributeInUse},
		{LDAPResultNoSuchObject, ErrNameNotFound},
		{LDAPResultInvalidDNSyntax, ErrInvalidName},
		{LDAPResultInvalidCredentials, ErrAuthentication},
		{LDAPResultInsufficientAccessRights, ErrNoPermission},
		{LDAPResultBusy, ErrServiceUnavailable},
		{LDAPResultUnavailable, ErrServiceUnavailable},
		{LDAPResultUnwillingToPerform, ErrOperationNotSupported},
		{LDAPResultNamingViolation, ErrInvalidName},
		{LDAPResultObjectClassViolation, ErrSchemaViolation},
		{LDAPResultNotAllowedOnNonLeaf, ErrContextNotEmpty},
		{LDAPResultEntryAlreadyExists, ErrNameAlreadyBound},
		{LDAPResultOther, ErrNaming},
	}

	for _, tt := range tests {
		t.Run(LDAPResultCodeMap[tt.code], func(t *testing.T) {
			err := MapResultCode(tt.code, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.category)
			assert.True(t, IsErrorWithCode(err, tt.code))
			assert.Contains(t, err.Error(), LDAPResultCodeMap[tt.code])

			var ldapErr *Error
			require.ErrorAs(t, err, &ldapErr)
			assert.Equal(t, tt.category, ldapErr.Category())
		})
	}
}

func TestMapResultCodeSuccess(t *testing.T) {
	assert.NoError(t, MapResultCode(LDAPResultSuccess, "ignored"))
}

func TestLimitExceededMatchesAllLimits(t *testing.T) {
	for _, code := range []uint16{LDAPResultAdminLimitExceeded, LDAPResultSizeLimitExceeded, LDAPResultTimeLimitExceeded} {
		assert.ErrorIs(t, MapResultCode(code, ""), ErrLimitExceeded)
	}
	assert.NotErrorIs(t, MapResultCode(LDAPResultBusy, ""), ErrLimitExceeded)
}

func TestMapResultCodeMessage(t *testing.T) {
	err := MapResultCode(LDAPResultBusy, "try later")
	assert.Equal(t, `LDAP Result Code 51 "Busy": try later`, err.Error())

	err = MapResultCode(99, "")
	assert.Equal(t, `LDAP Result Code 99 "": unknown result code 99`, err.Error())
	assert.ErrorIs(t, err, ErrNaming)
}

func TestErrorIs(t *testing.T) {
	err := NewError(LDAPResultNoSuchObject, errors.New("entry missing"))
	assert.True(t, errors.Is(err, ErrNameNotFound))
	assert.False(t, errors.Is(err, ErrNoPermission))

	wrapped := fmt.Errorf("lookup: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNameNotFound))
}

func TestErrorAs(t *testing.T) {
	var err error = fmt.Errorf("wrap: %w", NewError(LDAPResultBusy, errors.New("busy")))

	var ldapErr *Error
	require.True(t, errors.As(err, &ldapErr))
	assert.Equal(t, uint16(LDAPResultBusy), ldapErr.ResultCode)
}

func TestFormatError(t *testing.T) {
	err := formatError("cn=x,", "", "empty RDN")
	assert.Equal(t, `invalid name "cn=x,": empty RDN`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	err = formatError(`cn=a\0`, `a\0`, "improper usage of backslash")
	assert.Equal(t, `invalid name "cn=a\\0": improper usage of backslash at "a\\0"`, err.Error())
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &DecodeError{ControlType: ControlTypePaging, Err: cause}
	assert.Equal(t, `ber: failed to decode control Paging (1.2.840.113556.1.4.319): unexpected EOF`, err.Error())
	assert.ErrorIs(t, err, ErrBERDecode)
	assert.ErrorIs(t, err, cause)

	err = decodeError("", "bad %s", "thing")
	assert.Equal(t, "ber: failed to decode control: bad thing", err.Error())
}
