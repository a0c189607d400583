package ldapname

import (
	"errors"
	"fmt"
)

// LDAP Result Codes
const (
	LDAPResultSuccess                      = 0
	LDAPResultOperationsError              = 1
	LDAPResultProtocolError                = 2
	LDAPResultTimeLimitExceeded            = 3
	LDAPResultSizeLimitExceeded            = 4
	LDAPResultCompareFalse                 = 5
	LDAPResultCompareTrue                  = 6
	LDAPResultAuthMethodNotSupported       = 7
	LDAPResultStrongAuthRequired           = 8
	LDAPResultReferral                     = 10
	LDAPResultAdminLimitExceeded           = 11
	LDAPResultUnavailableCriticalExtension = 12
	LDAPResultConfidentialityRequired      = 13
	LDAPResultSaslBindInProgress           = 14
	LDAPResultNoSuchAttribute              = 16
	LDAPResultUndefinedAttributeType       = 17
	LDAPResultInappropriateMatching        = 18
	LDAPResultConstraintViolation          = 19
	LDAPResultAttributeOrValueExists       = 20
	LDAPResultInvalidAttributeSyntax       = 21
	LDAPResultNoSuchObject                 = 32
	LDAPResultAliasProblem                 = 33
	LDAPResultInvalidDNSyntax              = 34
	LDAPResultIsLeaf                       = 35
	LDAPResultAliasDereferencingProblem    = 36
	LDAPResultInappropriateAuthentication  = 48
	LDAPResultInvalidCredentials           = 49
	LDAPResultInsufficientAccessRights     = 50
	LDAPResultBusy                         = 51
	LDAPResultUnavailable                  = 52
	LDAPResultUnwillingToPerform           = 53
	LDAPResultLoopDetect                   = 54
	LDAPResultNamingViolation              = 64
	LDAPResultObjectClassViolation         = 65
	LDAPResultNotAllowedOnNonLeaf          = 66
	LDAPResultNotAllowedOnRDN              = 67
	LDAPResultEntryAlreadyExists           = 68
	LDAPResultObjectClassModsProhibited    = 69
	LDAPResultAffectsMultipleDSAs          = 71
	LDAPResultOther                        = 80
)

// LDAPResultCodeMap contains string descriptions for LDAP error codes
var LDAPResultCodeMap = map[uint16]string{
	LDAPResultSuccess:                      "Success",
	LDAPResultOperationsError:              "Operations Error",
	LDAPResultProtocolError:                "Protocol Error",
	LDAPResultTimeLimitExceeded:            "Time Limit Exceeded",
	LDAPResultSizeLimitExceeded:            "Size Limit Exceeded",
	LDAPResultCompareFalse:                 "Compare False",
	LDAPResultCompareTrue:                  "Compare True",
	LDAPResultAuthMethodNotSupported:       "Auth Method Not Supported",
	LDAPResultStrongAuthRequired:           "Strong Auth Required",
	LDAPResultReferral:                     "Referral",
	LDAPResultAdminLimitExceeded:           "Admin Limit Exceeded",
	LDAPResultUnavailableCriticalExtension: "Unavailable Critical Extension",
	LDAPResultConfidentialityRequired:      "Confidentiality Required",
	LDAPResultSaslBindInProgress:           "Sasl Bind In Progress",
	LDAPResultNoSuchAttribute:              "No Such Attribute",
	LDAPResultUndefinedAttributeType:       "Undefined Attribute Type",
	LDAPResultInappropriateMatching:        "Inappropriate Matching",
	LDAPResultConstraintViolation:          "Constraint Violation",
	LDAPResultAttributeOrValueExists:       "Attribute Or Value Exists",
	LDAPResultInvalidAttributeSyntax:       "Invalid Attribute Syntax",
	LDAPResultNoSuchObject:                 "No Such Object",
	LDAPResultAliasProblem:                 "Alias Problem",
	LDAPResultInvalidDNSyntax:              "Invalid DN Syntax",
	LDAPResultIsLeaf:                       "Is Leaf",
	LDAPResultAliasDereferencingProblem:    "Alias Dereferencing Problem",
	LDAPResultInappropriateAuthentication:  "Inappropriate Authentication",
	LDAPResultInvalidCredentials:           "Invalid Credentials",
	LDAPResultInsufficientAccessRights:     "Insufficient Access Rights",
	LDAPResultBusy:                         "Busy",
	LDAPResultUnavailable:                  "Unavailable",
	LDAPResultUnwillingToPerform:           "Unwilling To Perform",
	LDAPResultLoopDetect:                   "Loop Detect",
	LDAPResultNamingViolation:              "Naming Violation",
	LDAPResultObjectClassViolation:         "Object Class Violation",
	LDAPResultNotAllowedOnNonLeaf:          "Not Allowed On Non Leaf",
	LDAPResultNotAllowedOnRDN:              "Not Allowed On RDN",
	LDAPResultEntryAlreadyExists:           "Entry Already Exists",
	LDAPResultObjectClassModsProhibited:    "Object Class Mods Prohibited",
	LDAPResultAffectsMultipleDSAs:          "Affects Multiple DSAs",
	LDAPResultOther:                        "Other",
}

var (
	// ErrInvalidFormat is matched by every *FormatError.
	ErrInvalidFormat = errors.New("ldap: invalid format")

	// ErrBERDecode is matched by every *DecodeError.
	ErrBERDecode = errors.New("ldap: BER decode error")

	// ErrDNNotSubordinate is returned by DN.Strip when the base is not a parent.
	ErrDNNotSubordinate = errors.New("ldap: not a subordinate")
)

// Result code categories. An *Error carrying a non-success result code
// matches exactly one of these through errors.Is, plus ErrLimitExceeded for
// the size and time limit codes.
var (
	ErrNaming                     = errors.New("ldap: naming error")
	ErrAttributeInUse             = errors.New("ldap: attribute in use")
	ErrAuthenticationNotSupported = errors.New("ldap: authentication not supported")
	ErrNameAlreadyBound           = errors.New("ldap: name already bound")
	ErrAuthentication             = errors.New("ldap: authentication failed")
	ErrInvalidSearchFilter        = errors.New("ldap: invalid search filter")
	ErrNoPermission               = errors.New("ldap: no permission")
	ErrInvalidAttributeValue      = errors.New("ldap: invalid attribute value")
	ErrNoSuchAttribute            = errors.New("ldap: no such attribute")
	ErrNameNotFound               = errors.New("ldap: name not found")
	ErrSchemaViolation            = errors.New("ldap: schema violation")
	ErrContextNotEmpty            = errors.New("ldap: context not empty")
	ErrCommunication              = errors.New("ldap: communication error")
	ErrLimitExceeded              = errors.New("ldap: limit exceeded")
	ErrSizeLimitExceeded          = errors.New("ldap: size limit exceeded")
	ErrTimeLimitExceeded          = errors.New("ldap: time limit exceeded")
	ErrOperationNotSupported      = errors.New("ldap: operation not supported")
	ErrServiceUnavailable         = errors.New("ldap: service unavailable")
	ErrInvalidAttributeIdentifier = errors.New("ldap: invalid attribute identifier")
	ErrInvalidName                = errors.New("ldap: invalid name")
)

// Error holds LDAP error information
type Error struct {
	// Err is the underlying error
	Err error
	// ResultCode is the LDAP error code
	ResultCode uint16
	// MatchedDN is the matchedDN returned if any
	MatchedDN string
}

func (e *Error) Error() string {
	return fmt.Sprintf("LDAP Result Code %d %q: %s", e.ResultCode, LDAPResultCodeMap[e.ResultCode], e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the category sentinel for the result code.
func (e *Error) Is(target error) bool {
	if target == ErrLimitExceeded {
		switch e.ResultCode {
		case LDAPResultAdminLimitExceeded, LDAPResultSizeLimitExceeded, LDAPResultTimeLimitExceeded:
			return true
		}
	}
	return e.Category() == target
}

// Category returns the sentinel error describing the class of failure, or
// nil for LDAPResultSuccess.
func (e *Error) Category() error {
	switch e.ResultCode {
	case LDAPResultSuccess:
		return nil
	case LDAPResultAttributeOrValueExists:
		return ErrAttributeInUse
	case LDAPResultAuthMethodNotSupported, LDAPResultConfidentialityRequired,
		LDAPResultStrongAuthRequired, LDAPResultInappropriateAuthentication:
		return ErrAuthenticationNotSupported
	case LDAPResultEntryAlreadyExists:
		return ErrNameAlreadyBound
	case LDAPResultInvalidCredentials, LDAPResultSaslBindInProgress:
		return ErrAuthentication
	case LDAPResultInappropriateMatching:
		return ErrInvalidSearchFilter
	case LDAPResultInsufficientAccessRights:
		return ErrNoPermission
	case LDAPResultInvalidAttributeSyntax, LDAPResultConstraintViolation:
		return ErrInvalidAttributeValue
	case LDAPResultNoSuchAttribute:
		return ErrNoSuchAttribute
	case LDAPResultNoSuchObject:
		return ErrNameNotFound
	case LDAPResultObjectClassModsProhibited, LDAPResultObjectClassViolation, LDAPResultNotAllowedOnRDN:
		return ErrSchemaViolation
	case LDAPResultNotAllowedOnNonLeaf:
		return ErrContextNotEmpty
	case LDAPResultProtocolError:
		return ErrCommunication
	case LDAPResultSizeLimitExceeded:
		return ErrSizeLimitExceeded
	case LDAPResultTimeLimitExceeded:
		return ErrTimeLimitExceeded
	case LDAPResultUnavailableCriticalExtension, LDAPResultUnwillingToPerform:
		return ErrOperationNotSupported
	case LDAPResultUnavailable, LDAPResultBusy:
		return ErrServiceUnavailable
	case LDAPResultUndefinedAttributeType:
		return ErrInvalidAttributeIdentifier
	case LDAPResultAdminLimitExceeded:
		return ErrLimitExceeded
	case LDAPResultInvalidDNSyntax, LDAPResultNamingViolation:
		return ErrInvalidName
	default:
		return ErrNaming
	}
}

// NewError creates an LDAP error with the given code and underlying error
func NewError(resultCode uint16, err error) error {
	return &Error{ResultCode: resultCode, Err: err}
}

// MapResultCode turns a result code reported by a server into an error.
// It returns nil for LDAPResultSuccess.
func MapResultCode(resultCode uint16, message string) error {
	if resultCode == LDAPResultSuccess {
		return nil
	}
	if message == "" {
		message = LDAPResultCodeMap[resultCode]
		if message == "" {
			message = fmt.Sprintf("unknown result code %d", resultCode)
		}
	}
	return NewError(resultCode, errors.New(message))
}

// IsErrorAnyOf returns true if the given error is an LDAP error with any one of the given result codes
func IsErrorAnyOf(err error, codes ...uint16) bool {
	if err == nil {
		return false
	}

	var serverError *Error
	if !errors.As(err, &serverError) {
		return false
	}

	for _, code := range codes {
		if serverError.ResultCode == code {
			return true
		}
	}

	return false
}

// IsErrorWithCode returns true if the given error is an LDAP error with the given result code
func IsErrorWithCode(err error, desiredResultCode uint16) bool {
	return IsErrorAnyOf(err, desiredResultCode)
}

// FormatError reports a name or attribute value that does not follow the
// RFC 2253 string representation.
type FormatError struct {
	// Input is the complete string being parsed.
	Input string
	// Fragment is the offending part of Input, if known.
	Fragment string
	// Reason describes the violation.
	Reason string
}

func (e *FormatError) Error() string {
	if e.Fragment != "" && e.Fragment != e.Input {
		return fmt.Sprintf("invalid name %q: %s at %q", e.Input, e.Reason, e.Fragment)
	}
	return fmt.Sprintf("invalid name %q: %s", e.Input, e.Reason)
}

// Is allows FormatError to match ErrInvalidFormat with errors.Is.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

func formatError(input, fragment, reason string) *FormatError {
	return &FormatError{Input: input, Fragment: fragment, Reason: reason}
}

// DecodeError reports a control value that does not have the expected BER
// structure.
type DecodeError struct {
	ControlType string
	Err         error
}

func (e *DecodeError) Error() string {
	if e.ControlType == "" {
		return fmt.Sprintf("ber: failed to decode control: %s", e.Err)
	}
	return fmt.Sprintf("ber: failed to decode control %s (%s): %s", ControlDescription(e.ControlType), e.ControlType, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is allows DecodeError to match ErrBERDecode with errors.Is.
func (e *DecodeError) Is(target error) bool {
	return target == ErrBERDecode
}

func decodeError(controlType string, format string, args ...interface{}) *DecodeError {
	return &DecodeError{ControlType: controlType, Err: fmt.Errorf(format, args...)}
}
