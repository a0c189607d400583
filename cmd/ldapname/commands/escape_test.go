package commands

import (
	"testing"

	"github.com/go-ldap/ldapname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	testcases := []struct {
		name     string
		args     []string
		expected valueResult
	}{
		{"plain", []string{"escape", "Bob"}, valueResult{Input: "Bob", Value: "Bob"}},
		{"specials", []string{"escape", " Smith, J. "}, valueResult{Input: " Smith, J. ", Value: `\ Smith\, J.\ `}},
		{"leading hash", []string{"escape", "#1"}, valueResult{Input: "#1", Value: `\#1`}},
		{"binary", []string{"escape", "--binary", "04024869"}, valueResult{Input: "04024869", Value: "#04024869", Binary: true}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var result valueResult
			runJSON(t, &result, tc.args...)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestEscapeInvalidHex(t *testing.T) {
	_, _, err := run(t, "escape", "--binary", "zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid hex")
}

func TestUnescape(t *testing.T) {
	testcases := []struct {
		name     string
		input    string
		expected valueResult
	}{
		{"escaped", `\ Smith\, J.\ `, valueResult{Input: `\ Smith\, J.\ `, Value: " Smith, J. "}},
		{"quoted", `"a,b"`, valueResult{Input: `"a,b"`, Value: "a,b"}},
		{"utf-8 octets", `Lu\C4\8Di\C4\87`, valueResult{Input: `Lu\C4\8Di\C4\87`, Value: "Lučić"}},
		{"binary", "#04024869", valueResult{Input: "#04024869", Value: "04024869", Binary: true}},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var result valueResult
			runJSON(t, &result, "unescape", tc.input)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestUnescapeError(t *testing.T) {
	_, _, err := run(t, "unescape", `a\zz`)
	assert.ErrorIs(t, err, ldapname.ErrInvalidFormat)
}

func TestEscapeTable(t *testing.T) {
	stdout, _, err := run(t, "escape", "a+b")
	require.NoError(t, err)
	assert.Contains(t, stdout, `a\+b`)
}
