package commands

import (
	"testing"

	"github.com/go-ldap/ldapname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDNParse(t *testing.T) {
	var result nameResult
	runJSON(t, &result, "dn", "parse", "cn=Steve Kille,o=Isode Limited,c=GB")

	assert.Equal(t, "cn=Steve Kille,o=Isode Limited,c=GB", result.Name)
	require.Len(t, result.RDNs, 3)
	assert.Equal(t, rdnResult{
		Index:      0,
		RDN:        "c=GB",
		Attributes: []attributeResult{{Type: "c", Value: "GB"}},
	}, result.RDNs[0])
	assert.Equal(t, "Steve Kille", result.RDNs[2].Attributes[0].Value)
}

func TestDNParseValues(t *testing.T) {
	var result nameResult
	runJSON(t, &result, "dn", "parse", `ou=Sales+cn=J. Smith,1.3.6.1.4.1.1466.0=#04024869,o=\ Test\,Inc`)

	require.Len(t, result.RDNs, 3)
	assert.Equal(t, []attributeResult{{Type: "o", Value: " Test,Inc"}}, result.RDNs[0].Attributes)
	assert.Equal(t, []attributeResult{{Type: "1.3.6.1.4.1.1466.0", Value: "#04024869", Binary: true}}, result.RDNs[1].Attributes)
	assert.Equal(t, []attributeResult{
		{Type: "cn", Value: "J. Smith"},
		{Type: "ou", Value: "Sales"},
	}, result.RDNs[2].Attributes)
}

func TestDNParseEmpty(t *testing.T) {
	var result nameResult
	runJSON(t, &result, "dn", "parse", "")
	assert.Equal(t, "", result.Name)
	assert.Empty(t, result.RDNs)
}

func TestDNParseTable(t *testing.T) {
	stdout, _, err := run(t, "dn", "parse", "uid=jdoe,dc=example,dc=org")
	require.NoError(t, err)
	assert.Contains(t, stdout, "INDEX")
	assert.Contains(t, stdout, "jdoe")
	assert.Contains(t, stdout, "example")
}

func TestDNParseError(t *testing.T) {
	_, _, err := run(t, "dn", "parse", "cn=Bob,")
	require.Error(t, err)
	assert.ErrorIs(t, err, ldapname.ErrInvalidFormat)

	var formatErr *ldapname.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "cn=Bob,", formatErr.Input)

	_, _, err = run(t, "dn", "parse")
	assert.Error(t, err)
}

func TestDNCompare(t *testing.T) {
	testcases := []struct {
		name     string
		a, b     string
		expected compareResult
	}{
		{
			name:     "equal ignoring case",
			a:        "CN=Bob,DC=Example",
			b:        "cn=bob,dc=example",
			expected: compareResult{A: "CN=Bob,DC=Example", B: "cn=bob,dc=example", Compare: 0, Equal: true},
		},
		{
			name:     "subordinate",
			a:        "cn=Bob,dc=example",
			b:        "dc=example",
			expected: compareResult{A: "cn=Bob,dc=example", B: "dc=example", Compare: 1, Subordinate: true},
		},
		{
			name:     "ancestor",
			a:        "dc=example",
			b:        "cn=Bob,dc=example",
			expected: compareResult{A: "dc=example", B: "cn=Bob,dc=example", Compare: -1, AncestorOf: true},
		},
		{
			name:     "siblings",
			a:        "cn=Alice,dc=example",
			b:        "cn=Bob,dc=example",
			expected: compareResult{A: "cn=Alice,dc=example", B: "cn=Bob,dc=example", Compare: -1},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			var result compareResult
			runJSON(t, &result, "dn", "compare", tc.a, tc.b)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDNCompareError(t *testing.T) {
	_, _, err := run(t, "dn", "compare", "cn=a", "cn")
	assert.ErrorIs(t, err, ldapname.ErrInvalidFormat)
}

func TestRDNParse(t *testing.T) {
	var result nameResult
	runJSON(t, &result, "rdn", "parse", "ou=Sales+cn=J. Smith")

	assert.Equal(t, "cn=J. Smith+ou=Sales", result.Name)
	require.Len(t, result.RDNs, 1)
	assert.Len(t, result.RDNs[0].Attributes, 2)

	_, _, err := run(t, "rdn", "parse", "cn=a,dc=b")
	assert.ErrorIs(t, err, ldapname.ErrInvalidFormat)
}
