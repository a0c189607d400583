package commands

import (
	"strconv"

	"github.com/go-kit/log/level"
	"github.com/go-ldap/ldapname"
	"github.com/spf13/cobra"
)

// attributeResult is one type/value pair of an RDN.
type attributeResult struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Binary bool   `json:"binary"`
}

// rdnResult describes one RDN. Index counts from the root.
type rdnResult struct {
	Index      int               `json:"index"`
	RDN        string            `json:"rdn"`
	Attributes []attributeResult `json:"attributes"`
}

// nameResult is the output of "dn parse" and "rdn parse".
type nameResult struct {
	Name string      `json:"name"`
	RDNs []rdnResult `json:"rdns"`
}

func newRDNResult(index int, rdn *ldapname.RelativeDN) rdnResult {
	result := rdnResult{Index: index, RDN: rdn.String()}
	for _, attr := range rdn.Attributes() {
		value, binary := displayValue(attr.Value())
		result.Attributes = append(result.Attributes, attributeResult{
			Type:   attr.Type(),
			Value:  value,
			Binary: binary,
		})
	}
	return result
}

// displayValue returns text values unescaped and binary values in their
// "#hexpairs" form.
func displayValue(v ldapname.Value) (string, bool) {
	if text, ok := v.(ldapname.TextValue); ok {
		return string(text), false
	}
	return ldapname.EscapeValue(v), true
}

// Headers implements output.TableRenderer.
func (r *nameResult) Headers() []string {
	return []string{"INDEX", "TYPE", "VALUE", "BINARY"}
}

// Rows implements output.TableRenderer.
func (r *nameResult) Rows() [][]string {
	var rows [][]string
	for _, rdn := range r.RDNs {
		for _, attr := range rdn.Attributes {
			rows = append(rows, []string{
				strconv.Itoa(rdn.Index),
				attr.Type,
				attr.Value,
				strconv.FormatBool(attr.Binary),
			})
		}
	}
	return rows
}

// compareResult is the output of "dn compare".
type compareResult struct {
	A           string `json:"a"`
	B           string `json:"b"`
	Compare     int    `json:"compare"`
	Equal       bool   `json:"equal"`
	AncestorOf  bool   `json:"a_ancestor_of_b"`
	Subordinate bool   `json:"a_subordinate_of_b"`
}

// Headers implements output.TableRenderer.
func (r *compareResult) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements output.TableRenderer.
func (r *compareResult) Rows() [][]string {
	return [][]string{
		{"a", r.A},
		{"b", r.B},
		{"compare", strconv.Itoa(r.Compare)},
		{"equal", strconv.FormatBool(r.Equal)},
		{"a ancestor of b", strconv.FormatBool(r.AncestorOf)},
		{"a subordinate of b", strconv.FormatBool(r.Subordinate)},
	}
}

func newDNCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dn",
		Short: "Work with distinguished names",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parse <dn>",
		Short: "Parse a DN and list its RDNs from the root",
		Example: `  ldapname dn parse 'cn=Steve Kille,o=Isode Limited,c=GB'
  ldapname dn parse -o json 'ou=Sales+cn=J. Smith,dc=example,dc=net'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dn, err := ldapname.ParseDN(args[0])
			if err != nil {
				return err
			}
			level.Debug(logger).Log("msg", "parsed DN", "rdns", dn.Len())

			result := &nameResult{Name: dn.String(), RDNs: []rdnResult{}}
			for i, rdn := range dn.RDNs {
				result.RDNs = append(result.RDNs, newRDNResult(i, rdn))
			}
			return printer.Print(result)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two DNs",
		Long: `Compare two DNs RDN by RDN from the root. Attribute types and values are
compared case-insensitively. compare is negative, zero or positive as a sorts
before, equal to or after b.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ldapname.ParseDN(args[0])
			if err != nil {
				return err
			}
			b, err := ldapname.ParseDN(args[1])
			if err != nil {
				return err
			}

			return printer.Print(&compareResult{
				A:           a.String(),
				B:           b.String(),
				Compare:     sign(a.Compare(b)),
				Equal:       a.Equal(b),
				AncestorOf:  a.AncestorOf(b),
				Subordinate: a.IsSubordinate(b),
			})
		},
	})

	return cmd
}

func newRDNCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdn",
		Short: "Work with relative distinguished names",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "parse <rdn>",
		Short:   "Parse a single, possibly multi-valued, RDN",
		Example: `  ldapname rdn parse 'ou=Sales+cn=J. Smith'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rdn, err := ldapname.ParseRDN(args[0])
			if err != nil {
				return err
			}
			level.Debug(logger).Log("msg", "parsed RDN", "attributes", rdn.Len())

			return printer.Print(&nameResult{
				Name: rdn.String(),
				RDNs: []rdnResult{newRDNResult(0, rdn)},
			})
		},
	})

	return cmd
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
