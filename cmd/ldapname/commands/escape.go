package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/go-ldap/ldapname"
	"github.com/spf13/cobra"
)

// valueResult is the output of "escape" and "unescape".
type valueResult struct {
	Input  string `json:"input"`
	Value  string `json:"value"`
	Binary bool   `json:"binary"`
}

// Headers implements output.TableRenderer.
func (r *valueResult) Headers() []string {
	return []string{"INPUT", "VALUE", "BINARY"}
}

// Rows implements output.TableRenderer.
func (r *valueResult) Rows() [][]string {
	return [][]string{{r.Input, r.Value, strconv.FormatBool(r.Binary)}}
}

func newEscapeCmd() *cobra.Command {
	var binary bool

	cmd := &cobra.Command{
		Use:   "escape <value>",
		Short: "Escape an attribute value for use in a DN",
		Long: `Escape an attribute value for use in a DN.

With --binary the value is read as hex and printed in the "#hexpairs" form.`,
		Example: `  ldapname escape ' Smith, J. '
  ldapname escape --binary 04024869`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := &valueResult{Input: args[0], Binary: binary}
			if binary {
				data, err := hex.DecodeString(args[0])
				if err != nil {
					return fmt.Errorf("invalid hex value: %w", err)
				}
				result.Value = ldapname.EscapeValue(ldapname.BinaryValue(data))
			} else {
				result.Value = ldapname.EscapeValue(ldapname.TextValue(args[0]))
			}
			return printer.Print(result)
		},
	}

	cmd.Flags().BoolVar(&binary, "binary", false, "Treat the value as hex encoded BER")
	return cmd
}

func newUnescapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unescape <value>",
		Short: "Unescape an attribute value taken from a DN",
		Long: `Unescape an attribute value taken from a DN. Quoted values, hex escaped
UTF-8 octets and "#hexpairs" values are accepted. Binary values are printed
as hex.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := ldapname.UnescapeValue(args[0])
			if err != nil {
				return err
			}

			result := &valueResult{Input: args[0]}
			switch v := value.(type) {
			case ldapname.BinaryValue:
				result.Value = hex.EncodeToString(v)
				result.Binary = true
			case ldapname.TextValue:
				result.Value = string(v)
			}
			return printer.Print(result)
		},
	}
}
