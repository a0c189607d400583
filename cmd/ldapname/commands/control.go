package commands

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/go-kit/log/level"
	"github.com/go-ldap/ldapname"
	"github.com/spf13/cobra"
)

type controlDetail struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// controlResult is the output of all control commands. Value and Control
// are hex encoded.
type controlResult struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Critical    bool            `json:"critical"`
	Value       string          `json:"value"`
	Control     string          `json:"control"`
	Details     []controlDetail `json:"details,omitempty"`
}

func newControlResult(c ldapname.Control) *controlResult {
	result := &controlResult{
		Type:        c.GetControlType(),
		Description: ldapname.ControlDescription(c.GetControlType()),
		Critical:    c.IsCritical(),
		Value:       hex.EncodeToString(c.EncodedValue()),
		Control:     hex.EncodeToString(c.Encode().Bytes()),
	}

	add := func(name, value string) {
		result.Details = append(result.Details, controlDetail{Name: name, Value: value})
	}

	switch c := c.(type) {
	case *ldapname.ControlPaging:
		add("size", strconv.FormatUint(uint64(c.PagingSize), 10))
		add("cookie", hex.EncodeToString(c.Cookie))
	case *ldapname.ControlPagingResponse:
		add("size", strconv.Itoa(c.ResultSize()))
		add("cookie", hex.EncodeToString(c.Cookie()))
	case *ldapname.ControlServerSideSorting:
		for i, key := range c.SortKeys {
			add("key "+strconv.Itoa(i), key.String())
		}
	case *ldapname.ControlServerSideSortingResult:
		add("result code", strconv.Itoa(int(c.ResultCode())))
		add("result", ldapname.LDAPResultCodeMap[c.ResultCode()])
		add("attribute", c.AttributeType())
		add("sorted", strconv.FormatBool(c.IsSorted()))
		if err := c.Err(); err != nil {
			add("error", err.Error())
		}
	case *ldapname.ControlString:
		add("raw value", strconv.Quote(c.ControlValue))
	}
	return result
}

// Headers implements output.TableRenderer.
func (r *controlResult) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

// Rows implements output.TableRenderer.
func (r *controlResult) Rows() [][]string {
	rows := [][]string{
		{"type", r.Type},
		{"description", r.Description},
		{"critical", strconv.FormatBool(r.Critical)},
		{"value", r.Value},
		{"control", r.Control},
	}
	for _, d := range r.Details {
		rows = append(rows, []string{d.Name, d.Value})
	}
	return rows
}

func newControlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "control",
		Short: "Encode and decode LDAP controls",
		Long: `Encode and decode LDAP controls. Control values and complete controls are
read and printed as hex.`,
	}

	cmd.PersistentFlags().Bool("dump", false, "Print the BER tree of the control to stderr")

	cmd.AddCommand(newControlDecodeCmd())
	cmd.AddCommand(newControlPagingCmd())
	cmd.AddCommand(newControlSortCmd())
	cmd.AddCommand(newControlManageDsaITCmd())

	return cmd
}

func newControlDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decode <hex>",
		Short:   "Decode a complete Control sequence",
		Example: `  ldapname control decode 30230416312e322e3834302e3131333535362e312e342e3331390409300702010a0402abcd`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := decodeHex(args[0])
			if err != nil {
				return err
			}
			packet, err := ber.DecodePacketErr(data)
			if err != nil {
				return fmt.Errorf("%w: %s", ldapname.ErrBERDecode, err)
			}
			control, err := ldapname.DecodeControl(packet)
			if err != nil {
				return err
			}
			return printControl(cmd, control)
		},
	}
}

func newControlPagingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paging",
		Short: "Simple paged results control (RFC 2696)",
	}

	var (
		size     uint32
		cookie   string
		critical bool
	)
	encode := &cobra.Command{
		Use:   "encode",
		Short: "Encode a paged results request",
		Long: `Encode a paged results request. --size and --critical default to the
paging.size and paging.critical settings.`,
		Example: `  ldapname control paging encode --size 50
  ldapname control paging encode --size 50 --cookie 0a0b0c --critical`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				size = cfg.Paging.Size
			}
			if !cmd.Flags().Changed("critical") {
				critical = cfg.Paging.Critical
			}
			data, err := decodeHex(cookie)
			if err != nil {
				return fmt.Errorf("invalid cookie: %w", err)
			}
			return printControl(cmd, ldapname.NewControlPaging(size, data, critical))
		},
	}
	encode.Flags().Uint32Var(&size, "size", 0, "Page size")
	encode.Flags().StringVar(&cookie, "cookie", "", "Cookie of the previous response (hex)")
	encode.Flags().BoolVar(&critical, "critical", false, "Mark the control as critical")

	var decodeCritical bool
	decode := &cobra.Command{
		Use:     "decode <hex>",
		Short:   "Decode the value of a paged results response",
		Example: `  ldapname control paging decode 300702010a0402abcd`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decodeHex(args[0])
			if err != nil {
				return err
			}
			control, err := ldapname.NewControlPagingResponse(decodeCritical, value)
			if err != nil {
				return err
			}
			return printControl(cmd, control)
		},
	}
	decode.Flags().BoolVar(&decodeCritical, "critical", false, "Criticality of the decoded control")

	cmd.AddCommand(encode, decode)
	return cmd
}

func newControlSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Server side sorting controls (RFC 2891)",
	}

	var (
		keys     []string
		critical bool
	)
	encode := &cobra.Command{
		Use:   "encode",
		Short: "Encode a sort request",
		Long: `Encode a sort request. Each --key is given as attribute[:matchingRule][:desc],
in order of precedence. --critical defaults to the sort.critical setting.`,
		Example: `  ldapname control sort encode --key sn --key givenName:desc
  ldapname control sort encode --key cn:2.5.13.3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("critical") {
				critical = cfg.Sort.Critical
			}
			sortKeys := make([]*ldapname.SortKey, 0, len(keys))
			for _, arg := range keys {
				key, err := parseSortKey(arg)
				if err != nil {
					return err
				}
				sortKeys = append(sortKeys, key)
			}
			control, err := ldapname.NewControlServerSideSorting(critical, sortKeys...)
			if err != nil {
				return err
			}
			return printControl(cmd, control)
		},
	}
	encode.Flags().StringArrayVarP(&keys, "key", "k", nil, "Sort key attribute[:matchingRule][:desc] (repeatable)")
	encode.Flags().BoolVar(&critical, "critical", false, "Mark the control as critical")

	var (
		request        bool
		decodeCritical bool
	)
	decode := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode the value of a sort result, or of a sort request with --request",
		Example: `  ldapname control sort decode 30070a01108002636e
  ldapname control sort decode --request 300630040402636e`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decodeHex(args[0])
			if err != nil {
				return err
			}
			if request {
				sortKeys, err := ldapname.DecodeSortKeys(value)
				if err != nil {
					return err
				}
				control, err := ldapname.NewControlServerSideSorting(decodeCritical, sortKeys...)
				if err != nil {
					return err
				}
				return printControl(cmd, control)
			}
			control, err := ldapname.NewControlServerSideSortingResult(decodeCritical, value)
			if err != nil {
				return err
			}
			return printControl(cmd, control)
		},
	}
	decode.Flags().BoolVar(&request, "request", false, "Decode a sort request (SortKeyList)")
	decode.Flags().BoolVar(&decodeCritical, "critical", false, "Criticality of the decoded control")

	cmd.AddCommand(encode, decode)
	return cmd
}

func newControlManageDsaITCmd() *cobra.Command {
	var critical bool

	cmd := &cobra.Command{
		Use:   "manage-dsa-it",
		Short: "Encode a ManageDsaIT control (RFC 3296)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printControl(cmd, ldapname.NewControlManageDsaIT(critical))
		},
	}
	cmd.Flags().BoolVar(&critical, "critical", false, "Mark the control as critical")
	return cmd
}

func printControl(cmd *cobra.Command, control ldapname.Control) error {
	level.Debug(logger).Log("msg", "control", "type", control.GetControlType(),
		"critical", control.IsCritical(), "value_length", len(control.EncodedValue()))

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		ber.WritePacket(cmd.ErrOrStderr(), control.Encode())
	}
	return printer.Print(newControlResult(control))
}

// parseSortKey parses "attribute[:matchingRule][:desc]". A trailing "asc"
// is accepted for symmetry.
func parseSortKey(arg string) (*ldapname.SortKey, error) {
	parts := strings.Split(arg, ":")
	attr, rest := parts[0], parts[1:]

	reverse := false
	if n := len(rest); n > 0 {
		switch strings.ToLower(rest[n-1]) {
		case "desc":
			reverse = true
			rest = rest[:n-1]
		case "asc":
			rest = rest[:n-1]
		}
	}
	if len(rest) > 1 {
		return nil, fmt.Errorf("invalid sort key %q (want attribute[:matchingRule][:desc])", arg)
	}

	rule := ""
	if len(rest) == 1 {
		rule = rest[0]
	}
	return ldapname.NewSortKey(attr, rule, reverse)
}

// decodeHex accepts hex with optional whitespace and ':' separators.
func decodeHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "").Replace(s)
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	return data, nil
}
