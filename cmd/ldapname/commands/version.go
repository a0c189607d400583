package commands

import (
	"fmt"
	"runtime"

	"github.com/go-ldap/ldapname/internal/output"
	"github.com/spf13/cobra"
)

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the ldapname version, build information, and system details.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if short {
				printer.Println(Version)
				return nil
			}

			info := versionInfo{
				Version:   Version,
				Commit:    Commit,
				Date:      Date,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			if printer.Format() == output.FormatJSON {
				return printer.Print(info)
			}

			out := printer.Writer()
			fmt.Fprintf(out, "ldapname %s\n", info.Version)
			fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
			fmt.Fprintf(out, "  Built:      %s\n", info.Date)
			fmt.Fprintf(out, "  Go version: %s\n", info.GoVersion)
			fmt.Fprintf(out, "  OS/Arch:    %s\n", info.Platform)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Show only version number")
	return cmd
}
