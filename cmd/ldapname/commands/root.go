// Package commands implements the CLI commands of ldapname.
package commands

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-ldap/ldapname/internal/config"
	"github.com/go-ldap/ldapname/internal/logging"
	"github.com/go-ldap/ldapname/internal/output"
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// State shared by all commands, set up before each run.
var (
	cfg     = config.GetDefaultConfig()
	logger  = logging.Nop()
	printer *output.Printer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = NewRootCmd()

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ldapname",
		Short: "Parse LDAP distinguished names and encode LDAP controls",
		Long: `ldapname parses, compares and escapes RFC 2253 distinguished names and
encodes or decodes the BER values of the paged results and server side
sorting controls.

Settings are read from --config, LDAPNAME_* environment variables and flags.

Use "ldapname [command] --help" for more information about a command.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().String("config", "", "Configuration file (yaml, toml or json)")
	cmd.PersistentFlags().StringP("output", "o", config.DefaultOutput, "Output format (table|json)")
	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (none|error|warn|info|debug)")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format (logfmt|json)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDNCmd())
	cmd.AddCommand(newRDNCmd())
	cmd.AddCommand(newEscapeCmd())
	cmd.AddCommand(newUnescapeCmd())
	cmd.AddCommand(newControlCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	loaded, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	l, err := logging.New(cmd.ErrOrStderr(), loaded.Log.Level, loaded.Log.Format)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(loaded.Output)
	if err != nil {
		return err
	}

	cfg = loaded
	logger = log.With(l, "cmd", cmd.CommandPath())
	printer = output.NewPrinter(cmd.OutOrStdout(), format)

	level.Debug(logger).Log("msg", "configuration loaded", "config", configPath, "output", cfg.Output)
	return nil
}
