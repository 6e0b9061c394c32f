// Package cli provides the commands of the toolhost CLI.
package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/assistants"
	"github.com/effective-security/toolhost/callbacks"
	"github.com/effective-security/toolhost/config"
	"github.com/effective-security/toolhost/encoding"
	"github.com/effective-security/toolhost/registry"
	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/toolhost", "cli")

// NewRootCmd returns the root command with all subcommands.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "toolhost",
		Short: "Discover, resolve and call agent tools",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage:      true,
		Version:           version,
		PersistentPreRunE: setupLogging,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")
	root.PersistentFlags().StringP("dir", "d", "", "Directory of tool schemas, overrides the configuration")
	root.PersistentFlags().StringP("output", "o", encoding.FormatDefault, "Output format: json | yaml | toml | text")
	root.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	root.AddCommand(NewScanCmd())
	root.AddCommand(NewToolsCmd())
	root.AddCommand(NewCallCmd())
	return root
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	xlog.SetFormatter(xlog.NewStringFormatter(cmd.ErrOrStderr()))
	if verbose {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.ERROR)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Tools.Dir = dir
	}
	return cfg, nil
}

// loadHost returns the host with the tools of the configured directory.
func loadHost(cmd *cobra.Command) (*assistants.Assistant, *registry.Report, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	host, err := assistants.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		host.WithCallback(callbacks.NewPrinter(cmd.ErrOrStderr(), callbacks.ModeVerbose))
	} else {
		host.WithCallback(callbacks.NewPackageLogger(logger))
	}

	report := host.LoadTools(cmd.Context(), cfg.Tools.Dir, cfg.Tools.ServiceMethod)
	return host, report, nil
}

func write(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	return encoding.Write(cmd.OutOrStdout(), format, v)
}

// ErrToolFailed is returned by the call command when the tool reports an error.
var ErrToolFailed = errors.New("tool call failed")
