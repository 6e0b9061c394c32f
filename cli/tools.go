package cli

import (
	"github.com/effective-security/toolhost/registry"
	"github.com/effective-security/toolhost/tools"
	"github.com/spf13/cobra"
)

// ToolsResult is the output of the tools command.
type ToolsResult struct {
	Registered  []registry.Registered `json:"registered,omitempty" yaml:"registered,omitempty" toml:"registered,omitempty"`
	Skipped     []registry.Skipped    `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
	Definitions []tools.Definition    `json:"definitions" yaml:"definitions" toml:"definitions"`
}

// NewToolsCmd creates the "tools" command.
func NewToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Register the tools and print their definitions",
		Args:  cobra.NoArgs,
		RunE:  runTools,
	}
}

func runTools(cmd *cobra.Command, _ []string) error {
	host, report, err := loadHost(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = host.Close()
	}()

	return write(cmd, &ToolsResult{
		Registered:  report.Tools,
		Skipped:     report.Skipped,
		Definitions: host.ToolDefinitions(),
	})
}
