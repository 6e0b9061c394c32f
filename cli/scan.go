package cli

import (
	"strconv"

	"github.com/effective-security/toolhost/scanner"
	"github.com/spf13/cobra"
)

// SchemaInfo describes a discovered tool schema.
type SchemaInfo struct {
	Tool        string   `json:"tool" yaml:"tool" toml:"tool"`
	Function    string   `json:"function" yaml:"function" toml:"function"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Parameters  []string `json:"parameters" yaml:"parameters" toml:"parameters"`
	Digest      string   `json:"digest" yaml:"digest" toml:"digest"`
	Source      string   `json:"source" yaml:"source" toml:"source"`
}

// ScanResult is the output of the scan command.
type ScanResult struct {
	Dir     string            `json:"dir" yaml:"dir" toml:"dir"`
	Schemas []SchemaInfo      `json:"schemas" yaml:"schemas" toml:"schemas"`
	Skipped []scanner.Skipped `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
}

// NewScanCmd creates the "scan" command.
func NewScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [dir]",
		Short: "List tool schemas found in the directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir := cfg.Tools.Dir
	if len(args) > 0 {
		dir = args[0]
	}

	res := scanner.New(scanner.WithExtension(cfg.Tools.Extension)).Scan(dir)

	out := &ScanResult{
		Dir:     res.Dir,
		Schemas: []SchemaInfo{},
		Skipped: res.Skipped,
	}
	for _, s := range res.List() {
		out.Schemas = append(out.Schemas, SchemaInfo{
			Tool:        s.Name,
			Function:    s.FunctionName,
			Description: s.Description,
			Parameters:  s.ParameterNames(),
			Digest:      strconv.FormatUint(s.Digest, 16),
			Source:      s.Source,
		})
	}
	return write(cmd, out)
}
