package cli

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/assistants"
	"github.com/effective-security/toolhost/encoding"
	"github.com/effective-security/toolhost/tools"
	"github.com/spf13/cobra"
)

// NewCallCmd creates the "call" command.
func NewCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool> [name=value...]",
		Short: "Call the tool with the arguments",
		Example: `  toolhost call query_sales query="total revenue" region=EU
  toolhost call query_sales --input '{"query": "total revenue", "region": "EU"}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCall,
	}
	cmd.Flags().String("input", "", "Arguments as a JSON or YAML object of strings")
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	input, err := callArguments(cmd, args[1:])
	if err != nil {
		return err
	}

	host, _, err := loadHost(cmd)
	if err != nil {
		return err
	}
	defer func() {
		_ = host.Close()
	}()

	res := host.ExecuteToolCalls(cmd.Context(), []assistants.ToolCall{
		{Name: args[0], Arguments: input},
	})[0]

	format, _ := cmd.Flags().GetString("output")
	if strings.EqualFold(format, encoding.FormatText) || format == "" {
		err = write(cmd, res.Content)
	} else {
		err = write(cmd, res)
	}
	if err != nil {
		return err
	}

	if res.NotFound || strings.HasPrefix(res.Content, tools.ErrorPrefix) {
		return errors.Wrapf(ErrToolFailed, "tool %s", args[0])
	}
	return nil
}

// callArguments returns the JSON object of the --input flag and name=value pairs,
// the pairs take precedence.
func callArguments(cmd *cobra.Command, pairs []string) (string, error) {
	m := map[string]string{}
	if in, _ := cmd.Flags().GetString("input"); strings.TrimSpace(in) != "" {
		// YAML is a superset of JSON
		if err := encoding.Unmarshal(encoding.FormatYAML, []byte(in), &m); err != nil {
			return "", errors.WithMessage(err, "invalid input")
		}
	}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return "", errors.Newf("invalid argument %q: expected name=value", p)
		}
		m[name] = value
	}

	js, err := json.Marshal(m)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(js), nil
}
