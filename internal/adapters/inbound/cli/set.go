package cli

import (
	"fmt"
	"strings"

	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSetCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set key=value [key=value...]",
		Short: "Write personal overrides to .practices.user.yaml",
		Long: "Merge overrides into the user configuration file of the project. Keys use dots for " +
			"nesting (jira.project_key=OPS); values are parsed as YAML (github.required_checks=[tests,lint]).",
		Example: "  practices set main_branch=trunk workflow_mode=team",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot(nil)
			if err != nil {
				return err
			}

			layers := make([]map[string]any, 0, len(args))
			for _, arg := range args {
				layer, err := parseAssignment(arg)
				if err != nil {
					return err
				}
				layers = append(layers, layer)
			}

			path, err := newConfigService().SetUserOverrides(root, domain.MergeConfigs(layers))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", path)
			return nil
		},
	}

	return cmd
}

// parseAssignment turns "a.b=value" into {"a": {"b": value}}. The value is
// decoded as YAML and kept as a plain string if that fails.
func parseAssignment(expr string) (map[string]any, error) {
	key, raw, ok := strings.Cut(expr, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return nil, fmt.Errorf("expected key=value, got %q", expr)
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	value = domain.NormalizeValue(value)

	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid key %q", key)
		}
	}

	out := map[string]any{parts[len(parts)-1]: value}
	for i := len(parts) - 2; i >= 0; i-- {
		out = map[string]any{parts[i]: out}
	}
	return out, nil
}
