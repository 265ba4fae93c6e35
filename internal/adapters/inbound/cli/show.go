package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/devpractices/practices/internal/adapters/outbound/gitinfo"
	"github.com/devpractices/practices/internal/adapters/outbound/tui"
	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		jsonOutput bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the effective configuration",
		Long:  "Resolve defaults, team, project and user configuration and print the merged result.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot(args)
			if err != nil {
				return err
			}

			ro := opts.resolveOptions(root)
			ro.Strict = strict
			pc, err := newConfigService().Resolve(ro)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(pc)
			}
			if err := renderYAML(cmd.OutOrStdout(), root, pc); err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), tui.RenderProblems(pc.Problems))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output configuration and provenance as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on semantic problems instead of listing them")

	return cmd
}

// renderYAML prints provenance as comments so the output stays valid YAML.
func renderYAML(w io.Writer, root string, pc domain.ProjectConfig) error {
	if pc.Detection != nil {
		fmt.Fprintf(w, "# detected: %s (%.0f%%)\n", pc.Detection.ProjectType, pc.Detection.Confidence*100)
	}
	for _, src := range pc.Sources {
		fmt.Fprintf(w, "# source: %s\n", src)
	}
	if gi := gitinfo.New(); gi.IsGitRepo(root) {
		branch, err := gi.CurrentBranch(root)
		if err != nil {
			fmt.Fprintf(w, "# branch: unknown (%v)\n", err)
		} else if bt, ok := pc.Config.MatchBranch(branch); ok {
			fmt.Fprintf(w, "# branch: %s (%s)\n", branch, bt)
		} else {
			fmt.Fprintf(w, "# branch: %s (no matching branch type)\n", branch)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pc.Config); err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	return enc.Close()
}
