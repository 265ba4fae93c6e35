package cli

import (
	"encoding/json"
	"fmt"

	"github.com/devpractices/practices/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate the effective configuration and referenced files",
		Long: "Validate the merged configuration against the schema and branching rules, " +
			"then check that version files, changelog and templates exist. Exits non-zero when invalid.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot(args)
			if err != nil {
				return err
			}

			report, err := newConfigService().ValidateProject(opts.resolveOptions(root))
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderValidation(report))
			}

			if !report.Valid {
				return fmt.Errorf("configuration invalid: %d error(s), %d missing file(s)",
					len(report.Errors), len(report.MissingFiles))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output validation report as JSON")

	return cmd
}
