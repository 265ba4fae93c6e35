package cli

import (
	"encoding/json"
	"fmt"

	"github.com/devpractices/practices/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newDetectCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "detect [path]",
		Short: "Detect the project type",
		Long:  "Score the project directory against per-language indicators and report the most likely type.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot(args)
			if err != nil {
				return err
			}

			result := newConfigService().Detect(root)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDetection(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output detection result as JSON")

	return cmd
}
