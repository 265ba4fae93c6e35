package cli

import (
	"fmt"

	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var (
		projectType string
		strategy    string
		pkg         string
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .practices.yaml configuration file",
		Long:  "Create a .practices.yaml with the defaults for your project type and branching strategy.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot(args)
			if err != nil {
				return err
			}

			path, err := newConfigService().InitConfig(root, domain.InitOptions{
				ProjectType: domain.ProjectType(projectType),
				Strategy:    domain.BranchingStrategy(strategy),
				PackageName: pkg,
				Overwrite:   force,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectType, "type", "", "Project type (python, javascript, typescript, java, csharp, go, rust, generic); detected when empty")
	cmd.Flags().StringVar(&strategy, "strategy", "gitflow", "Branching strategy (gitflow, github-flow, trunk)")
	cmd.Flags().StringVar(&pkg, "package", "", "Package name substituted for __project__ in paths")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing project configuration")

	return cmd
}
