package cli

import (
	mcpadapter "github.com/devpractices/practices/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the practices MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start practices MCP server (stdio)",
		Long:  "Start the practices MCP server using stdio transport. This lets AI coding assistants read, validate and update project configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := opts.projectRoot(nil)
			if err != nil {
				return err
			}
			s := mcpadapter.NewPracticesMCPServer(root)
			return server.ServeStdio(s)
		},
	}

	return cmd
}
