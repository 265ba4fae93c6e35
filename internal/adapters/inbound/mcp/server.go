package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewPracticesMCPServer creates an MCP server exposing configuration tools
// and resources for the project rooted at projectRoot.
func NewPracticesMCPServer(projectRoot string) *server.MCPServer {
	s := server.NewMCPServer(
		"practices",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectRoot)
	registerResources(s, projectRoot)

	return s
}
