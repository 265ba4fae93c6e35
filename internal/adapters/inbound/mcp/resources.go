package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/devpractices/practices/internal/domain"
)

const (
	configURI    = "practices://config"
	detectionURI = "practices://detection"
)

func registerResources(s *server.MCPServer, projectRoot string) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Effective Configuration",
			mcplib.WithResourceDescription("Merged development-practice configuration with its sources"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectRoot),
	)

	s.AddResource(
		mcplib.NewResource(
			detectionURI,
			"Project Detection",
			mcplib.WithResourceDescription("Detected project type and per-type scores"),
			mcplib.WithMIMEType("application/json"),
		),
		handleDetectionResource(projectRoot),
	)
}

func handleConfigResource(projectRoot string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		pc, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: projectRoot})
		if err != nil {
			return nil, fmt.Errorf("resolve failed: %w", err)
		}
		return jsonResource(configURI, pc)
	}
}

func handleDetectionResource(projectRoot string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonResource(detectionURI, newConfigService().Detect(projectRoot))
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
