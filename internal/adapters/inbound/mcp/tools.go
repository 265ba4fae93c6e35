package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/devpractices/practices/internal/adapters/outbound/config"
	"github.com/devpractices/practices/internal/adapters/outbound/detector"
	"github.com/devpractices/practices/internal/adapters/outbound/filecheck"
	"github.com/devpractices/practices/internal/application"
	"github.com/devpractices/practices/internal/domain"
)

func registerTools(s *server.MCPServer, projectRoot string) {
	s.AddTool(
		mcplib.NewTool("get_config",
			mcplib.WithDescription("Returns the effective project configuration merged from defaults, team, project and user files, with its sources"),
			mcplib.WithBoolean("no_hierarchy", mcplib.Description("Ignore team and user configuration files")),
			mcplib.WithBoolean("strict", mcplib.Description("Fail when the merged configuration has semantic problems")),
		),
		handleGetConfig(projectRoot),
	)

	s.AddTool(
		mcplib.NewTool("create_config",
			mcplib.WithDescription("Creates .practices.yaml from the defaults for the project type and branching strategy"),
			mcplib.WithString("project_type", mcplib.Description("Project type; detected when omitted")),
			mcplib.WithString("strategy", mcplib.Description("Branching strategy: gitflow, github-flow or trunk (default: gitflow)")),
			mcplib.WithString("package", mcplib.Description("Package name substituted for __project__ in paths")),
			mcplib.WithBoolean("overwrite", mcplib.Description("Replace an existing project configuration")),
		),
		handleCreateConfig(projectRoot),
	)

	s.AddTool(
		mcplib.NewTool("validate_config",
			mcplib.WithDescription("Validates the effective configuration and checks that referenced files exist"),
		),
		handleValidateConfig(projectRoot),
	)

	s.AddTool(
		mcplib.NewTool("detect_project_type",
			mcplib.WithDescription("Detects the project type with confidence, per-type scores and matched indicators"),
		),
		handleDetect(projectRoot),
	)

	s.AddTool(
		mcplib.NewTool("save_config",
			mcplib.WithDescription("Validates a complete configuration and writes it atomically"),
			mcplib.WithObject("config", mcplib.Required(), mcplib.Description("Configuration mapping to save")),
			mcplib.WithString("path", mcplib.Description("Destination file, relative to the project root (default: .practices.yaml)")),
		),
		handleSaveConfig(projectRoot),
	)

	s.AddTool(
		mcplib.NewTool("set_user_config",
			mcplib.WithDescription("Merges personal overrides into .practices.user.yaml"),
			mcplib.WithObject("overrides", mcplib.Required(), mcplib.Description("Mapping merged over the existing user configuration")),
		),
		handleSetUserConfig(projectRoot),
	)
}

func newConfigService() *application.ConfigService {
	return application.NewConfigService(detector.New(), config.New(), filecheck.New(), nil)
}

func handleGetConfig(projectRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		noHierarchy, _ := args["no_hierarchy"].(bool)
		strict, _ := args["strict"].(bool)

		pc, err := newConfigService().Resolve(domain.ResolveOptions{
			ProjectRoot: projectRoot,
			NoHierarchy: noHierarchy,
			Strict:      strict,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("resolve failed: %v", err)), nil
		}
		return jsonResult(pc)
	}
}

func handleCreateConfig(projectRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		projectType, _ := args["project_type"].(string)
		strategy, _ := args["strategy"].(string)
		pkg, _ := args["package"].(string)
		overwrite, _ := args["overwrite"].(bool)

		path, err := newConfigService().InitConfig(projectRoot, domain.InitOptions{
			ProjectType: domain.ProjectType(projectType),
			Strategy:    domain.BranchingStrategy(strategy),
			PackageName: pkg,
			Overwrite:   overwrite,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("create failed: %v", err)), nil
		}
		return jsonResult(map[string]string{"path": path})
	}
}

func handleValidateConfig(projectRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := newConfigService().ValidateProject(domain.ResolveOptions{ProjectRoot: projectRoot})
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleDetect(projectRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(newConfigService().Detect(projectRoot))
	}
}

func handleSaveConfig(projectRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		data, ok := objectArg(args, "config")
		if !ok {
			return errorResult("config must be an object"), nil
		}
		path, _ := args["path"].(string)

		written, err := newConfigService().SaveConfig(projectRoot, path, data)
		if err != nil {
			return errorResult(fmt.Sprintf("save failed: %v", err)), nil
		}
		return jsonResult(map[string]string{"path": written})
	}
}

func handleSetUserConfig(projectRoot string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		overrides, ok := objectArg(request.GetArguments(), "overrides")
		if !ok {
			return errorResult("overrides must be an object"), nil
		}

		written, err := newConfigService().SetUserOverrides(projectRoot, overrides)
		if err != nil {
			return errorResult(fmt.Sprintf("set failed: %v", err)), nil
		}
		return jsonResult(map[string]string{"path": written})
	}
}

// objectArg returns args[name] as a normalized mapping.
func objectArg(args map[string]any, name string) (map[string]any, bool) {
	m, ok := domain.NormalizeValue(args[name]).(map[string]any)
	return m, ok
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
