package domain

const (
	semverGroup    = `(\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?)`
	ticketPattern  = `([A-Z]+-\d+)-(.+)`
	simplePattern  = `(.+)`
	versionCapture = `(\d+\.\d+\.\d+)`
)

// DefaultConfigForType returns the built-in configuration for a project type
// using the gitflow strategy. Every call builds fresh values, so callers may
// modify the result freely. Unknown types fall back to the generic template.
func DefaultConfigForType(pt ProjectType) map[string]any {
	return DefaultConfigForStrategy(pt, StrategyGitFlow)
}

// DefaultConfigForStrategy is DefaultConfigForType with a chosen branching
// strategy. Unknown strategies fall back to gitflow.
func DefaultConfigForStrategy(pt ProjectType, strategy BranchingStrategy) map[string]any {
	if !pt.IsValid() {
		pt = ProjectTypeGeneric
	}
	if !strategy.IsValid() {
		strategy = StrategyGitFlow
	}

	cfg := map[string]any{
		"project_type":       string(pt),
		"branching_strategy": string(strategy),
		"workflow_mode":      string(WorkflowSolo),
		"main_branch":        "main",
		"branches":           branchesFor(strategy),
		"version":            versionFor(pt),
		"pull_requests":      pullRequestDefaults(),
		"jira": map[string]any{
			"enabled":                   true,
			"project_key":               "PMS",
			"transition_to_in_progress": true,
			"update_on_pr_creation":     true,
		},
		"github": map[string]any{
			"enabled":         true,
			"create_pr":       true,
			"required_checks": []any{"tests"},
		},
	}
	if strategy == StrategyGitFlow {
		cfg["develop_branch"] = "develop"
	} else {
		cfg["develop_branch"] = nil
	}
	if hooks := preCommitHooksFor(pt); len(hooks) > 0 {
		cfg["pre_commit"] = map[string]any{"hooks": hooks}
	}
	return cfg
}

func branch(pattern, base string, targets []any, bump any) map[string]any {
	b := map[string]any{
		"pattern":      pattern,
		"base":         base,
		"version_bump": bump,
	}
	if targets != nil {
		b["target"] = targets
	}
	return b
}

func branchesFor(strategy BranchingStrategy) map[string]any {
	switch strategy {
	case StrategyGitHubFlow:
		return map[string]any{
			"feature": branch(`^feature/`+ticketPattern+`$`, "main", nil, nil),
			"bugfix":  branch(`^bugfix/`+ticketPattern+`$`, "main", nil, nil),
			"hotfix":  branch(`^hotfix/`+semverGroup+`-(.+)$`, "main", nil, string(BumpPatch)),
			"docs":    branch(`^docs/`+simplePattern+`$`, "main", nil, nil),
		}
	case StrategyTrunk:
		return map[string]any{
			"feature": branch(`^feature/`+ticketPattern+`$`, "main", nil, nil),
			"bugfix":  branch(`^bugfix/`+ticketPattern+`$`, "main", nil, nil),
			"release": branch(`^release/`+semverGroup+`$`, "main", nil, string(BumpMinor)),
		}
	default:
		return map[string]any{
			"feature": branch(`^feature/`+ticketPattern+`$`, "develop", nil, nil),
			"bugfix":  branch(`^bugfix/`+ticketPattern+`$`, "develop", nil, nil),
			"hotfix":  branch(`^hotfix/`+semverGroup+`-(.+)$`, "main", []any{"main", "develop"}, string(BumpPatch)),
			"release": branch(`^release/`+semverGroup+`(?:-(.+))?$`, "develop", []any{"main", "develop"}, string(BumpMinor)),
			"docs":    branch(`^docs/`+simplePattern+`$`, "develop", nil, nil),
		}
	}
}

func versionFile(path, pattern string) map[string]any {
	return map[string]any{"path": path, "pattern": pattern}
}

func versionFor(pt ProjectType) map[string]any {
	var files []any
	useBumpversion := false
	switch pt {
	case ProjectTypePython:
		files = []any{
			versionFile("src/"+ProjectPlaceholder+"/__init__.py", `__version__ = "`+versionCapture+`"`),
			versionFile("pyproject.toml", `version = "`+versionCapture+`"`),
		}
		useBumpversion = true
	case ProjectTypeJavaScript, ProjectTypeTypeScript:
		files = []any{versionFile("package.json", `"version": "`+versionCapture+`"`)}
	case ProjectTypeJava:
		files = []any{versionFile("pom.xml", `<version>`+versionCapture+`</version>`)}
	case ProjectTypeCSharp:
		files = []any{versionFile("Directory.Build.props", `<Version>`+versionCapture+`</Version>`)}
	case ProjectTypeGo:
		files = []any{versionFile("version.go", `const Version = "`+versionCapture+`"`)}
	case ProjectTypeRust:
		files = []any{versionFile("Cargo.toml", `version = "`+versionCapture+`"`)}
	default:
		files = []any{versionFile("VERSION", versionCapture)}
	}

	v := map[string]any{
		"files":           files,
		"use_bumpversion": useBumpversion,
		"changelog":       "CHANGELOG.md",
	}
	if useBumpversion {
		v["bumpversion_config"] = ".bumpversion.cfg"
	} else {
		v["bumpversion_config"] = nil
	}
	return v
}

func pullRequestDefaults() map[string]any {
	return map[string]any{
		"templates": map[string]any{
			"feature": "## {ticket_id}: {description}\n\n" +
				"### Description\n{ticket_description}\n\n" +
				"### Changes\n- \n\n" +
				"### Testing\n- [ ] Unit tests added\n- [ ] Manually tested\n",
			"bugfix": "## Fix {ticket_id}: {description}\n\n" +
				"### Problem\n{ticket_description}\n\n" +
				"### Solution\n- \n\n" +
				"### Testing\n- [ ] Regression test added\n",
			"release": "## Release {version}\n\n" +
				"### Changes\nSee CHANGELOG.md for details.\n\n" +
				"### Checklist\n- [ ] Version bumped\n- [ ] Changelog updated\n",
			"hotfix": "## Hotfix {version}: {description}\n\n" +
				"### Problem\n\n" +
				"### Fix\n\n" +
				"### Checklist\n- [ ] Merged back to develop\n",
		},
		"checks": map[string]any{
			"run_tests":   true,
			"run_linting": true,
		},
	}
}

func hook(id, name, description, entry, language string, types ...string) map[string]any {
	t := make([]any, len(types))
	for i, s := range types {
		t[i] = s
	}
	return map[string]any{
		"id":          id,
		"name":        name,
		"description": description,
		"entry":       entry,
		"language":    language,
		"types":       t,
	}
}

func preCommitHooksFor(pt ProjectType) []any {
	switch pt {
	case ProjectTypePython:
		return []any{
			hook("black", "black", "Format Python code", "black", "python", "python"),
			hook("isort", "isort", "Sort Python imports", "isort", "python", "python"),
			hook("flake8", "flake8", "Lint Python code", "flake8", "python", "python"),
			hook("mypy", "mypy", "Type-check Python code", "mypy", "python", "python"),
		}
	case ProjectTypeJavaScript:
		return []any{
			hook("prettier", "prettier", "Format JavaScript code", "prettier --write", "node", "javascript"),
			hook("eslint", "eslint", "Lint JavaScript code", "eslint --fix", "node", "javascript"),
		}
	case ProjectTypeTypeScript:
		return []any{
			hook("prettier", "prettier", "Format TypeScript code", "prettier --write", "node", "ts"),
			hook("eslint", "eslint", "Lint TypeScript code", "eslint --fix", "node", "ts"),
		}
	case ProjectTypeJava:
		return []any{
			hook("checkstyle", "checkstyle", "Check Java style", "mvn checkstyle:check", "system", "java"),
			hook("spotless", "spotless", "Format Java code", "mvn spotless:apply", "system", "java"),
		}
	case ProjectTypeCSharp:
		return []any{
			hook("dotnet-format", "dotnet format", "Format C# code", "dotnet format", "system", "c#"),
		}
	case ProjectTypeGo:
		return []any{
			hook("go-fmt", "go fmt", "Format Go code", "go fmt", "system", "go"),
			hook("go-vet", "go vet", "Vet Go code", "go vet", "system", "go"),
			hook("golint", "golint", "Lint Go code", "golint", "system", "go"),
		}
	case ProjectTypeRust:
		return []any{
			hook("rustfmt", "rustfmt", "Format Rust code", "cargo fmt", "system", "rust"),
			hook("clippy", "clippy", "Lint Rust code", "cargo clippy", "system", "rust"),
		}
	default:
		return nil
	}
}
