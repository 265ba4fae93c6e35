package domain_test

import (
	"testing"

	"github.com/devpractices/practices/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigForType_AllTypesValidate(t *testing.T) {
	for _, pt := range domain.ValidProjectTypes {
		t.Run(string(pt), func(t *testing.T) {
			cfg := domain.DefaultConfigForType(pt)
			result := domain.ValidateSchema(cfg)
			assert.True(t, result.Valid, "errors: %v", result.Errors)
			assert.Equal(t, string(pt), cfg["project_type"])
			assert.Equal(t, "gitflow", cfg["branching_strategy"])
			assert.Equal(t, "solo", cfg["workflow_mode"])
		})
	}
}

func TestDefaultConfigForStrategy_AllCombinationsValidate(t *testing.T) {
	for _, pt := range domain.ValidProjectTypes {
		for _, s := range domain.ValidBranchingStrategies {
			cfg := domain.DefaultConfigForStrategy(pt, s)
			result := domain.ValidateSchema(cfg)
			assert.True(t, result.Valid, "%s/%s errors: %v", pt, s, result.Errors)
		}
	}
}

func TestDefaultConfigForType_JavaScript(t *testing.T) {
	cfg, err := domain.DecodeSchema(domain.DefaultConfigForType(domain.ProjectTypeJavaScript))
	require.NoError(t, err)

	require.NotNil(t, cfg.Version)
	assert.False(t, cfg.Version.UseBumpversion)
	assert.Nil(t, cfg.Version.BumpversionConfig)
	require.Len(t, cfg.Version.Files, 1)
	assert.Equal(t, "package.json", cfg.Version.Files[0].Path)
	require.NotNil(t, cfg.PreCommit)
	assert.Equal(t, "prettier", cfg.PreCommit.Hooks[0].ID)
	assert.Equal(t, "eslint --fix", cfg.PreCommit.Hooks[1].Entry)
}

func TestDefaultConfigForType_PythonUsesPlaceholderAndBumpversion(t *testing.T) {
	cfg, err := domain.DecodeSchema(domain.DefaultConfigForType(domain.ProjectTypePython))
	require.NoError(t, err)

	assert.True(t, cfg.Version.UseBumpversion)
	require.NotNil(t, cfg.Version.BumpversionConfig)
	assert.Equal(t, ".bumpversion.cfg", *cfg.Version.BumpversionConfig)
	assert.Equal(t, "src/__project__/__init__.py", cfg.Version.Files[0].Path)
	assert.Equal(t, "pyproject.toml", cfg.Version.Files[1].Path)
	assert.Len(t, cfg.PreCommit.Hooks, 4)
}

func TestDefaultConfigForType_GitFlowBranches(t *testing.T) {
	cfg, err := domain.DecodeSchema(domain.DefaultConfigForType(domain.ProjectTypeGo))
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.DevelopBranchName())
	assert.ElementsMatch(t, []string{"feature", "bugfix", "hotfix", "release", "docs"}, cfg.BranchNames())

	hotfix := cfg.Branches["hotfix"]
	assert.Equal(t, "main", hotfix.Base)
	assert.Equal(t, []string{"main", "develop"}, hotfix.Target)
	require.NotNil(t, hotfix.VersionBump)
	assert.Equal(t, domain.BumpPatch, *hotfix.VersionBump)
	assert.Nil(t, cfg.Branches["feature"].VersionBump)

	assert.Equal(t, "version.go", cfg.Version.Files[0].Path)
	assert.Equal(t, "PMS", cfg.Jira.ProjectKey)
	assert.Equal(t, []string{"tests"}, cfg.GitHub.RequiredChecks)
}

func TestDefaultConfigForType_GenericHasNoHooks(t *testing.T) {
	cfg := domain.DefaultConfigForType(domain.ProjectTypeGeneric)
	assert.NotContains(t, cfg, "pre_commit")
	files := cfg["version"].(map[string]any)["files"].([]any)
	assert.Equal(t, "VERSION", files[0].(map[string]any)["path"])
}

func TestDefaultConfigForType_UnknownFallsBackToGeneric(t *testing.T) {
	cfg := domain.DefaultConfigForType(domain.ProjectType("cobol"))
	assert.Equal(t, "generic", cfg["project_type"])
}

func TestDefaultConfigForType_Deterministic(t *testing.T) {
	for _, pt := range domain.ValidProjectTypes {
		assert.Equal(t, domain.DefaultConfigForType(pt), domain.DefaultConfigForType(pt))
	}
}

func TestDefaultConfigForType_CallsDoNotShareState(t *testing.T) {
	first := domain.DefaultConfigForType(domain.ProjectTypeRust)
	first["branches"].(map[string]any)["feature"].(map[string]any)["base"] = "mutated"
	first["github"].(map[string]any)["required_checks"].([]any)[0] = "mutated"

	second := domain.DefaultConfigForType(domain.ProjectTypeRust)
	assert.Equal(t, "develop", second["branches"].(map[string]any)["feature"].(map[string]any)["base"])
	assert.Equal(t, "tests", second["github"].(map[string]any)["required_checks"].([]any)[0])
}

func TestDefaultConfigForStrategy_GitHubFlow(t *testing.T) {
	cfg, err := domain.DecodeSchema(domain.DefaultConfigForStrategy(domain.ProjectTypeGo, domain.StrategyGitHubFlow))
	require.NoError(t, err)

	assert.Nil(t, cfg.DevelopBranch)
	assert.ElementsMatch(t, []string{"feature", "bugfix", "hotfix", "docs"}, cfg.BranchNames())
	for name, b := range cfg.Branches {
		assert.Equal(t, "main", b.Base, name)
		assert.Empty(t, b.Target, name)
	}

	bt, ok := cfg.MatchBranch("hotfix/1.4.2-login-timeout")
	assert.True(t, ok)
	assert.Equal(t, "hotfix", bt)
	_, ok = cfg.MatchBranch("hotfix/PMS-12-login-timeout")
	assert.False(t, ok)
}

func TestDefaultConfigForStrategy_Trunk(t *testing.T) {
	cfg, err := domain.DecodeSchema(domain.DefaultConfigForStrategy(domain.ProjectTypeGo, domain.StrategyTrunk))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"feature", "bugfix", "release"}, cfg.BranchNames())
	assert.Equal(t, domain.BumpMinor, *cfg.Branches["release"].VersionBump)
}
