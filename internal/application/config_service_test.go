package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpractices/practices/internal/adapters/outbound/config"
	"github.com/devpractices/practices/internal/adapters/outbound/detector"
	"github.com/devpractices/practices/internal/adapters/outbound/filecheck"
	"github.com/devpractices/practices/internal/domain"
)

func newConfigService() *ConfigService {
	return NewConfigService(detector.New(), config.New(), filecheck.New(), nil)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_JavaScriptProjectWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "web", "version": "1.0.0"}`)

	pc, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: dir})
	require.NoError(t, err)

	assert.True(t, pc.IsDefault)
	assert.Empty(t, pc.Path)
	assert.Equal(t, domain.ProjectTypeJavaScript, pc.Config.ProjectType)
	require.NotNil(t, pc.Config.Version)
	assert.False(t, pc.Config.Version.UseBumpversion)
	assert.Equal(t, "package.json", pc.Config.Version.Files[0].Path)
	require.NotNil(t, pc.Detection)
	assert.Equal(t, domain.ProjectTypeJavaScript, pc.Detection.ProjectType)
	assert.Equal(t, []domain.ConfigSource{{Tier: domain.TierDefault}}, pc.Sources)
	assert.Empty(t, pc.Problems)
}

func TestResolve_TeamAndUserLayers(t *testing.T) {
	team := t.TempDir()
	project := filepath.Join(team, "project")
	writeFile(t, filepath.Join(team, ".practices.yaml"), "branching_strategy: github-flow\nmain_branch: master\n")
	writeFile(t, filepath.Join(project, ".practices.user.yaml"), "main_branch: trunk\n")

	pc, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: project})
	require.NoError(t, err)

	assert.Equal(t, domain.StrategyGitHubFlow, pc.Config.BranchingStrategy)
	assert.Equal(t, "trunk", pc.Config.MainBranch)
	assert.False(t, pc.IsDefault)
	assert.Equal(t, filepath.Join(project, ".practices.user.yaml"), pc.Path)

	require.Len(t, pc.Sources, 3)
	assert.Equal(t, domain.TierDefault, pc.Sources[0].Tier)
	assert.Equal(t, domain.TierTeam, pc.Sources[1].Tier)
	assert.Equal(t, domain.TierUser, pc.Sources[2].Tier)

	// The gitflow defaults still point hotfix at "main", which no longer exists.
	assert.NotEmpty(t, pc.Problems)
}

func TestResolve_StrictRejectsSemanticProblems(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".practices.yaml"), "main_branch: trunk\n")

	_, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: dir, Strict: true})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
}

func TestResolve_NoHierarchyIgnoresUserAndTeam(t *testing.T) {
	team := t.TempDir()
	project := filepath.Join(team, "project")
	writeFile(t, filepath.Join(team, ".practices.yaml"), "workflow_mode: team\n")
	writeFile(t, filepath.Join(project, ".practices.yaml"), "jira:\n  project_key: WEB\n")
	writeFile(t, filepath.Join(project, ".practices.user.yaml"), "main_branch: trunk\n")

	pc, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: project, NoHierarchy: true})
	require.NoError(t, err)

	assert.Equal(t, domain.WorkflowSolo, pc.Config.WorkflowMode)
	assert.Equal(t, "main", pc.Config.MainBranch)
	assert.Equal(t, "WEB", pc.Config.Jira.ProjectKey)
	assert.True(t, pc.Config.Jira.Enabled)
	assert.Equal(t, filepath.Join(project, ".practices.yaml"), pc.Path)
}

func TestResolve_NoDetectUsesPythonDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/x\n")

	pc, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: dir, NoDetect: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectTypePython, pc.Config.ProjectType)
	assert.Nil(t, pc.Detection)
}

func TestResolve_ExplicitPathMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	_, err := newConfigService().Resolve(domain.ResolveOptions{ConfigPath: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestResolve_ExplicitPathSkipsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
project_type: go
branching_strategy: trunk
develop_branch: null
branches:
  feature: {pattern: '^feature/(.+)$', base: main}
  bugfix: {pattern: '^bugfix/(.+)$', base: main}
`)

	pc, err := newConfigService().Resolve(domain.ResolveOptions{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, path, pc.Path)
	assert.False(t, pc.IsDefault)
	assert.Nil(t, pc.Config.Version)
	assert.Len(t, pc.Config.Branches, 2)
	assert.Empty(t, pc.Problems)
}

func TestResolve_SkipsMalformedTeamLayer(t *testing.T) {
	team := t.TempDir()
	project := filepath.Join(team, "web")
	teamFile := filepath.Join(team, ".practices.yaml")
	writeFile(t, teamFile, "branches: [unclosed\n")
	writeFile(t, filepath.Join(project, "package.json"), `{"name": "web", "version": "1.0.0"}`)

	pc, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: project})
	require.NoError(t, err)

	assert.Equal(t, domain.ProjectTypeJavaScript, pc.Config.ProjectType)
	assert.True(t, pc.IsDefault)
	assert.Equal(t, []domain.ConfigSource{{Tier: domain.TierDefault}}, pc.Sources)
	require.NotEmpty(t, pc.Problems)
	assert.Contains(t, pc.Problems[0], "skipped "+teamFile)

	report, err := newConfigService().ValidateProject(domain.ResolveOptions{ProjectRoot: project})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], teamFile)
	assert.Empty(t, report.Errors)
}

func TestResolve_SkippedLayerKeepsOtherLayers(t *testing.T) {
	team := t.TempDir()
	project := filepath.Join(team, "web")
	writeFile(t, filepath.Join(team, ".practices.yaml"), "main_branch: [unclosed\n")
	writeFile(t, filepath.Join(project, ".practices.user.yaml"), "workflow_mode: team\n")

	pc, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: project, Strict: true})
	require.NoError(t, err)

	assert.Equal(t, domain.WorkflowTeam, pc.Config.WorkflowMode)
	assert.Equal(t, "main", pc.Config.MainBranch)
	assert.False(t, pc.IsDefault)
	require.Len(t, pc.Sources, 2)
	assert.Equal(t, domain.TierUser, pc.Sources[1].Tier)
}

func TestResolve_MalformedExplicitFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "branches: [unclosed\n")

	_, err := newConfigService().Resolve(domain.ResolveOptions{ConfigPath: path})
	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)

	_, err = newConfigService().ValidateProject(domain.ResolveOptions{ConfigPath: path})
	require.ErrorAs(t, err, &perr)
}

func TestResolve_StructuralErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".practices.yaml"), "project_type: cobol\n")

	_, err := newConfigService().Resolve(domain.ResolveOptions{ProjectRoot: dir})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors[0], "project_type")
}

func TestValidateProject_ReportsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"version": "1.0.0"}`)

	report, err := newConfigService().ValidateProject(domain.ResolveOptions{ProjectRoot: dir})
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{"CHANGELOG.md"}, report.MissingFiles)
}

func TestValidateProject_PythonFixtureIsValid(t *testing.T) {
	report, err := newConfigService().ValidateProject(domain.ResolveOptions{
		ProjectRoot: "../../testdata/projects/python-app",
		NoHierarchy: true,
	})
	require.NoError(t, err)

	assert.True(t, report.Valid, "errors=%v missing=%v", report.Errors, report.MissingFiles)
}

func TestValidateProject_SchemaErrorsSkipFileCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".practices.yaml"), "main_branch: trunk\n")

	report, err := newConfigService().ValidateProject(domain.ResolveOptions{ProjectRoot: dir})
	require.NoError(t, err)

	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Errors)
	assert.Empty(t, report.MissingFiles)
}

func TestInitConfig_WritesDetectedDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Cargo.toml"), "[package]\nname = \"x\"\n")
	svc := newConfigService()

	path, err := svc.InitConfig(dir, domain.InitOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".practices.yaml"), path)

	pc, err := svc.Resolve(domain.ResolveOptions{ProjectRoot: dir, Strict: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectTypeRust, pc.Config.ProjectType)
	assert.False(t, pc.IsDefault)
}

func TestInitConfig_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".practices.yml"), "{}\n")
	svc := newConfigService()

	_, err := svc.InitConfig(dir, domain.InitOptions{ProjectType: domain.ProjectTypeGo})
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	_, err = svc.InitConfig(dir, domain.InitOptions{ProjectType: domain.ProjectTypeGo, Overwrite: true})
	assert.NoError(t, err)
}

func TestInitConfig_SubstitutesPackagePlaceholder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "billing")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "billing"), 0o755))
	svc := newConfigService()

	_, err := svc.InitConfig(dir, domain.InitOptions{ProjectType: domain.ProjectTypePython})
	require.NoError(t, err)

	pc, err := svc.Resolve(domain.ResolveOptions{ProjectRoot: dir, NoHierarchy: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectTypePython, pc.Config.ProjectType)
	assert.Equal(t, "src/billing/__init__.py", pc.Config.Version.Files[0].Path)
	assert.Empty(t, pc.Problems)
}

func TestInitConfig_StrategyTemplate(t *testing.T) {
	dir := t.TempDir()
	svc := newConfigService()

	path, err := svc.InitConfig(dir, domain.InitOptions{
		ProjectType: domain.ProjectTypeGo,
		Strategy:    domain.StrategyTrunk,
	})
	require.NoError(t, err)

	pc, err := svc.Resolve(domain.ResolveOptions{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategyTrunk, pc.Config.BranchingStrategy)
	assert.Nil(t, pc.Config.DevelopBranch)
	assert.ElementsMatch(t, []string{"feature", "bugfix", "release"}, pc.Config.BranchNames())
	assert.Empty(t, pc.Problems)
}

func TestInitConfig_RejectsUnknownType(t *testing.T) {
	_, err := newConfigService().InitConfig(t.TempDir(), domain.InitOptions{ProjectType: "cobol"})
	assert.Error(t, err)
}

func TestSaveConfig_ValidatesBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	svc := newConfigService()

	_, err := svc.SaveConfig(dir, "", map[string]any{"workflow_mode": "swarm"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NoFileExists(t, filepath.Join(dir, ".practices.yaml"))

	path, err := svc.SaveConfig(dir, "", domain.DefaultConfigForType(domain.ProjectTypeGo))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestSaveConfig_RelativePathUsesProjectRoot(t *testing.T) {
	dir := t.TempDir()
	path, err := newConfigService().SaveConfig(dir, "config/practices.yaml", domain.DefaultConfigForType(domain.ProjectTypeGeneric))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config", "practices.yaml"), path)
}

func TestSetUserOverrides_AccumulateAndResolve(t *testing.T) {
	dir := t.TempDir()
	svc := newConfigService()

	_, err := svc.SetUserOverrides(dir, map[string]any{"workflow_mode": "team"})
	require.NoError(t, err)
	_, err = svc.SetUserOverrides(dir, map[string]any{"jira": map[string]any{"project_key": "OPS"}})
	require.NoError(t, err)

	pc, err := svc.Resolve(domain.ResolveOptions{ProjectRoot: dir})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkflowTeam, pc.Config.WorkflowMode)
	assert.Equal(t, "OPS", pc.Config.Jira.ProjectKey)
}

func TestSetUserOverrides_RequiresOverrides(t *testing.T) {
	_, err := newConfigService().SetUserOverrides(t.TempDir(), nil)
	assert.Error(t, err)
}
