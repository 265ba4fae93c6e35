package domain

import (
	"fmt"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// ProjectType identifies the technology a project is built with.
type ProjectType string

const (
	ProjectTypePython     ProjectType = "python"
	ProjectTypeJavaScript ProjectType = "javascript"
	ProjectTypeTypeScript ProjectType = "typescript"
	ProjectTypeJava       ProjectType = "java"
	ProjectTypeCSharp     ProjectType = "csharp"
	ProjectTypeGo         ProjectType = "go"
	ProjectTypeRust       ProjectType = "rust"
	ProjectTypeGeneric    ProjectType = "generic"
)

// ValidProjectTypes is also the tie-break order used by detection.
var ValidProjectTypes = []ProjectType{
	ProjectTypePython,
	ProjectTypeJavaScript,
	ProjectTypeTypeScript,
	ProjectTypeJava,
	ProjectTypeCSharp,
	ProjectTypeGo,
	ProjectTypeRust,
	ProjectTypeGeneric,
}

func (pt ProjectType) IsValid() bool {
	for _, v := range ValidProjectTypes {
		if pt == v {
			return true
		}
	}
	return false
}

// BranchingStrategy names the branching model a project follows.
type BranchingStrategy string

const (
	StrategyGitFlow    BranchingStrategy = "gitflow"
	StrategyGitHubFlow BranchingStrategy = "github-flow"
	StrategyTrunk      BranchingStrategy = "trunk"
)

var ValidBranchingStrategies = []BranchingStrategy{StrategyGitFlow, StrategyGitHubFlow, StrategyTrunk}

func (s BranchingStrategy) IsValid() bool {
	for _, v := range ValidBranchingStrategies {
		if s == v {
			return true
		}
	}
	return false
}

// RequiredBranchTypes returns the branch-type keys the strategy cannot work
// without, in the order they are reported when missing.
func (s BranchingStrategy) RequiredBranchTypes() []string {
	if s == StrategyGitFlow {
		return []string{"feature", "bugfix", "hotfix", "release"}
	}
	return []string{"feature", "bugfix"}
}

type WorkflowMode string

const (
	WorkflowSolo WorkflowMode = "solo"
	WorkflowTeam WorkflowMode = "team"
)

var ValidWorkflowModes = []WorkflowMode{WorkflowSolo, WorkflowTeam}

func (m WorkflowMode) IsValid() bool {
	return m == WorkflowSolo || m == WorkflowTeam
}

type VersionBump string

const (
	BumpMajor VersionBump = "major"
	BumpMinor VersionBump = "minor"
	BumpPatch VersionBump = "patch"
	BumpNone  VersionBump = "none"
)

var ValidVersionBumps = []VersionBump{BumpMajor, BumpMinor, BumpPatch, BumpNone}

func (b VersionBump) IsValid() bool {
	for _, v := range ValidVersionBumps {
		if b == v {
			return true
		}
	}
	return false
}

// Configuration file names, most preferred first.
const (
	ConfigFileName        = ".practices.yaml"
	ConfigFileNameAlt     = ".practices.yml"
	UserConfigFileName    = ".practices.user.yaml"
	UserConfigFileNameAlt = ".practices.user.yml"
)

// PRTemplateOrder is the order in which well-known pull-request templates are
// listed and checked. Other template keys follow in lexical order.
var PRTemplateOrder = []string{"feature", "bugfix", "release", "hotfix", "docs"}

type BranchConfig struct {
	Pattern     string       `yaml:"pattern" json:"pattern"`
	Base        string       `yaml:"base" json:"base"`
	Target      []string     `yaml:"target,omitempty" json:"target,omitempty"`
	VersionBump *VersionBump `yaml:"version_bump" json:"version_bump"`
}

type VersionFileConfig struct {
	Path    string `yaml:"path" json:"path"`
	Pattern string `yaml:"pattern" json:"pattern"`
}

type VersionConfig struct {
	Files             []VersionFileConfig `yaml:"files" json:"files"`
	UseBumpversion    bool                `yaml:"use_bumpversion" json:"use_bumpversion"`
	BumpversionConfig *string             `yaml:"bumpversion_config" json:"bumpversion_config"`
	Changelog         *string             `yaml:"changelog" json:"changelog"`
}

// UnmarshalYAML fills the documented defaults for keys the document omits.
// An explicit null still clears the optional paths.
func (v *VersionConfig) UnmarshalYAML(value *yaml.Node) error {
	type raw VersionConfig
	r := raw{
		UseBumpversion:    true,
		BumpversionConfig: stringPtr(".bumpversion.cfg"),
		Changelog:         stringPtr("CHANGELOG.md"),
	}
	if err := value.Decode(&r); err != nil {
		return err
	}
	*v = VersionConfig(r)
	return nil
}

type PRChecks struct {
	RunTests   bool `yaml:"run_tests" json:"run_tests"`
	RunLinting bool `yaml:"run_linting" json:"run_linting"`
}

func (c *PRChecks) UnmarshalYAML(value *yaml.Node) error {
	type raw PRChecks
	r := raw{RunTests: true, RunLinting: true}
	if err := value.Decode(&r); err != nil {
		return err
	}
	*c = PRChecks(r)
	return nil
}

type PRConfig struct {
	Templates map[string]string `yaml:"templates,omitempty" json:"templates,omitempty"`
	Checks    *PRChecks         `yaml:"checks,omitempty" json:"checks,omitempty"`
}

// TemplateKeys lists template names in check order.
func (p PRConfig) TemplateKeys() []string {
	keys := make([]string, 0, len(p.Templates))
	seen := make(map[string]bool, len(PRTemplateOrder))
	for _, k := range PRTemplateOrder {
		seen[k] = true
		if _, ok := p.Templates[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range p.Templates {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

type JiraConfig struct {
	Enabled                bool   `yaml:"enabled" json:"enabled"`
	ProjectKey             string `yaml:"project_key" json:"project_key"`
	TransitionToInProgress bool   `yaml:"transition_to_in_progress" json:"transition_to_in_progress"`
	UpdateOnPRCreation     bool   `yaml:"update_on_pr_creation" json:"update_on_pr_creation"`
}

func (j *JiraConfig) UnmarshalYAML(value *yaml.Node) error {
	type raw JiraConfig
	r := raw{Enabled: true, TransitionToInProgress: true, UpdateOnPRCreation: true}
	if err := value.Decode(&r); err != nil {
		return err
	}
	*j = JiraConfig(r)
	return nil
}

type GitHubConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled"`
	Owner          string   `yaml:"owner,omitempty" json:"owner,omitempty"`
	Repo           string   `yaml:"repo,omitempty" json:"repo,omitempty"`
	CreatePR       bool     `yaml:"create_pr" json:"create_pr"`
	RequiredChecks []string `yaml:"required_checks,omitempty" json:"required_checks,omitempty"`
}

func (g *GitHubConfig) UnmarshalYAML(value *yaml.Node) error {
	type raw GitHubConfig
	r := raw{Enabled: true, CreatePR: true}
	if err := value.Decode(&r); err != nil {
		return err
	}
	*g = GitHubConfig(r)
	return nil
}

type PreCommitHook struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name,omitempty" json:"name,omitempty"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Entry       string   `yaml:"entry,omitempty" json:"entry,omitempty"`
	Language    string   `yaml:"language,omitempty" json:"language,omitempty"`
	Types       []string `yaml:"types,omitempty" json:"types,omitempty"`
}

type PreCommitConfig struct {
	Hooks []PreCommitHook `yaml:"hooks" json:"hooks"`
}

type LicenseFileType struct {
	Extension string `yaml:"extension" json:"extension"`
	Prefix    string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Start     string `yaml:"start,omitempty" json:"start,omitempty"`
	End       string `yaml:"end,omitempty" json:"end,omitempty"`
}

type LicenseHeaderConfig struct {
	Template  string            `yaml:"template" json:"template"`
	FileTypes []LicenseFileType `yaml:"file_types,omitempty" json:"file_types,omitempty"`
}

// ConfigurationSchema is the typed view of a resolved configuration.
type ConfigurationSchema struct {
	ProjectType       ProjectType             `yaml:"project_type" json:"project_type"`
	BranchingStrategy BranchingStrategy       `yaml:"branching_strategy" json:"branching_strategy"`
	WorkflowMode      WorkflowMode            `yaml:"workflow_mode" json:"workflow_mode"`
	MainBranch        string                  `yaml:"main_branch" json:"main_branch"`
	DevelopBranch     *string                 `yaml:"develop_branch" json:"develop_branch"`
	Branches          map[string]BranchConfig `yaml:"branches" json:"branches"`
	Version           *VersionConfig          `yaml:"version,omitempty" json:"version,omitempty"`
	PullRequests      *PRConfig               `yaml:"pull_requests,omitempty" json:"pull_requests,omitempty"`
	Jira              *JiraConfig             `yaml:"jira,omitempty" json:"jira,omitempty"`
	GitHub            *GitHubConfig           `yaml:"github,omitempty" json:"github,omitempty"`
	PreCommit         *PreCommitConfig        `yaml:"pre_commit,omitempty" json:"pre_commit,omitempty"`
	LicenseHeaders    *LicenseHeaderConfig    `yaml:"license_headers,omitempty" json:"license_headers,omitempty"`
}

func (c *ConfigurationSchema) UnmarshalYAML(value *yaml.Node) error {
	type raw ConfigurationSchema
	r := raw{
		ProjectType:       ProjectTypePython,
		BranchingStrategy: StrategyGitFlow,
		WorkflowMode:      WorkflowSolo,
		MainBranch:        "main",
		DevelopBranch:     stringPtr("develop"),
	}
	if err := value.Decode(&r); err != nil {
		return err
	}
	if r.Branches == nil {
		r.Branches = map[string]BranchConfig{}
	}
	*c = ConfigurationSchema(r)
	return nil
}

// DevelopBranchName returns the integration branch, or "" when unset.
func (c ConfigurationSchema) DevelopBranchName() string {
	if c.DevelopBranch == nil {
		return ""
	}
	return *c.DevelopBranch
}

// BranchNames returns the configured branch-type keys sorted.
func (c ConfigurationSchema) BranchNames() []string {
	names := make([]string, 0, len(c.Branches))
	for name := range c.Branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MatchBranch returns the branch type whose pattern matches name. Types are
// tried in lexical order; patterns that do not compile never match.
func (c ConfigurationSchema) MatchBranch(name string) (string, bool) {
	for _, bt := range c.BranchNames() {
		re, err := regexp.Compile(c.Branches[bt].Pattern)
		if err != nil {
			continue
		}
		if re.MatchString(name) {
			return bt, true
		}
	}
	return "", false
}

// DecodeSchema builds the typed schema from a raw mapping. It does not
// validate; run ValidateSchema first when the input is untrusted.
func DecodeSchema(raw map[string]any) (ConfigurationSchema, error) {
	if raw == nil {
		raw = map[string]any{}
	}
	data, err := yaml.Marshal(raw)
	if err != nil {
		return ConfigurationSchema{}, fmt.Errorf("encoding configuration: %w", err)
	}
	var cfg ConfigurationSchema
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ConfigurationSchema{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// ToMap converts the schema back into a raw mapping.
func (c ConfigurationSchema) ToMap() (map[string]any, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return NormalizeMap(out), nil
}

func stringPtr(s string) *string { return &s }
