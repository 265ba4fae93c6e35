package domain

// Tier is the precedence level a configuration layer came from.
type Tier string

const (
	TierDefault Tier = "default"
	TierTeam    Tier = "team"
	TierProject Tier = "project"
	TierUser    Tier = "user"
)

// ConfigSource is one layer that took part in a resolution. The default
// layer has no path.
type ConfigSource struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Tier Tier   `json:"tier" yaml:"tier"`
}

func (s ConfigSource) String() string {
	if s.Path == "" {
		return string(s.Tier)
	}
	return string(s.Tier) + " (" + s.Path + ")"
}

// ProjectConfig is a resolved configuration and where it came from.
type ProjectConfig struct {
	Config    ConfigurationSchema `json:"config"`
	Path      string              `json:"path,omitempty"`
	IsDefault bool                `json:"is_default"`
	Sources   []ConfigSource      `json:"sources"`
	Detection *DetectionResult    `json:"detection,omitempty"`
	// Problems lists semantic issues that did not block resolution.
	Problems []string `json:"problems,omitempty"`
}

// ResolveOptions selects how a configuration is resolved.
type ResolveOptions struct {
	// ProjectRoot anchors the hierarchy. Empty means the working directory.
	ProjectRoot string
	// ConfigPath loads exactly one file and skips defaults and hierarchy.
	ConfigPath string
	// NoHierarchy ignores team and user layers.
	NoHierarchy bool
	// NoDetect skips detection and uses the python defaults.
	NoDetect bool
	// Strict turns semantic problems into a ValidationError.
	Strict bool
}

// InitOptions controls generation of a new project configuration.
type InitOptions struct {
	ProjectType ProjectType
	Strategy    BranchingStrategy
	PackageName string
	Overwrite   bool
}

// ValidationReport is the outcome of validating a project: schema errors
// plus any referenced files that are missing.
type ValidationReport struct {
	Valid        bool           `json:"valid"`
	Errors       []string       `json:"errors"`
	MissingFiles []string       `json:"missing_files"`
	Sources      []ConfigSource `json:"sources,omitempty"`
	// Warnings lists discovered files that were skipped.
	Warnings []string `json:"warnings,omitempty"`
}
