package domain

// ProjectDetector guesses a project's type from its files.
type ProjectDetector interface {
	Detect(projectRoot string) DetectionResult
}

// ConfigStore finds, reads and writes configuration files.
type ConfigStore interface {
	// Locate returns existing configuration files from lowest to highest
	// precedence: team files (outermost first), then project, then user.
	Locate(projectRoot string) []ConfigSource
	// ProjectFile returns the project configuration file in dir, if any.
	ProjectFile(dir string) (string, bool)
	Load(path string) (map[string]any, error)
	Save(path string, data map[string]any) error
	// WriteUserOverrides merges overrides into the user file in projectRoot
	// and returns the path written.
	WriteUserOverrides(projectRoot string, overrides map[string]any) (string, error)
}

// ReferenceChecker verifies that files a configuration points at exist.
type ReferenceChecker interface {
	Check(cfg ConfigurationSchema, projectRoot string) (bool, []string)
	Exists(projectRoot, relPath string) bool
}

// RepoInspector reads version-control metadata.
type RepoInspector interface {
	RepoRoot(path string) (string, error)
}
