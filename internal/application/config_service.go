package application

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/devpractices/practices/internal/domain"
)

// ConfigService resolves, validates and writes project configuration.
type ConfigService struct {
	detector domain.ProjectDetector
	store    domain.ConfigStore
	checker  domain.ReferenceChecker
	logger   *slog.Logger
}

// NewConfigService wires the service. A nil logger uses slog.Default().
func NewConfigService(
	detector domain.ProjectDetector,
	store domain.ConfigStore,
	checker domain.ReferenceChecker,
	logger *slog.Logger,
) *ConfigService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigService{detector: detector, store: store, checker: checker, logger: logger}
}

// resolution is a merged but not yet validated configuration.
type resolution struct {
	raw       map[string]any
	root      string
	path      string
	isDefault bool
	sources   []domain.ConfigSource
	detection *domain.DetectionResult
	// skipped holds discovered files that failed to load.
	skipped []string
}

// Detect runs project-type detection on projectRoot.
func (s *ConfigService) Detect(projectRoot string) domain.DetectionResult {
	return s.detector.Detect(rootOrDot(projectRoot))
}

// Resolve produces the effective configuration for a project. With
// ConfigPath set exactly that file is loaded; otherwise detected defaults,
// team, project and user files are merged in increasing precedence.
//
// Structural schema errors always fail. Semantic problems are returned in
// ProjectConfig.Problems unless opts.Strict is set. Discovered files that
// cannot be loaded are skipped and listed in Problems as well.
func (s *ConfigService) Resolve(opts domain.ResolveOptions) (domain.ProjectConfig, error) {
	res, err := s.resolve(opts)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	if errs := domain.ValidateStructure(res.raw); len(errs) > 0 {
		return domain.ProjectConfig{}, &domain.ValidationError{Errors: errs}
	}
	cfg, err := domain.DecodeSchema(res.raw)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	problems := cfg.SemanticErrors()
	if len(problems) > 0 {
		if opts.Strict {
			return domain.ProjectConfig{}, &domain.ValidationError{Errors: problems}
		}
		s.logger.Warn("Configuration has semantic problems",
			slog.Int("count", len(problems)), slog.String("first", problems[0]))
	}

	return domain.ProjectConfig{
		Config:    cfg,
		Path:      res.path,
		IsDefault: res.isDefault,
		Sources:   res.sources,
		Detection: res.detection,
		Problems:  append(res.skipped, problems...),
	}, nil
}

// ValidateProject validates the resolved configuration and, when the schema
// is valid, checks that every file it references exists. A missing or
// malformed explicit config file is an error; discovered files that fail to
// load are reported in Warnings.
func (s *ConfigService) ValidateProject(opts domain.ResolveOptions) (domain.ValidationReport, error) {
	res, err := s.resolve(opts)
	if err != nil {
		return domain.ValidationReport{}, err
	}

	result := domain.ValidateSchema(res.raw)
	report := domain.ValidationReport{
		Valid:        result.Valid,
		Errors:       result.Errors,
		MissingFiles: []string{},
		Sources:      res.sources,
		Warnings:     res.skipped,
	}
	if !result.Valid {
		return report, nil
	}

	cfg, err := domain.DecodeSchema(res.raw)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	if ok, missing := s.checker.Check(cfg, res.root); !ok {
		report.Valid = false
		report.MissingFiles = missing
	}

	s.logger.Info("Validated configuration",
		slog.Bool("valid", report.Valid),
		slog.Int("errors", len(report.Errors)),
		slog.Int("missing_files", len(report.MissingFiles)))
	return report, nil
}

// InitConfig writes a new project configuration generated from the
// defaults and returns its path.
func (s *ConfigService) InitConfig(projectRoot string, opts domain.InitOptions) (string, error) {
	root, err := filepath.Abs(rootOrDot(projectRoot))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	if existing, ok := s.store.ProjectFile(root); ok && !opts.Overwrite {
		return "", fmt.Errorf("%w: %s (use --force to overwrite)", domain.ErrConfigExists, existing)
	}

	pt := opts.ProjectType
	switch {
	case pt == "":
		pt = s.detector.Detect(root).ProjectType
	case !pt.IsValid():
		return "", fmt.Errorf("unknown project type %q", pt)
	}
	strategy := opts.Strategy
	switch {
	case strategy == "":
		strategy = domain.StrategyGitFlow
	case !strategy.IsValid():
		return "", fmt.Errorf("unknown branching strategy %q", strategy)
	}

	cfg := domain.DefaultConfigForStrategy(pt, strategy)

	pkg := opts.PackageName
	if pkg == "" {
		pkg = domain.PackageNameFromDir(root)
		if pkg != "" && !s.checker.Exists(root, filepath.Join("src", pkg)) {
			pkg = ""
		}
	}
	if pkg != "" {
		cfg = domain.ResolvePlaceholders(cfg, pkg)
	}

	if result := domain.ValidateSchema(cfg); !result.Valid {
		return "", &domain.ValidationError{Errors: result.Errors}
	}

	path := filepath.Join(root, domain.ConfigFileName)
	if err := s.store.Save(path, cfg); err != nil {
		return "", err
	}
	s.logger.Info("Created configuration",
		slog.String("path", path),
		slog.String("project_type", string(pt)),
		slog.String("branching_strategy", string(strategy)))
	return path, nil
}

// SaveConfig validates data and writes it as a project configuration. An
// empty path means the default file in projectRoot; relative paths are
// taken from projectRoot.
func (s *ConfigService) SaveConfig(projectRoot, path string, data map[string]any) (string, error) {
	if result := domain.ValidateSchema(data); !result.Valid {
		return "", &domain.ValidationError{Errors: result.Errors}
	}

	root := rootOrDot(projectRoot)
	switch {
	case path == "":
		path = filepath.Join(root, domain.ConfigFileName)
	case !filepath.IsAbs(path):
		path = filepath.Join(root, path)
	}

	if err := s.store.Save(path, data); err != nil {
		return "", err
	}
	s.logger.Info("Saved configuration", slog.String("path", path))
	return path, nil
}

// SetUserOverrides merges overrides into the user configuration file.
func (s *ConfigService) SetUserOverrides(projectRoot string, overrides map[string]any) (string, error) {
	if len(overrides) == 0 {
		return "", errors.New("no overrides given")
	}
	return s.store.WriteUserOverrides(rootOrDot(projectRoot), overrides)
}

func (s *ConfigService) resolve(opts domain.ResolveOptions) (*resolution, error) {
	if opts.ConfigPath != "" {
		return s.resolveExplicit(opts)
	}

	root := rootOrDot(opts.ProjectRoot)
	res := &resolution{root: root}

	pt := domain.ProjectTypePython
	if !opts.NoDetect {
		det := s.detector.Detect(root)
		res.detection = &det
		pt = det.ProjectType
	}
	layers := []map[string]any{domain.DefaultConfigForType(pt)}
	res.sources = []domain.ConfigSource{{Tier: domain.TierDefault}}

	var found []domain.ConfigSource
	if opts.NoHierarchy {
		if p, ok := s.store.ProjectFile(root); ok {
			found = append(found, domain.ConfigSource{Path: p, Tier: domain.TierProject})
		}
	} else {
		found = s.store.Locate(root)
	}

	for _, src := range found {
		layer, err := s.store.Load(src.Path)
		if err != nil {
			s.logger.Warn("Skipping unloadable configuration",
				slog.String("tier", string(src.Tier)),
				slog.String("path", src.Path),
				slog.Any("error", err))
			res.skipped = append(res.skipped, fmt.Sprintf("skipped %s: %v", src.Path, err))
			continue
		}
		layers = append(layers, layer)
		res.sources = append(res.sources, src)
		res.path = src.Path
	}

	res.raw = domain.MergeConfigs(layers)
	res.isDefault = len(res.sources) == 1

	attrs := []any{
		slog.String("path", root),
		slog.String("project_type", string(pt)),
		slog.Any("sources", res.sources),
	}
	if res.detection != nil {
		attrs = append(attrs, slog.Float64("confidence", res.detection.Confidence))
	}
	s.logger.Info("Resolved configuration", attrs...)
	return res, nil
}

func (s *ConfigService) resolveExplicit(opts domain.ResolveOptions) (*resolution, error) {
	raw, err := s.store.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	root := opts.ProjectRoot
	if root == "" {
		root = filepath.Dir(opts.ConfigPath)
	}
	return &resolution{
		raw:     raw,
		root:    root,
		path:    opts.ConfigPath,
		sources: []domain.ConfigSource{{Path: opts.ConfigPath, Tier: domain.TierProject}},
	}, nil
}

func rootOrDot(root string) string {
	if root == "" {
		return "."
	}
	return root
}
