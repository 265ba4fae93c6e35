package detector

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/afero"
)

// maxContentSize caps how much of a file a content indicator reads.
const maxContentSize = 64 * 1024

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"dist":         true,
	"target":       true,
}

var errStopWalk = errors.New("stop walk")

// FSDetector scores a project directory against weighted indicators.
// It only reads the filesystem and is safe for concurrent use.
type FSDetector struct {
	fs       afero.Fs
	cfg      domain.DetectorConfig
	patterns map[string]*regexp.Regexp
	logger   *slog.Logger
}

func New() *FSDetector {
	return NewWithConfig(afero.NewOsFs(), domain.DefaultDetectorConfig(), nil)
}

// NewWithConfig builds a detector over fs. Content patterns that do not
// compile are logged and never match.
func NewWithConfig(fs afero.Fs, cfg domain.DetectorConfig, logger *slog.Logger) *FSDetector {
	if logger == nil {
		logger = slog.Default()
	}
	d := &FSDetector{fs: fs, cfg: cfg, patterns: map[string]*regexp.Regexp{}, logger: logger}
	for pt, indicators := range cfg.Indicators {
		for _, ind := range indicators {
			if ind.Kind != domain.IndicatorContent {
				continue
			}
			if _, seen := d.patterns[ind.Pattern]; seen {
				continue
			}
			re, err := regexp.Compile(ind.Pattern)
			if err != nil {
				logger.Warn("Ignoring content indicator with invalid pattern",
					slog.String("project_type", string(pt)),
					slog.String("pattern", ind.Pattern),
					slog.Any("error", err))
			}
			d.patterns[ind.Pattern] = re
		}
	}
	return d
}

// Detect never fails: unreadable or missing roots are reported as generic.
func (d *FSDetector) Detect(projectRoot string) domain.DetectionResult {
	result := domain.DetectionResult{
		ProjectType: domain.ProjectTypeGeneric,
		Scores:      make(map[domain.ProjectType]float64, len(domain.ValidProjectTypes)),
		Matched:     map[domain.ProjectType][]string{},
	}
	for _, pt := range domain.ValidProjectTypes {
		result.Scores[pt] = 0
	}

	info, err := d.fs.Stat(projectRoot)
	if err != nil || !info.IsDir() {
		d.logger.Debug("Project root is not a readable directory", slog.String("path", projectRoot))
		return result
	}

	for _, pt := range domain.ValidProjectTypes {
		var score domain.TypeScore
		for _, ind := range d.cfg.Indicators[pt] {
			score.Max += ind.PossibleWeight()
			if w, ok := d.evaluate(projectRoot, ind); ok {
				score.Raw += w
				result.Matched[pt] = append(result.Matched[pt], ind.String())
			}
		}
		result.Scores[pt] = score.Normalized()
	}

	result.ProjectType, result.Confidence = domain.Classify(result.Scores, d.threshold())
	d.logger.Debug("Detected project type",
		slog.String("path", projectRoot),
		slog.String("project_type", string(result.ProjectType)),
		slog.Float64("confidence", result.Confidence))
	return result
}

func (d *FSDetector) threshold() float64 {
	if d.cfg.ConfidenceThreshold <= 0 {
		return domain.DefaultConfidenceThreshold
	}
	return d.cfg.ConfidenceThreshold
}

func (d *FSDetector) evaluate(root string, ind domain.Indicator) (float64, bool) {
	switch ind.Kind {
	case domain.IndicatorFile:
		return ind.PossibleWeight(), d.exists(filepath.Join(root, filepath.FromSlash(ind.File)))
	case domain.IndicatorFileInDir:
		return ind.PossibleWeight(), d.exists(filepath.Join(root, filepath.FromSlash(ind.Dir), ind.File))
	case domain.IndicatorExtension:
		count := d.countExtension(root, ind.Ext, ind.CountLimit())
		if count < max(ind.MinCount, 1) {
			return 0, false
		}
		return ind.ExtensionScore(count), true
	case domain.IndicatorContent:
		return ind.PossibleWeight(), d.matchContent(root, ind)
	default:
		return 0, false
	}
}

func (d *FSDetector) exists(path string) bool {
	_, err := d.fs.Stat(path)
	return err == nil
}

// walk visits every regular file under root, skipping dependency and build
// directories. fn returns errStopWalk to end early.
func (d *FSDetector) walk(root string, fn func(path string) error) {
	err := afero.Walk(d.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if info != nil && info.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		return fn(path)
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		d.logger.Debug("Walk failed", slog.String("path", root), slog.Any("error", err))
	}
}

func (d *FSDetector) countExtension(root, ext string, limit int) int {
	count := 0
	d.walk(root, func(path string) error {
		if strings.HasSuffix(path, ext) {
			count++
			if count >= limit {
				return errStopWalk
			}
		}
		return nil
	})
	return count
}

func (d *FSDetector) matchContent(root string, ind domain.Indicator) bool {
	re := d.patterns[ind.Pattern]
	if re == nil {
		return false
	}
	if !hasMeta(ind.Glob) {
		return d.fileMatches(filepath.Join(root, filepath.FromSlash(ind.Glob)), re)
	}

	found := false
	d.walk(root, func(path string) error {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		ok, err := doublestar.Match(ind.Glob, filepath.ToSlash(rel))
		if err != nil || !ok {
			return nil
		}
		if d.fileMatches(path, re) {
			found = true
			return errStopWalk
		}
		return nil
	})
	return found
}

func (d *FSDetector) fileMatches(path string, re *regexp.Regexp) bool {
	f, err := d.fs.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxContentSize))
	if err != nil {
		return false
	}
	return re.Match(data)
}

func hasMeta(glob string) bool {
	return strings.ContainsAny(glob, "*?[{")
}
