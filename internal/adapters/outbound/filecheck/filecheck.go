package filecheck

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/afero"
)

// Checker implements domain.ReferenceChecker.
type Checker struct {
	fs     afero.Fs
	logger *slog.Logger
}

func New() *Checker { return NewWithFs(afero.NewOsFs(), nil) }

func NewWithFs(fs afero.Fs, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{fs: fs, logger: logger}
}

// Check reports the referenced files that do not exist under projectRoot,
// in this order: version files, bumpversion config (only when bumpversion
// is enabled), changelog, then pull-request templates that look like paths.
// Paths still containing the project placeholder are skipped.
func (c *Checker) Check(cfg domain.ConfigurationSchema, projectRoot string) (bool, []string) {
	missing := []string{}
	check := func(rel string) {
		if rel == "" || domain.ContainsPlaceholder(rel) {
			return
		}
		if !c.Exists(projectRoot, rel) {
			missing = append(missing, rel)
		}
	}

	if v := cfg.Version; v != nil {
		for _, f := range v.Files {
			check(f.Path)
		}
		if v.UseBumpversion && v.BumpversionConfig != nil {
			check(*v.BumpversionConfig)
		}
		if v.Changelog != nil {
			check(*v.Changelog)
		}
	}

	if pr := cfg.PullRequests; pr != nil {
		for _, key := range pr.TemplateKeys() {
			if tmpl := pr.Templates[key]; looksLikePath(tmpl) {
				check(tmpl)
			}
		}
	}

	if len(missing) > 0 {
		c.logger.Debug("Referenced files missing", slog.String("path", projectRoot), slog.Any("missing", missing))
	}
	return len(missing) == 0, missing
}

// Exists reports whether relPath exists under projectRoot.
func (c *Checker) Exists(projectRoot, relPath string) bool {
	_, err := c.fs.Stat(filepath.Join(projectRoot, filepath.FromSlash(relPath)))
	return err == nil
}

// looksLikePath separates file references from inline template bodies.
func looksLikePath(s string) bool {
	if strings.Contains(s, "\n") {
		return false
	}
	return strings.ContainsAny(s, "/"+string(filepath.Separator))
}
