package application

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/devpractices/practices/internal/domain"
)

// rootMarkers identify a project root when there is no git work tree.
var rootMarkers = []string{
	".git",
	domain.ConfigFileName,
	domain.ConfigFileNameAlt,
	"pyproject.toml",
	"setup.py",
	"package.json",
	"go.mod",
	"Cargo.toml",
	"pom.xml",
}

// FindProjectRoot picks the directory configuration commands anchor to: the
// git work tree containing start, else the nearest ancestor holding a root
// marker, else start itself. Markers are looked up on fs.
func FindProjectRoot(fs afero.Fs, start string, repo domain.RepoInspector) string {
	abs, err := filepath.Abs(rootOrDot(start))
	if err != nil {
		return start
	}

	if repo != nil {
		if root, err := repo.RepoRoot(abs); err == nil {
			return root
		}
	}

	for dir := abs; ; dir = filepath.Dir(dir) {
		for _, marker := range rootMarkers {
			if _, err := fs.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		if dir == filepath.Dir(dir) {
			return abs
		}
	}
}
