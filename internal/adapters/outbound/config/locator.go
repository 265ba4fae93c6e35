package config

import (
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/devpractices/practices/internal/domain"
)

// Locate lists the configuration files that apply to projectRoot, lowest
// precedence first: team files from the outermost ancestor inward, then the
// project file, then the user file. The filesystem root itself is not
// searched.
func (s *Store) Locate(projectRoot string) []domain.ConfigSource {
	dir := absDir(projectRoot)

	var sources []domain.ConfigSource
	if p, ok := s.findFile(dir, domain.UserConfigFileName, domain.UserConfigFileNameAlt); ok {
		sources = append(sources, domain.ConfigSource{Path: p, Tier: domain.TierUser})
	}
	if p, ok := s.ProjectFile(dir); ok {
		sources = append(sources, domain.ConfigSource{Path: p, Tier: domain.TierProject})
	}
	for current := filepath.Dir(dir); current != filepath.Dir(current); current = filepath.Dir(current) {
		if p, ok := s.ProjectFile(current); ok {
			sources = append(sources, domain.ConfigSource{Path: p, Tier: domain.TierTeam})
		}
	}
	slices.Reverse(sources)

	for _, src := range sources {
		s.logger.Debug("Found configuration file", slog.String("tier", string(src.Tier)), slog.String("path", src.Path))
	}
	return sources
}

// ProjectFile returns the project configuration in dir, preferring .yaml
// over .yml.
func (s *Store) ProjectFile(dir string) (string, bool) {
	return s.findFile(absDir(dir), domain.ConfigFileName, domain.ConfigFileNameAlt)
}

func (s *Store) findFile(dir string, names ...string) (string, bool) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		info, err := s.fs.Stat(p)
		if err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

func absDir(dir string) string {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Clean(dir)
	}
	return abs
}
