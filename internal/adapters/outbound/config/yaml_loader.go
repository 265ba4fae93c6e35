package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Store implements domain.ConfigStore on top of an afero filesystem.
type Store struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New creates a Store backed by the operating system filesystem.
func New() *Store { return NewWithFs(afero.NewOsFs(), nil) }

// NewWithFs creates a Store over fs. A nil logger uses slog.Default().
func NewWithFs(fs afero.Fs, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{fs: fs, logger: logger}
}

// Load reads one configuration file into a raw mapping. An empty document
// yields an empty mapping.
func (s *Store) Load(path string) (map[string]any, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	if doc == nil {
		return map[string]any{}, nil
	}
	switch m := domain.NormalizeValue(doc).(type) {
	case map[string]any:
		return m, nil
	default:
		return nil, &domain.ParseError{
			Path: path,
			Err:  fmt.Errorf("top-level value must be a mapping, got %s", domain.TypeName(m)),
		}
	}
}
