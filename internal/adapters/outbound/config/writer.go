package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/devpractices/practices/internal/domain"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const fileMode = 0o644

// Save writes data as YAML to path. The document is serialized before the
// filesystem is touched and lands through a rename, so readers never see a
// partial file and a failed save leaves the previous file intact.
func (s *Store) Save(path string, data map[string]any) error {
	out, err := encode(data)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := s.fs.Chmod(tmpName, fileMode); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	s.logger.Debug("Wrote configuration", slog.String("path", path), slog.Int("bytes", len(out)))
	return nil
}

// WriteUserOverrides merges overrides into the user configuration of
// projectRoot. An existing .yaml file is preferred, then .yml; otherwise a
// new .yaml file is created. An unreadable existing file is treated as
// empty.
func (s *Store) WriteUserOverrides(projectRoot string, overrides map[string]any) (string, error) {
	dir := absDir(projectRoot)

	existing := map[string]any{}
	path, found := s.findFile(dir, domain.UserConfigFileName, domain.UserConfigFileNameAlt)
	if found {
		loaded, err := s.Load(path)
		if err != nil {
			s.logger.Warn("Replacing unreadable user configuration",
				slog.String("path", path), slog.Any("error", err))
		} else {
			existing = loaded
		}
	} else {
		path = filepath.Join(dir, domain.UserConfigFileName)
	}

	merged := domain.MergeConfigs([]map[string]any{existing, overrides})
	if err := s.Save(path, merged); err != nil {
		return "", err
	}

	s.logger.Info("Updated user configuration", slog.String("path", path), slog.Int("keys", len(overrides)))
	return path, nil
}

func encode(data map[string]any) (out []byte, err error) {
	// yaml.v3 panics on some unsupported kinds instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	if data == nil {
		data = map[string]any{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
