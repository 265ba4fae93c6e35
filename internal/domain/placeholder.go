package domain

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// ProjectPlaceholder stands in for the project's package name in template
// paths until init substitutes it.
const ProjectPlaceholder = "__project__"

func ContainsPlaceholder(s string) bool {
	return strings.Contains(s, ProjectPlaceholder)
}

// PackageNameFromDir derives a package-style name from a directory, e.g.
// "MyService-API" becomes "my_service_api".
func PackageNameFromDir(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	var words []string
	for _, chunk := range strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		for _, w := range camelcase.Split(chunk) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, "_")
}

// ResolvePlaceholders returns a copy of cfg with every string occurrence of
// ProjectPlaceholder replaced by pkg.
func ResolvePlaceholders(cfg map[string]any, pkg string) map[string]any {
	out := CloneMap(cfg)
	for k, v := range out {
		out[k] = replacePlaceholder(v, pkg)
	}
	return out
}

func replacePlaceholder(v any, pkg string) any {
	switch t := v.(type) {
	case string:
		return strings.ReplaceAll(t, ProjectPlaceholder, pkg)
	case map[string]any:
		for k, item := range t {
			t[k] = replacePlaceholder(item, pkg)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = replacePlaceholder(item, pkg)
		}
		return t
	default:
		return v
	}
}
