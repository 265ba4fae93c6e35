package domain_test

import (
	"testing"

	"github.com/devpractices/practices/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPackageNameFromDir(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"/src/payments", "payments"},
		{"/src/MyService", "my_service"},
		{"/src/my-service.api", "my_service_api"},
		{"/src/already_snake", "already_snake"},
		{"/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PackageNameFromDir(tt.dir))
		})
	}
}

func TestResolvePlaceholders(t *testing.T) {
	cfg := domain.DefaultConfigForType(domain.ProjectTypePython)
	resolved := domain.ResolvePlaceholders(cfg, "billing")

	files := resolved["version"].(map[string]any)["files"].([]any)
	assert.Equal(t, "src/billing/__init__.py", files[0].(map[string]any)["path"])

	original := cfg["version"].(map[string]any)["files"].([]any)
	assert.True(t, domain.ContainsPlaceholder(original[0].(map[string]any)["path"].(string)))
}
