package domain_test

import (
	"testing"

	"github.com/devpractices/practices/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_PicksHighest(t *testing.T) {
	pt, conf := domain.Classify(map[domain.ProjectType]float64{
		domain.ProjectTypePython: 0.3,
		domain.ProjectTypeGo:     0.6,
	}, domain.DefaultConfidenceThreshold)
	assert.Equal(t, domain.ProjectTypeGo, pt)
	assert.InDelta(t, 0.6, conf, 0.0001)
}

func TestClassify_TieGoesToEarlierType(t *testing.T) {
	pt, _ := domain.Classify(map[domain.ProjectType]float64{
		domain.ProjectTypeTypeScript: 0.5,
		domain.ProjectTypeJavaScript: 0.5,
	}, domain.DefaultConfidenceThreshold)
	assert.Equal(t, domain.ProjectTypeJavaScript, pt)
}

func TestClassify_BelowThresholdIsGeneric(t *testing.T) {
	pt, conf := domain.Classify(map[domain.ProjectType]float64{
		domain.ProjectTypeRust: 0.14,
	}, domain.DefaultConfidenceThreshold)
	assert.Equal(t, domain.ProjectTypeGeneric, pt)
	assert.Zero(t, conf)
}

func TestClassify_NoEvidenceIsGeneric(t *testing.T) {
	pt, conf := domain.Classify(map[domain.ProjectType]float64{}, 0)
	assert.Equal(t, domain.ProjectTypeGeneric, pt)
	assert.Zero(t, conf)
}

func TestIndicator_ExtensionScore(t *testing.T) {
	ind := domain.Indicator{Kind: domain.IndicatorExtension, Ext: ".py", MinCount: 3, WeightPerFile: 1, MaxWeight: 2}

	assert.Zero(t, ind.ExtensionScore(2))
	assert.InDelta(t, 2.0, ind.ExtensionScore(3), 0.0001)
	assert.InDelta(t, 2.0, ind.ExtensionScore(40), 0.0001)
	assert.Equal(t, 3, ind.CountLimit())
}

func TestIndicator_PossibleWeight(t *testing.T) {
	assert.InDelta(t, 2.0, domain.Indicator{Kind: domain.IndicatorFile, File: "go.mod"}.PossibleWeight(), 0.0001)
	assert.InDelta(t, 5.0, domain.Indicator{Kind: domain.IndicatorFile, Weight: 5}.PossibleWeight(), 0.0001)
	assert.InDelta(t, 1.0, domain.Indicator{Kind: domain.IndicatorExtension, MaxWeight: 1, Weight: 9}.PossibleWeight(), 0.0001)
}

func TestIndicator_CountLimitHonoursMaxCount(t *testing.T) {
	ind := domain.Indicator{Kind: domain.IndicatorExtension, MinCount: 1, MaxCount: 7, WeightPerFile: 1, MaxWeight: 100}
	assert.Equal(t, 7, ind.CountLimit())
}

func TestIndicator_String(t *testing.T) {
	assert.Equal(t, "src/__init__.py", domain.Indicator{Kind: domain.IndicatorFileInDir, Dir: "src", File: "__init__.py"}.String())
	assert.Equal(t, "*.rs (>=3)", domain.Indicator{Kind: domain.IndicatorExtension, Ext: ".rs", MinCount: 3}.String())
}

func TestTypeScore_Normalized(t *testing.T) {
	assert.Zero(t, domain.TypeScore{Raw: 3}.Normalized())
	assert.InDelta(t, 0.25, domain.TypeScore{Raw: 2, Max: 8}.Normalized(), 0.0001)
}

func TestDefaultDetectorConfig_CoversEveryConcreteType(t *testing.T) {
	cfg := domain.DefaultDetectorConfig()
	assert.InDelta(t, 0.15, cfg.ConfidenceThreshold, 0.0001)
	for _, pt := range domain.ValidProjectTypes {
		if pt == domain.ProjectTypeGeneric {
			assert.Empty(t, cfg.Indicators[pt])
			continue
		}
		assert.NotEmpty(t, cfg.Indicators[pt], pt)
	}
}
