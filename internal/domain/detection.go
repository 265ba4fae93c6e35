package domain

import (
	"fmt"
	"math"
	"path"
)

const (
	// DefaultConfidenceThreshold is the normalized score a project type must
	// reach before it is reported instead of generic.
	DefaultConfidenceThreshold = 0.15
	// DefaultIndicatorWeight applies to presence and content indicators that
	// leave Weight unset.
	DefaultIndicatorWeight = 2.0
	// DefaultMaxCount bounds an extension walk when nothing else does.
	DefaultMaxCount = 50
)

type IndicatorKind string

const (
	IndicatorFile      IndicatorKind = "file"
	IndicatorFileInDir IndicatorKind = "file_in_dir"
	IndicatorExtension IndicatorKind = "extension"
	IndicatorContent   IndicatorKind = "content"
)

// Indicator is one piece of evidence for a project type.
//
//   - file:        File exists (file or directory) at the project root.
//   - file_in_dir: File exists under Dir.
//   - extension:   at least MinCount files end in Ext; scores
//     min(count*WeightPerFile, MaxWeight).
//   - content:     a file matching Glob has content matching Pattern.
type Indicator struct {
	Kind          IndicatorKind `json:"kind" yaml:"kind"`
	File          string        `json:"file,omitempty" yaml:"file,omitempty"`
	Dir           string        `json:"dir,omitempty" yaml:"dir,omitempty"`
	Ext           string        `json:"ext,omitempty" yaml:"ext,omitempty"`
	MinCount      int           `json:"min_count,omitempty" yaml:"min_count,omitempty"`
	MaxCount      int           `json:"max_count,omitempty" yaml:"max_count,omitempty"`
	WeightPerFile float64       `json:"weight_per_file,omitempty" yaml:"weight_per_file,omitempty"`
	MaxWeight     float64       `json:"max_weight,omitempty" yaml:"max_weight,omitempty"`
	Glob          string        `json:"glob,omitempty" yaml:"glob,omitempty"`
	Pattern       string        `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Weight        float64       `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// PossibleWeight is the most this indicator can contribute to a raw score.
func (i Indicator) PossibleWeight() float64 {
	if i.Kind == IndicatorExtension {
		return i.MaxWeight
	}
	if i.Weight == 0 {
		return DefaultIndicatorWeight
	}
	return i.Weight
}

// ExtensionScore converts a file count into a contribution. Counts below
// MinCount contribute nothing.
func (i Indicator) ExtensionScore(count int) float64 {
	if count < max(i.MinCount, 1) {
		return 0
	}
	return math.Min(float64(count)*i.WeightPerFile, i.MaxWeight)
}

// CountLimit is the number of matching files after which an extension walk
// can stop without changing the score.
func (i Indicator) CountLimit() int {
	if i.MaxCount > 0 {
		return i.MaxCount
	}
	if i.WeightPerFile <= 0 {
		return max(i.MinCount, DefaultMaxCount)
	}
	return max(i.MinCount, int(math.Ceil(i.MaxWeight/i.WeightPerFile)), 1)
}

func (i Indicator) String() string {
	switch i.Kind {
	case IndicatorFileInDir:
		return path.Join(i.Dir, i.File)
	case IndicatorExtension:
		return fmt.Sprintf("*%s (>=%d)", i.Ext, max(i.MinCount, 1))
	case IndicatorContent:
		return fmt.Sprintf("%s =~ /%s/", i.Glob, i.Pattern)
	default:
		return i.File
	}
}

// DetectorConfig drives the project-type detector.
type DetectorConfig struct {
	ConfidenceThreshold float64                     `json:"confidence_threshold" yaml:"confidence_threshold"`
	Indicators          map[ProjectType][]Indicator `json:"indicators" yaml:"indicators"`
}

// DetectionResult carries the chosen type and the evidence behind it.
type DetectionResult struct {
	ProjectType ProjectType              `json:"project_type"`
	Confidence  float64                  `json:"confidence"`
	Scores      map[ProjectType]float64  `json:"scores"`
	Matched     map[ProjectType][]string `json:"matched,omitempty"`
}

// TypeScore accumulates the raw and possible weight for one project type.
type TypeScore struct {
	Raw float64
	Max float64
}

func (s TypeScore) Normalized() float64 {
	if s.Max <= 0 {
		return 0
	}
	return s.Raw / s.Max
}

// Classify picks the highest normalized score, keeping the earlier type in
// ValidProjectTypes on ties. Scores below threshold yield generic with zero
// confidence.
func Classify(scores map[ProjectType]float64, threshold float64) (ProjectType, float64) {
	best := ProjectTypeGeneric
	bestScore := 0.0
	for _, pt := range ValidProjectTypes {
		if pt == ProjectTypeGeneric {
			continue
		}
		if s := scores[pt]; s > bestScore {
			best, bestScore = pt, s
		}
	}
	if best == ProjectTypeGeneric || bestScore < threshold {
		return ProjectTypeGeneric, 0
	}
	return best, bestScore
}

func fileIndicator(name string) Indicator {
	return Indicator{Kind: IndicatorFile, File: name, Weight: DefaultIndicatorWeight}
}

func extIndicator(ext string, minCount int, maxWeight float64) Indicator {
	return Indicator{Kind: IndicatorExtension, Ext: ext, MinCount: minCount, WeightPerFile: 1, MaxWeight: maxWeight}
}

func contentIndicator(glob, pattern string) Indicator {
	return Indicator{Kind: IndicatorContent, Glob: glob, Pattern: pattern, Weight: DefaultIndicatorWeight}
}

// DefaultDetectorConfig returns the built-in indicator table.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		Indicators: map[ProjectType][]Indicator{
			ProjectTypePython: {
				fileIndicator("pyproject.toml"),
				fileIndicator("setup.py"),
				fileIndicator("requirements.txt"),
				{Kind: IndicatorFileInDir, Dir: "src", File: "__init__.py", Weight: DefaultIndicatorWeight},
				extIndicator(".py", 3, 2),
				contentIndicator("pyproject.toml", `(?m)^\[(project|tool\.poetry)\]`),
			},
			ProjectTypeJavaScript: {
				fileIndicator("package.json"),
				fileIndicator("node_modules"),
				extIndicator(".js", 3, 2),
				extIndicator(".jsx", 1, 1),
			},
			ProjectTypeTypeScript: {
				fileIndicator("tsconfig.json"),
				extIndicator(".ts", 3, 2),
				extIndicator(".tsx", 1, 1),
				contentIndicator("package.json", `"typescript"\s*:`),
			},
			ProjectTypeJava: {
				fileIndicator("pom.xml"),
				fileIndicator("build.gradle"),
				fileIndicator("src/main/java"),
				extIndicator(".java", 3, 2),
			},
			ProjectTypeCSharp: {
				{Kind: IndicatorExtension, Ext: ".sln", MinCount: 1, WeightPerFile: 2, MaxWeight: 2},
				{Kind: IndicatorExtension, Ext: ".csproj", MinCount: 1, WeightPerFile: 2, MaxWeight: 2},
				extIndicator(".cs", 3, 2),
				contentIndicator("**/*.csproj", `<Project\s+Sdk=`),
			},
			ProjectTypeGo: {
				fileIndicator("go.mod"),
				fileIndicator("go.sum"),
				extIndicator(".go", 3, 2),
				contentIndicator("go.mod", `(?m)^module\s+\S+`),
			},
			ProjectTypeRust: {
				fileIndicator("Cargo.toml"),
				fileIndicator("Cargo.lock"),
				extIndicator(".rs", 3, 2),
				contentIndicator("Cargo.toml", `(?m)^\[package\]`),
			},
		},
	}
}
