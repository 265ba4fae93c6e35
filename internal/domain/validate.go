package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult is the outcome of schema validation. Errors keeps the
// order in which problems were found.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateSchema checks a raw configuration mapping. Structural problems
// (wrong types, unknown enum values, bad regexes) are collected first; the
// semantic rules of the branching strategy only run when the structure is
// sound.
func ValidateSchema(raw map[string]any) ValidationResult {
	errs := ValidateStructure(raw)
	if len(errs) == 0 {
		cfg, err := DecodeSchema(raw)
		if err != nil {
			errs = append(errs, err.Error())
		} else {
			errs = append(errs, cfg.SemanticErrors()...)
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidateStructure returns every structural problem in raw, walking keys in
// schema field order. It never stops at the first error.
func ValidateStructure(raw map[string]any) []string {
	v := &structureValidator{errs: []string{}}

	v.enum(raw, "project_type", projectTypeNames())
	v.enum(raw, "branching_strategy", strategyNames())
	v.enum(raw, "workflow_mode", workflowModeNames())
	if val, ok := raw["main_branch"]; ok {
		if s, isStr := val.(string); !isStr {
			v.addf("main_branch: expected string, got %s", TypeName(val))
		} else if strings.TrimSpace(s) == "" {
			v.addf("main_branch: must not be empty")
		}
	}
	v.optionalString(raw, "develop_branch", "develop_branch")

	if m, ok := v.mapping(raw, "branches", "branches"); ok {
		for _, name := range SortedKeys(m) {
			v.branch(name, m[name])
		}
	}
	if m, ok := v.mapping(raw, "version", "version"); ok {
		v.version(m)
	}
	if m, ok := v.mapping(raw, "pull_requests", "pull_requests"); ok {
		v.pullRequests(m)
	}
	if m, ok := v.mapping(raw, "jira", "jira"); ok {
		v.jira(m)
	}
	if m, ok := v.mapping(raw, "github", "github"); ok {
		v.bools(m, "github", "enabled", "create_pr")
		v.optionalString(m, "owner", "github.owner")
		v.optionalString(m, "repo", "github.repo")
		v.stringList(m, "required_checks", "github.required_checks")
	}
	if m, ok := v.mapping(raw, "pre_commit", "pre_commit"); ok {
		v.preCommit(m)
	}
	if m, ok := v.mapping(raw, "license_headers", "license_headers"); ok {
		v.licenseHeaders(m)
	}

	return v.errs
}

// SemanticErrors reports cross-field problems: strategy requirements and
// branch references that point at branches the configuration does not name.
func (c ConfigurationSchema) SemanticErrors() []string {
	var errs []string

	develop := c.DevelopBranchName()
	if c.BranchingStrategy == StrategyGitFlow && develop == "" {
		errs = append(errs, "gitflow strategy requires develop_branch to be set")
	}

	for _, required := range c.BranchingStrategy.RequiredBranchTypes() {
		if _, ok := c.Branches[required]; !ok {
			errs = append(errs, fmt.Sprintf("%s strategy requires %q branch configuration", c.BranchingStrategy, required))
		}
	}

	known := map[string]bool{c.MainBranch: true}
	if develop != "" {
		known[develop] = true
	}
	names := c.BranchNames()
	for _, name := range names {
		base := c.Branches[name].Base
		if !known[base] {
			errs = append(errs, fmt.Sprintf("branches.%s: base branch %q is not the main or develop branch", name, base))
		}
	}
	for _, name := range names {
		for _, target := range c.Branches[name].Target {
			if !known[target] {
				errs = append(errs, fmt.Sprintf("branches.%s: target branch %q is not the main or develop branch", name, target))
			}
		}
	}

	return errs
}

type structureValidator struct {
	errs []string
}

func (v *structureValidator) addf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Sprintf(format, args...))
}

// mapping returns m[key] as a mapping. Absent and null values are not
// errors; they simply yield ok=false.
func (v *structureValidator) mapping(m map[string]any, key, label string) (map[string]any, bool) {
	val, present := m[key]
	if !present || val == nil {
		return nil, false
	}
	out, ok := val.(map[string]any)
	if !ok {
		v.addf("%s: expected mapping, got %s", label, TypeName(val))
		return nil, false
	}
	return out, true
}

func (v *structureValidator) enum(m map[string]any, key string, allowed []string) {
	val, ok := m[key]
	if !ok {
		return
	}
	s, isStr := val.(string)
	if !isStr {
		v.addf("%s: expected string, got %s", key, TypeName(val))
		return
	}
	for _, a := range allowed {
		if s == a {
			return
		}
	}
	v.addf("%s: unknown value %q (valid: %s)", key, s, strings.Join(allowed, ", "))
}

func (v *structureValidator) requiredString(m map[string]any, key, label string) (string, bool) {
	val, ok := m[key]
	if !ok || val == nil {
		v.addf("%s: required", label)
		return "", false
	}
	s, isStr := val.(string)
	if !isStr {
		v.addf("%s: expected string, got %s", label, TypeName(val))
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		v.addf("%s: must not be empty", label)
		return "", false
	}
	return s, true
}

func (v *structureValidator) optionalString(m map[string]any, key, label string) {
	val, ok := m[key]
	if !ok || val == nil {
		return
	}
	if _, isStr := val.(string); !isStr {
		v.addf("%s: expected string or null, got %s", label, TypeName(val))
	}
}

func (v *structureValidator) bools(m map[string]any, section string, keys ...string) {
	for _, key := range keys {
		val, ok := m[key]
		if !ok {
			continue
		}
		if _, isBool := val.(bool); !isBool {
			v.addf("%s.%s: expected boolean, got %s", section, key, TypeName(val))
		}
	}
}

func (v *structureValidator) stringList(m map[string]any, key, label string) {
	val, ok := m[key]
	if !ok || val == nil {
		return
	}
	items, isList := val.([]any)
	if !isList {
		v.addf("%s: expected list, got %s", label, TypeName(val))
		return
	}
	for i, item := range items {
		if _, isStr := item.(string); !isStr {
			v.addf("%s[%d]: expected string, got %s", label, i, TypeName(item))
		}
	}
}

func (v *structureValidator) regex(label, pattern string, needGroup bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		v.addf("%s: invalid regex %q: %v", label, pattern, err)
		return
	}
	if needGroup && re.NumSubexp() < 1 {
		v.addf("%s: pattern %q must contain at least one capture group", label, pattern)
	}
}

func (v *structureValidator) branch(name string, val any) {
	label := "branches." + name
	m, ok := val.(map[string]any)
	if !ok {
		v.addf("%s: expected mapping, got %s", label, TypeName(val))
		return
	}
	if pattern, ok := v.requiredString(m, "pattern", label+".pattern"); ok {
		v.regex(label+".pattern", pattern, false)
	}
	v.requiredString(m, "base", label+".base")
	v.stringList(m, "target", label+".target")
	if bump, present := m["version_bump"]; present && bump != nil {
		s, isStr := bump.(string)
		switch {
		case !isStr:
			v.addf("%s.version_bump: expected string or null, got %s", label, TypeName(bump))
		case !VersionBump(s).IsValid():
			v.addf("%s.version_bump: unknown value %q (valid: major, minor, patch, none)", label, s)
		}
	}
}

func (v *structureValidator) version(m map[string]any) {
	files, present := m["files"]
	list, isList := files.([]any)
	switch {
	case !present || files == nil:
		v.addf("version.files: required")
	case !isList:
		v.addf("version.files: expected list, got %s", TypeName(files))
	case len(list) == 0:
		v.addf("version.files: at least one version file is required")
	}
	for i, item := range list {
		label := fmt.Sprintf("version.files[%d]", i)
		entry, ok := item.(map[string]any)
		if !ok {
			v.addf("%s: expected mapping, got %s", label, TypeName(item))
			continue
		}
		v.requiredString(entry, "path", label+".path")
		if pattern, ok := v.requiredString(entry, "pattern", label+".pattern"); ok {
			v.regex(label+".pattern", pattern, true)
		}
	}
	v.bools(m, "version", "use_bumpversion")
	v.optionalString(m, "bumpversion_config", "version.bumpversion_config")
	v.optionalString(m, "changelog", "version.changelog")
}

func (v *structureValidator) pullRequests(m map[string]any) {
	if templates, ok := v.mapping(m, "templates", "pull_requests.templates"); ok {
		for _, key := range SortedKeys(templates) {
			if _, isStr := templates[key].(string); !isStr {
				v.addf("pull_requests.templates.%s: expected string, got %s", key, TypeName(templates[key]))
			}
		}
	}
	if checks, ok := v.mapping(m, "checks", "pull_requests.checks"); ok {
		v.bools(checks, "pull_requests.checks", "run_tests", "run_linting")
	}
}

func (v *structureValidator) jira(m map[string]any) {
	v.bools(m, "jira", "enabled", "transition_to_in_progress", "update_on_pr_creation")
	enabled := true
	if b, ok := m["enabled"].(bool); ok {
		enabled = b
	}
	if enabled {
		v.requiredString(m, "project_key", "jira.project_key")
	} else {
		v.optionalString(m, "project_key", "jira.project_key")
	}
}

func (v *structureValidator) preCommit(m map[string]any) {
	hooks, present := m["hooks"]
	if !present || hooks == nil {
		return
	}
	list, ok := hooks.([]any)
	if !ok {
		v.addf("pre_commit.hooks: expected list, got %s", TypeName(hooks))
		return
	}
	for i, item := range list {
		label := fmt.Sprintf("pre_commit.hooks[%d]", i)
		hook, ok := item.(map[string]any)
		if !ok {
			v.addf("%s: expected mapping, got %s", label, TypeName(item))
			continue
		}
		v.requiredString(hook, "id", label+".id")
		for _, key := range []string{"name", "description", "entry", "language"} {
			v.optionalString(hook, key, label+"."+key)
		}
		v.stringList(hook, "types", label+".types")
	}
}

func (v *structureValidator) licenseHeaders(m map[string]any) {
	v.requiredString(m, "template", "license_headers.template")
	types, present := m["file_types"]
	if !present || types == nil {
		return
	}
	list, ok := types.([]any)
	if !ok {
		v.addf("license_headers.file_types: expected list, got %s", TypeName(types))
		return
	}
	for i, item := range list {
		label := fmt.Sprintf("license_headers.file_types[%d]", i)
		ft, ok := item.(map[string]any)
		if !ok {
			v.addf("%s: expected mapping, got %s", label, TypeName(item))
			continue
		}
		v.requiredString(ft, "extension", label+".extension")
		for _, key := range []string{"prefix", "start", "end"} {
			v.optionalString(ft, key, label+"."+key)
		}
	}
}

func projectTypeNames() []string {
	out := make([]string, len(ValidProjectTypes))
	for i, pt := range ValidProjectTypes {
		out[i] = string(pt)
	}
	return out
}

func strategyNames() []string {
	out := make([]string, len(ValidBranchingStrategies))
	for i, s := range ValidBranchingStrategies {
		out[i] = string(s)
	}
	return out
}

func workflowModeNames() []string {
	out := make([]string, len(ValidWorkflowModes))
	for i, m := range ValidWorkflowModes {
		out[i] = string(m)
	}
	return out
}
