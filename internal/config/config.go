// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads lifecycle report inputs from a YAML metrics file and
// overlays explicitly set command-line flags on top.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/lifecycle/internal/lifecycle"
)

// File mirrors the metrics file written by the pipeline.
//
//	run_id: lifecycle-20260212-143000
//	audit: {merges: 2, splits: 0, retires: 1}
//	skipped_phases: [audit]
//	errors: {publish: git auth failed}
type File struct {
	RunID    *string      `yaml:"run_id"`
	Audit    AuditFile    `yaml:"audit"`
	Optimize OptimizeFile `yaml:"optimize"`
	Publish  PublishFile  `yaml:"publish"`
	Catalog  CatalogFile  `yaml:"catalog"`

	SkippedPhases []string  `yaml:"skipped_phases"`
	Errors        yaml.Node `yaml:"errors"`
	Output        string    `yaml:"output"`
}

// AuditFile holds the skill-curator counts.
type AuditFile struct {
	Merges  int `yaml:"merges"`
	Splits  int `yaml:"splits"`
	Retires int `yaml:"retires"`
}

// OptimizeFile holds the skill-optimizer counts.
type OptimizeFile struct {
	Optimized int `yaml:"optimized"`
	Unchanged int `yaml:"unchanged"`
	Changes   int `yaml:"changes"`
}

// PublishFile holds the skill-publisher counts.
type PublishFile struct {
	Published    int `yaml:"published"`
	ReposCreated int `yaml:"repos_created"`
	Readmes      int `yaml:"readmes"`
	Logos        int `yaml:"logos"`
}

// CatalogFile holds the skill-catalog totals.
type CatalogFile struct {
	TotalSkills int `yaml:"total_skills"`
	TotalEdges  int `yaml:"total_edges"`
}

// Config is the resolved input for one report.
// RunIDSet records whether a run id was given at all, even an empty one.
type Config struct {
	Params   lifecycle.Params
	RunIDSet bool
	Output   string
}

// Load reads the metrics file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path supplied by the operator
	if err != nil {
		return Config{}, fmt.Errorf("read metrics file %q: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse metrics file %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes metrics file content.
func Parse(data []byte) (Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Config{}, err
	}
	errs, err := decodeErrors(&f.Errors)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Params: lifecycle.Params{
			Audit:    lifecycle.AuditMetrics(f.Audit),
			Optimize: lifecycle.OptimizeMetrics(f.Optimize),
			Publish:  lifecycle.PublishMetrics(f.Publish),
			Catalog:  lifecycle.CatalogMetrics(f.Catalog),
			Skipped:  lifecycle.NewSkipSet(trimAll(f.SkippedPhases)),
			Errors:   errs,
		},
		Output: f.Output,
	}
	if f.RunID != nil {
		cfg.Params.RunID = *f.RunID
		cfg.RunIDSet = true
	}
	return cfg, nil
}

// decodeErrors accepts either a mapping (phase: message), taken verbatim so
// messages may contain commas, or a "phase:message,..." string in the flag syntax.
func decodeErrors(n *yaml.Node) (lifecycle.ErrorMap, error) {
	switch n.Kind {
	case 0:
		return lifecycle.ErrorMap{}, nil
	case yaml.ScalarNode:
		if isNull(n) {
			return lifecycle.ErrorMap{}, nil
		}
		return lifecycle.ParseErrorMap(n.Value), nil
	case yaml.MappingNode:
		pairs := make([]lifecycle.Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return lifecycle.ErrorMap{}, fmt.Errorf("errors.%s: message must be a string (line %d)", k.Value, v.Line)
			}
			msg := v.Value
			if isNull(v) {
				msg = ""
			}
			pairs = append(pairs, lifecycle.Pair{Key: strings.TrimSpace(k.Value), Value: strings.TrimSpace(msg)})
		}
		return lifecycle.NewErrorMap(pairs), nil
	default:
		return lifecycle.ErrorMap{}, fmt.Errorf("errors: expected a mapping or string (line %d)", n.Line)
	}
}

func isNull(n *yaml.Node) bool { return n.ShortTag() == "!!null" }

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

// IntFlag is an integer flag value with a record of whether it was set.
type IntFlag struct {
	Value int
	Set   bool
}

// StringFlag is a string flag value with a record of whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// FlagValues captures the report flags given on the command line.
type FlagValues struct {
	RunID         StringFlag
	AuditMerges   IntFlag
	AuditSplits   IntFlag
	AuditRetires  IntFlag
	Optimized     IntFlag
	Unchanged     IntFlag
	Changes       IntFlag
	Published     IntFlag
	ReposCreated  IntFlag
	Readmes       IntFlag
	Logos         IntFlag
	TotalSkills   IntFlag
	TotalEdges    IntFlag
	SkippedPhases StringFlag
	Errors        StringFlag
	Output        StringFlag
}

// ApplyFlags mutates cfg with every flag that was explicitly set.
func ApplyFlags(cfg *Config, flags FlagValues) {
	p := &cfg.Params
	setString(&p.RunID, flags.RunID)
	setInt(&p.Audit.Merges, flags.AuditMerges)
	setInt(&p.Audit.Splits, flags.AuditSplits)
	setInt(&p.Audit.Retires, flags.AuditRetires)
	setInt(&p.Optimize.Optimized, flags.Optimized)
	setInt(&p.Optimize.Unchanged, flags.Unchanged)
	setInt(&p.Optimize.Changes, flags.Changes)
	setInt(&p.Publish.Published, flags.Published)
	setInt(&p.Publish.ReposCreated, flags.ReposCreated)
	setInt(&p.Publish.Readmes, flags.Readmes)
	setInt(&p.Publish.Logos, flags.Logos)
	setInt(&p.Catalog.TotalSkills, flags.TotalSkills)
	setInt(&p.Catalog.TotalEdges, flags.TotalEdges)
	setString(&cfg.Output, flags.Output)

	if flags.RunID.Set {
		cfg.RunIDSet = true
	}
	// Only the flag forms are comma-delimited; file values arrive already split.
	if flags.SkippedPhases.Set {
		p.Skipped = lifecycle.ParseSkipSet(flags.SkippedPhases.Value)
	}
	if flags.Errors.Set {
		p.Errors = lifecycle.ParseErrorMap(flags.Errors.Value)
	}
}

func setInt(dst *int, f IntFlag) {
	if f.Set {
		*dst = f.Value
	}
}

func setString(dst *string, f StringFlag) {
	if f.Set {
		*dst = f.Value
	}
}
