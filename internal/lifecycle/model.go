// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lifecycle turns skill-lifecycle pipeline metrics into a markdown report.
package lifecycle

// AuditMetrics are the counts reported by the skill-curator.
type AuditMetrics struct {
	Merges  int
	Splits  int
	Retires int
}

// TotalActions is the number of audit actions of any kind.
func (a AuditMetrics) TotalActions() int { return a.Merges + a.Splits + a.Retires }

// Net is the change in skill count caused by the audit. Positive means fewer skills.
func (a AuditMetrics) Net() int { return a.Merges + a.Retires - a.Splits }

// OptimizeMetrics are the counts reported by the skill-optimizer.
type OptimizeMetrics struct {
	Optimized int
	Unchanged int
	Changes   int
}

// PublishMetrics are the counts reported by the skill-publisher.
type PublishMetrics struct {
	Published    int
	ReposCreated int
	Readmes      int
	Logos        int
}

// CatalogMetrics are the totals reported by the skill-catalog.
type CatalogMetrics struct {
	TotalSkills int
	TotalEdges  int
}

// Params is everything the report is built from.
// Skipped and Errors are already parsed; see ParseSkipSet and ParseErrorMap
// for the comma-separated flag forms.
type Params struct {
	RunID    string
	Audit    AuditMetrics
	Optimize OptimizeMetrics
	Publish  PublishMetrics
	Catalog  CatalogMetrics

	Skipped SkipSet
	Errors  ErrorMap
}
