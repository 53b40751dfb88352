// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/bartekus/lifecycle/internal/projection"
)

const (
	// Version is stamped into the report footer.
	Version = "0.1.0"

	timestampLayout = "2006-01-02 15:04:05"
)

// Report is the rendered markdown document, one entry per line.
type Report struct {
	Lines []string
}

// String joins the lines with newlines. There is no trailing newline.
func (r Report) String() string { return strings.Join(r.Lines, "\n") }

// Outcome is the derived state of a run: which phases were skipped,
// which failed and with what message.
type Outcome struct {
	Skipped SkipSet
	Errors  ErrorMap
}

// NewOutcome returns the skip and error state of p.
func NewOutcome(p Params) Outcome {
	return Outcome{Skipped: p.Skipped, Errors: p.Errors}
}

// Status classifies phase within this outcome.
func (o Outcome) Status(phase Phase) Status {
	return Classify(string(phase), o.Skipped, o.Errors)
}

// Completed returns the pipeline phases that were neither skipped nor failed.
func (o Outcome) Completed() []Phase {
	return lo.Filter(Phases(), func(p Phase, _ int) bool {
		return o.Status(p) == StatusOK
	})
}

// Failed returns the error-map phases that were not also skipped, in error-map order.
func (o Outcome) Failed() []string {
	return lo.Reject(o.Errors.Keys(), func(k string, _ int) bool {
		return o.Skipped.Contains(k)
	})
}

// BuildReport renders the lifecycle report for p as of now (shown in local time).
func BuildReport(p Params, now time.Time) Report {
	b := &builder{params: p, outcome: NewOutcome(p)}

	b.header(now)
	b.pipelineStatus()
	for i, phase := range Phases() {
		b.phaseSection(i+1, phase)
	}
	b.summary()
	if b.outcome.Errors.Len() > 0 {
		b.errors()
	}
	b.add("---")
	b.add(projection.Italic("Report generated by skill-lifecycle v" + Version))

	return Report{Lines: b.lines}
}

type builder struct {
	params  Params
	outcome Outcome
	lines   []string
}

func (b *builder) add(lines ...string) { b.lines = append(b.lines, lines...) }

func (b *builder) blank() { b.add("") }

func (b *builder) header(now time.Time) {
	b.add(projection.Heading(1, "Skill Lifecycle Report"))
	b.blank()
	b.add(projection.Bold("Run ID:") + " " + projection.Code(b.params.RunID))
	b.add(projection.Bold("Generated:") + " " + now.Local().Format(timestampLayout))
	b.blank()
}

func (b *builder) pipelineStatus() {
	b.add(projection.Heading(2, "Pipeline Status"))
	b.blank()
	rows := lo.Map(Phases(), func(p Phase, _ int) []string {
		return []string{p.Title(), p.SubSkill(), string(b.outcome.Status(p))}
	})
	b.add(projection.Table([]string{"Phase", "Sub-Skill", "Status"}, rows)...)
	b.blank()
}

func (b *builder) phaseSection(n int, phase Phase) {
	b.add(projection.Heading(2, fmt.Sprintf("Phase %d: %s", n, phase.Title())))
	b.blank()

	switch b.outcome.Status(phase) {
	case StatusSkipped:
		b.add(projection.Italic("Phase skipped by user."))
	case StatusFailed:
		msg, _ := b.outcome.Errors.Message(string(phase))
		b.add(projection.Italic("Phase failed:") + " " + msg)
	default:
		b.add(b.metrics(phase)...)
	}
	b.blank()
}

func (b *builder) metrics(phase Phase) []string {
	count := []string{"Metric", "Count"}
	p := b.params

	switch phase {
	case PhaseAudit:
		total := strconv.Itoa(p.Audit.TotalActions())
		return projection.Table(count, [][]string{
			{"Skills merged", strconv.Itoa(p.Audit.Merges)},
			{"Skills split", strconv.Itoa(p.Audit.Splits)},
			{"Skills retired", strconv.Itoa(p.Audit.Retires)},
			{projection.Bold("Total actions"), projection.Bold(total)},
		})
	case PhaseOptimize:
		return projection.Table(count, [][]string{
			{"Skills optimized", strconv.Itoa(p.Optimize.Optimized)},
			{"Skills unchanged", strconv.Itoa(p.Optimize.Unchanged)},
			{"Total changes applied", strconv.Itoa(p.Optimize.Changes)},
		})
	case PhasePublish:
		return projection.Table(count, [][]string{
			{"Skills published", strconv.Itoa(p.Publish.Published)},
			{"New repos created", strconv.Itoa(p.Publish.ReposCreated)},
			{"READMEs generated", strconv.Itoa(p.Publish.Readmes)},
			{"Logos generated", strconv.Itoa(p.Publish.Logos)},
		})
	case PhaseCatalog:
		return projection.Table([]string{"Metric", "Value"}, [][]string{
			{"Total skills", strconv.Itoa(p.Catalog.TotalSkills)},
			{"Total edges", strconv.Itoa(p.Catalog.TotalEdges)},
		})
	}
	return nil
}

func (b *builder) summary() {
	b.add(projection.Heading(2, "Summary"))
	b.blank()

	completed := lo.Map(b.outcome.Completed(), func(p Phase, _ int) string { return string(p) })
	list := "none"
	if len(completed) > 0 {
		list = strings.Join(completed, ", ")
	}
	b.add(projection.Bullet("Phases completed", fmt.Sprintf("%d/%d (%s)", len(completed), len(Phases()), list)))

	if b.outcome.Skipped.Len() > 0 {
		b.add(projection.Bullet("Phases skipped", strings.Join(b.outcome.Skipped.Names(), ", ")))
	}
	if failed := b.outcome.Failed(); len(failed) > 0 {
		b.add(projection.Bullet("Phases failed", strings.Join(failed, ", ")))
	}

	if b.outcome.Status(PhaseAudit) == StatusOK {
		switch net := b.params.Audit.Net(); {
		case net > 0:
			b.add(projection.Bullet("Net skill reduction", fmt.Sprintf("%d (from merges/retires)", net)))
		case net < 0:
			b.add(projection.Bullet("Net skill increase", fmt.Sprintf("%d (from splits)", -net)))
		}
	}

	opt := b.params.Optimize
	if b.outcome.Status(PhaseOptimize) == StatusOK && opt.Changes > 0 {
		b.add(projection.Bullet("Optimization changes", fmt.Sprintf("%d across %d skills", opt.Changes, opt.Optimized)))
	}
	b.blank()
}

func (b *builder) errors() {
	b.add(projection.Heading(2, "Errors"))
	b.blank()
	for _, key := range b.outcome.Errors.Keys() {
		msg, _ := b.outcome.Errors.Message(key)
		b.add(projection.Bullet(capitalize(key), msg))
	}
	b.blank()

	b.add(projection.Heading(3, "Retry Commands"))
	b.blank()
	for _, key := range b.outcome.Errors.Keys() {
		if cmd, ok := Phase(key).RetryCommand(); ok {
			b.add(fmt.Sprintf("- %s: %s", capitalize(key), cmd))
		}
	}
	b.blank()
}
