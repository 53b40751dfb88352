// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"strings"
	"unicode"
)

// Phase names one stage of the skill-lifecycle pipeline.
type Phase string

const (
	PhaseAudit    Phase = "audit"
	PhaseOptimize Phase = "optimize"
	PhasePublish  Phase = "publish"
	PhaseCatalog  Phase = "catalog"
)

// Phases returns the pipeline stages in execution order.
func Phases() []Phase {
	return []Phase{PhaseAudit, PhaseOptimize, PhasePublish, PhaseCatalog}
}

var subSkills = map[Phase]string{
	PhaseAudit:    "skill-curator",
	PhaseOptimize: "skill-optimizer",
	PhasePublish:  "skill-publisher",
	PhaseCatalog:  "skill-catalog",
}

// Retry commands are display text only; nothing here ever runs them.
var retryCommands = map[Phase]string{
	PhaseAudit:    "`/skill-curator`",
	PhaseOptimize: "`/skill-optimizer [skill-name]`",
	PhasePublish:  "`/skill-publisher --all`",
	PhaseCatalog:  "`/skill-catalog`",
}

// SubSkill returns the sub-skill that executes the phase, or "" for unknown phases.
func (p Phase) SubSkill() string { return subSkills[p] }

// RetryCommand returns the suggested command for re-running a failed phase.
// The boolean is false when the phase has no known retry command.
func (p Phase) RetryCommand() (string, bool) {
	cmd, ok := retryCommands[p]
	return cmd, ok
}

// Title returns the phase name with an upper-case first letter.
func (p Phase) Title() string { return capitalize(string(p)) }

func (p Phase) String() string { return string(p) }

// capitalize upper-cases the first rune and lower-cases the rest,
// so "PUBLISH" and "publish" both read "Publish".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
