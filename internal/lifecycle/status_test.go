// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	skipped := ParseSkipSet("audit,catalog")
	errs := ParseErrorMap("catalog:boom,publish:git auth failed")

	tests := []struct {
		phase string
		want  Status
	}{
		{phase: "audit", want: StatusSkipped},
		{phase: "catalog", want: StatusSkipped},
		{phase: "publish", want: StatusFailed},
		{phase: "optimize", want: StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.phase, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.phase, skipped, errs))
		})
	}
}

func TestPhase(t *testing.T) {
	assert.Equal(t, []Phase{PhaseAudit, PhaseOptimize, PhasePublish, PhaseCatalog}, Phases())
	assert.Equal(t, "Optimize", PhaseOptimize.Title())
	assert.Equal(t, "skill-publisher", PhasePublish.SubSkill())
	assert.Empty(t, Phase("deploy").SubSkill())

	cmd, ok := PhasePublish.RetryCommand()
	assert.True(t, ok)
	assert.Equal(t, "`/skill-publisher --all`", cmd)

	_, ok = Phase("deploy").RetryCommand()
	assert.False(t, ok)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Publish", capitalize("PUBLISH"))
	assert.Equal(t, "Éclair", capitalize("éclair"))
}
