// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bartekus/lifecycle/cmd/lifecycle/internal/clierr"
)

var testNow = time.Date(2026, time.February, 12, 14, 30, 0, 0, time.Local)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(withLogger(zap.NewNop()), withClock(func() time.Time { return testNow }))
	out := bytes.NewBufferString("")
	cmd.SetOut(out)
	cmd.SetErr(bytes.NewBufferString(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReport_Stdout(t *testing.T) {
	out, err := runCLI(t, "report", "--run-id", "r1")
	require.NoError(t, err)

	assert.Contains(t, out, "# Skill Lifecycle Report\n")
	assert.Contains(t, out, "**Run ID:** `r1`")
	assert.Contains(t, out, "**Generated:** 2026-02-12 14:30:00")
	assert.Contains(t, out, "- **Phases completed:** 4/4 (audit, optimize, publish, catalog)")
	assert.NotContains(t, out, "## Errors")
	assert.Contains(t, out, "*Report generated by skill-lifecycle v0.1.0*\n")
}

func TestReport_Flags(t *testing.T) {
	out, err := runCLI(t, "report",
		"--run-id", "r2",
		"--audit-merges", "2", "--audit-splits", "0", "--audit-retires", "1",
		"--optimized", "3", "--changes", "7",
		"--skipped-phases", "catalog",
		"--errors", "publish:git auth failed",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "| **Total actions** | **3** |")
	assert.Contains(t, out, "- **Net skill reduction:** 3 (from merges/retires)")
	assert.Contains(t, out, "- **Optimization changes:** 7 across 3 skills")
	assert.Contains(t, out, "*Phase failed:* git auth failed")
	assert.Contains(t, out, "- **Phases completed:** 2/4 (audit, optimize)")
	assert.Contains(t, out, "- **Phases skipped:** catalog")
	assert.Contains(t, out, "- Publish: `/skill-publisher --all`")
}

func TestReport_MissingRunID(t *testing.T) {
	_, err := runCLI(t, "report", "--audit-merges", "1")
	require.Error(t, err)
	assert.Equal(t, clierr.CodeUsage, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "--run-id")
}

func TestReport_EmptyRunIDAccepted(t *testing.T) {
	out, err := runCLI(t, "report", "--run-id", "")
	require.NoError(t, err)
	assert.Contains(t, out, "**Run ID:** ``")
}

func TestReport_BadInt(t *testing.T) {
	_, err := runCLI(t, "report", "--run-id", "r", "--logos", "many")
	require.Error(t, err)
	assert.Equal(t, clierr.CodeUsage, clierr.ExitCodeOf(err))
}

func TestReport_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "dir", "report.md")

	stdout, err := runCLI(t, "report", "--run-id", "r1", "--changes", "2")
	require.NoError(t, err)

	confirm, err := runCLI(t, "report", "--run-id", "r1", "--changes", "2", "-o", target)
	require.NoError(t, err)
	assert.Equal(t, "Report written to: "+target+"\n", confirm)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, stdout, string(got)+"\n")
}

func TestReport_OutputUnwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := runCLI(t, "report", "--run-id", "r1", "-o", filepath.Join(blocker, "r.md"))
	require.Error(t, err)
	assert.Equal(t, clierr.CodeFailure, clierr.ExitCodeOf(err))
}

func TestReport_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	metrics := filepath.Join(dir, "metrics.yaml")
	target := filepath.Join(dir, "out", "report.md")
	require.NoError(t, os.WriteFile(metrics, []byte(`
run_id: from-file
audit: {merges: 5, splits: 1, retires: 0}
catalog: {total_skills: 30, total_edges: 45}
errors:
  optimize: timeout on skill-foo
output: `+target+`
`), 0o600))

	out, err := runCLI(t, "report", "--metrics-file", metrics, "--audit-splits", "7")
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	doc := string(data)
	assert.Contains(t, doc, "**Run ID:** `from-file`")
	assert.Contains(t, doc, "| Skills split | 7 |")
	assert.Contains(t, doc, "- **Net skill increase:** 2 (from splits)")
	assert.Contains(t, doc, "| Total skills | 30 |")
	assert.Contains(t, doc, "- **Optimize:** timeout on skill-foo")
}

func TestReport_MetricsFileMissing(t *testing.T) {
	_, err := runCLI(t, "report", "--metrics-file", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, clierr.CodeUsage, clierr.ExitCodeOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReport_MetricsFileMessageWithComma(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "metrics.yaml")
	require.NoError(t, os.WriteFile(metrics, []byte(`
run_id: r3
errors:
  publish: "auth failed, retry later"
`), 0o600))

	out, err := runCLI(t, "report", "--metrics-file", metrics)
	require.NoError(t, err)
	assert.Contains(t, out, "*Phase failed:* auth failed, retry later")
	assert.Contains(t, out, "- **Phases failed:** publish\n")
	assert.Contains(t, out, "## Errors\n\n- **Publish:** auth failed, retry later\n\n")
}
