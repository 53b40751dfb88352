// SPDX-License-Identifier: AGPL-3.0-or-later

package emit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const doc = "# Skill Lifecycle Report\n\n- **Phases completed:** 4/4 (audit, optimize, publish, catalog)"

func TestEmit_Stdout(t *testing.T) {
	var out bytes.Buffer
	e := New(&out, zap.NewNop())

	path, err := e.Emit(context.Background(), doc, "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, doc+"\n", out.String())
}

func TestEmit_FileNestedDirs(t *testing.T) {
	var out bytes.Buffer
	e := New(&out, zap.NewNop())
	target := filepath.Join(t.TempDir(), "reports", "2026", "02", "report.md")

	path, err := e.Emit(context.Background(), doc, target)
	require.NoError(t, err)
	assert.Equal(t, target, path)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, doc, string(got))
	assert.Equal(t, "Report written to: "+target+"\n", out.String())
}

func TestEmit_FileMatchesStdout(t *testing.T) {
	var stdout, confirm bytes.Buffer
	_, err := New(&stdout, nil).Emit(context.Background(), doc, "")
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "x", "r.md")
	_, err = New(&confirm, nil).Emit(context.Background(), doc, target)
	require.NoError(t, err)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, stdout.String(), string(got)+"\n")
}

func TestEmit_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	var out bytes.Buffer

	path, err := New(&out, nil).Emit(context.Background(), doc, "~/Downloads/report.md")
	require.NoError(t, err)

	want := filepath.Join(home, "Downloads", "report.md")
	assert.Equal(t, want, path)
	assert.FileExists(t, want)
	assert.Contains(t, out.String(), want)
}

func TestEmit_RenderOnlyAffectsStdout(t *testing.T) {
	var out bytes.Buffer
	e := New(&out, nil, WithRender(true), WithWordWrap(60))

	_, err := e.Emit(context.Background(), doc, "")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Skill Lifecycle Report")
	assert.NotEqual(t, doc+"\n", out.String())

	out.Reset()
	target := filepath.Join(t.TempDir(), "r.md")
	_, err = e.Emit(context.Background(), doc, target)
	require.NoError(t, err)
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, doc, string(got))
}

func TestEmit_WriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	var out bytes.Buffer
	_, err := New(&out, nil).Emit(context.Background(), doc, filepath.Join(blocker, "sub", "r.md"))
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestEmit_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := New(&out, nil).Emit(ctx, doc, "")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
