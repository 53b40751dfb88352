// SPDX-License-Identifier: AGPL-3.0-or-later

// Package emit delivers a rendered report to stdout or to a file.
package emit

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/bartekus/lifecycle/internal/projection"
)

const defaultWrap = 80

// Emitter writes markdown documents.
type Emitter struct {
	out    io.Writer
	logger *zap.Logger
	render bool
	wrap   int
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithRender renders the markdown for the terminal when writing to out.
// Files always receive the raw markdown.
func WithRender(render bool) Option {
	return func(e *Emitter) { e.render = render }
}

// WithWordWrap sets the terminal wrap width used by WithRender.
func WithWordWrap(width int) Option {
	return func(e *Emitter) {
		if width > 0 {
			e.wrap = width
		}
	}
}

// New returns an Emitter writing documents and confirmations to out.
func New(out io.Writer, logger *zap.Logger, opts ...Option) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Emitter{out: out, logger: logger, wrap: defaultWrap}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit writes doc to out when path is empty. Otherwise it writes doc to path,
// creating missing parent directories, and prints a confirmation line to out.
// The resolved path is returned ("" for stdout).
func (e *Emitter) Emit(ctx context.Context, doc, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if path == "" {
		return "", e.toStdout(doc)
	}

	resolved, err := projection.ExpandHome(path)
	if err != nil {
		return "", err
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}

	e.logger.Debug("writing report", zap.String("path", resolved), zap.Int("bytes", len(doc)))
	if err := projection.AtomicWrite(resolved, []byte(doc)); err != nil {
		return "", fmt.Errorf("write report %q: %w", resolved, err)
	}

	if _, err := fmt.Fprintf(e.out, "Report written to: %s\n", resolved); err != nil {
		return resolved, err
	}
	return resolved, nil
}

func (e *Emitter) toStdout(doc string) error {
	if !e.render {
		_, err := fmt.Fprintln(e.out, doc)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(e.wrap),
	)
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	e.logger.Debug("rendered report for terminal", zap.Int("width", e.wrap))
	_, err = io.WriteString(e.out, rendered)
	return err
}
