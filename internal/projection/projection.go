// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projection holds the markdown and file helpers used to project
// report data onto disk.
package projection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Heading renders a markdown heading line.
func Heading(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}

// Table renders a markdown table as lines. The separator row pads each
// column with as many dashes as its header plus the surrounding spaces.
func Table(headers []string, rows [][]string) []string {
	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, "| "+strings.Join(headers, " | ")+" |")

	var sep strings.Builder
	sep.WriteString("|")
	for _, h := range headers {
		sep.WriteString(strings.Repeat("-", len(h)+2))
		sep.WriteString("|")
	}
	lines = append(lines, sep.String())

	for _, row := range rows {
		lines = append(lines, "| "+strings.Join(row, " | ")+" |")
	}
	return lines
}

// Bullet renders "- **label:** text".
func Bullet(label, text string) string {
	return fmt.Sprintf("- **%s:** %s", label, text)
}

// Bold wraps s in strong emphasis.
func Bold(s string) string { return "**" + s + "**" }

// Italic wraps s in emphasis.
func Italic(s string) string { return "*" + s + "*" }

// Code wraps s in an inline code span.
func Code(s string) string { return "`" + s + "`" }

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// Other paths, including "~user/...", are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// AtomicWrite writes content to path atomically by writing to a temp file
// in the same directory and renaming it. Missing parent directories are created.
func AtomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".lifecycle-report-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing content: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("moving temp file to %s: %w", path, err)
	}
	return nil
}
