// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExportSink appends full table renderings to a text file.
//
// # Description
//
// The sink is append-only: saves accumulate across sessions and a
// record is never rewritten. Each record carries a header with the
// originating command text, a fresh record id and a timestamp, then the
// complete unpaginated rendering, then one blank separator line.
//
// # Limitations
//
//   - No locking; concurrent processes appending to the same file may
//     interleave records.
type ExportSink struct {
	path string
	now  func() time.Time
}

// NewExportSink creates a sink at the given path, with ~ expanded. The
// parent directory is created on first Append, not here.
func NewExportSink(path string) (*ExportSink, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	return &ExportSink{path: expanded, now: time.Now}, nil
}

// Path returns the resolved export file path.
func (s *ExportSink) Path() string { return s.path }

// Append writes one export record: header, rendering, blank line.
func (s *ExportSink) Append(command string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s  id=%s  %s ---\n",
		command, uuid.NewString(), s.now().Format(time.RFC3339))
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("append export record: %w", err)
	}
	return f.Sync()
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
