// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"gibberish", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("unexpected level strings")
	}
}

func TestNew_FileOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := New(Config{
		Level:   LevelInfo,
		LogDir:  dir,
		Service: "browse",
		Quiet:   true,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("dataset loaded", "classes", 2)
	logger.Debug("should be filtered out")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	name := "browse_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "dataset loaded") {
		t.Errorf("missing info entry in %q", out)
	}
	if !strings.Contains(out, `"service":"browse"`) {
		t.Errorf("missing service attribute in %q", out)
	}
	if strings.Contains(out, "should be filtered out") {
		t.Error("debug entry leaked past the info level")
	}
}

func TestClose_Idempotent(t *testing.T) {
	logger, err := New(Config{LogDir: t.TempDir(), Quiet: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() failed: %v", err)
	}
}

func TestWith_SharesDestination(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{LogDir: dir, Quiet: true})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer logger.Close()

	child := logger.With("page", 3)
	child.Info("navigated")

	name := "crosstab_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"page":3`) {
		t.Errorf("derived logger attribute missing in %q", string(data))
	}
}
