// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// This file contains the Console, the REPL's only write path to the
// terminal.
//
// Single Responsibility:
//
//	The Console renders messages and prompts according to the active
//	personality level. It does not read input and it does not know what
//	a table is; callers hand it fully rendered lines.
package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Console writes styled (or machine-plain) output to one writer.
//
// # Description
//
// All user-visible REPL output flows through a Console so tests can
// capture it with a bytes.Buffer and machine consumers get stable
// prefixed lines. In machine personality no ANSI sequence is ever
// emitted.
//
// # Thread Safety
//
// Not thread-safe; the REPL is a single-threaded command loop.
type Console struct {
	writer io.Writer
	level  PersonalityLevel
}

// NewConsole creates a Console on stdout with the current personality.
func NewConsole() *Console {
	return &Console{writer: os.Stdout, level: GetPersonality()}
}

// NewConsoleWithWriter creates a Console with a custom writer (for
// testing) and an explicit personality level.
func NewConsoleWithWriter(w io.Writer, level PersonalityLevel) *Console {
	return &Console{writer: w, level: level}
}

// Level returns the console's personality level.
func (c *Console) Level() PersonalityLevel { return c.level }

// write ignores terminal write errors; there is no meaningful recovery.
func (c *Console) write(format string, args ...any) {
	if _, err := fmt.Fprintf(c.writer, format, args...); err != nil {
		return
	}
}

// Print writes a plain line in every personality.
func (c *Console) Print(text string) {
	c.write("%s\n", text)
}

// Lines writes pre-rendered lines verbatim (table output).
func (c *Console) Lines(lines []string) {
	for _, line := range lines {
		c.write("%s\n", line)
	}
}

// Raw writes text without a trailing newline (ANSI control sequences).
func (c *Console) Raw(text string) {
	c.write("%s", text)
}

// Success writes a success message.
func (c *Console) Success(text string) {
	switch c.level {
	case PersonalityMachine:
		c.write("OK: %s\n", text)
	case PersonalityMinimal:
		c.write("%s %s\n", IconSuccess.Render(), text)
	default:
		c.write("%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Error writes a single-line error message. Errors never crash the
// session loop; they are reported inline and the loop continues.
func (c *Console) Error(text string) {
	switch c.level {
	case PersonalityMachine:
		c.write("ERROR: %s\n", text)
	case PersonalityMinimal:
		c.write("%s %s\n", IconError.Render(), text)
	default:
		c.write("%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Warning writes a warning message.
func (c *Console) Warning(text string) {
	switch c.level {
	case PersonalityMachine:
		c.write("WARN: %s\n", text)
	case PersonalityMinimal:
		c.write("%s %s\n", IconWarning.Render(), text)
	default:
		c.write("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Muted writes secondary text; suppressed entirely in machine mode.
func (c *Console) Muted(text string) {
	if c.level == PersonalityMachine {
		return
	}
	c.write("%s\n", Styles.Muted.Render(text))
}

// Info writes an informational line.
func (c *Console) Info(text string) {
	if c.level == PersonalityMachine {
		c.write("%s\n", text)
		return
	}
	c.write("%s %s\n", Styles.Muted.Render("│"), text)
}

// Header writes the session banner.
func (c *Console) Header(dataset string) {
	if c.level == PersonalityMachine {
		if dataset != "" {
			c.write("BROWSE_START: dataset=%s\n", dataset)
		} else {
			c.write("BROWSE_START:\n")
		}
		return
	}

	var content strings.Builder
	content.WriteString(Styles.Highlight.Render("crosstab relation browser"))
	if dataset != "" {
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("Dataset: %s", Styles.Success.Render(dataset)))
	}
	if c.level == PersonalityFull {
		c.write("%s\n", Styles.Box.Width(48).Render(content.String()))
	} else {
		c.write("%s\n", content.String())
	}
	c.Muted("Type 'help' for commands, 'exit' to end.")
}

// Prompt returns the styled input prompt for the given REPL state name.
func (c *Console) Prompt(state string) string {
	text := "> "
	if state != "" {
		text = state + "> "
	}
	if c.level == PersonalityMachine {
		return text
	}
	return Styles.Highlight.Render(text)
}
