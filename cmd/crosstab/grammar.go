// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// This file contains the REPL command grammar: a closed set of tagged
// command variants and the two state-specific parsers that produce them.
//
// Single Responsibility:
//
//	Parsing only. Execution lives in browse_runner.go; keeping the two
//	apart means the grammar can be tested exhaustively without a dataset
//	or a terminal.
//
// Grammar (main state, first match wins, keywords before relation forms):
//
//	exit | quit                      end the session
//	help | h | ?                     command summary
//	load <path>                      replace the dataset from a file
//	classes                          list declared classes
//	relations                        list declared relations
//	<Class>                          list the members of one class
//	<Key> OP <Val>                   cross-tab, enters table view
//	<Key> OP <Val> SCOPE <Element>   scoring, enters table view
//
// OP is `v` or `x` (case-insensitive). SCOPE selects scoring polarity
// and cell display:
//
//	.   similarity, cells show raw membership
//	!   dissimilarity, cells show raw membership
//	=   similarity, cells show agreement with the reference
//	#   dissimilarity, cells show disagreement with the reference
//
// Table-view state:
//
//	help | h | ?        command summary
//	break | b           discard the selection, back to main
//	display | show      redraw the current page
//	save                append the full table to the export file
//	pnext | pprev       page navigation (clamped)
//	pfirst | plast
//	p<N>                jump to page N (clamped)
//	exit | quit         end the session
package main

import (
	"strconv"
	"strings"
)

// Command is the closed tagged-variant type produced by the parsers.
// Every variant is a distinct struct; the runner switches on the
// concrete type and never re-tokenizes the input.
type Command interface {
	isCommand()
}

// --- Shared variants ---

// ExitCommand ends the whole session from either state.
type ExitCommand struct{}

// HelpCommand prints the command summary of the current state.
type HelpCommand struct{}

// UnknownCommand carries input no rule matched. Reported as a
// single-line error; session state stays untouched.
type UnknownCommand struct {
	Input string
}

// --- Main-state variants ---

// LoadCommand replaces the dataset from a file.
type LoadCommand struct {
	Path string
}

// ClassesCommand lists the declared classes.
type ClassesCommand struct{}

// RelationsCommand lists the declared relations, one per class pair.
type RelationsCommand struct{}

// ShowClassCommand lists the members of one class.
type ShowClassCommand struct {
	Class string
}

// RelateCommand selects a cross-tab of KeyClass against ValClass and
// enters table view.
type RelateCommand struct {
	KeyClass string
	ValClass string
}

// ScoreCommand selects a scored view of KeyClass against ValClass,
// ranked by (dis)similarity to Ref, and enters table view.
type ScoreCommand struct {
	KeyClass      string
	ValClass      string
	Ref           string
	Dissimilarity bool
	ShowEquality  bool
}

// --- Table-view variants ---

// BreakCommand leaves table view; the selection is discarded.
type BreakCommand struct{}

// DisplayCommand redraws the current page.
type DisplayCommand struct{}

// SaveCommand appends the full unpaginated table to the export file.
type SaveCommand struct{}

// PageMove enumerates the relative page navigation commands.
type PageMove int

const (
	PageNext PageMove = iota
	PagePrev
	PageFirst
	PageLast
	PageAbsolute
)

// PageCommand navigates between column pages. N is only meaningful for
// PageAbsolute; clamping is the runner's job.
type PageCommand struct {
	Move PageMove
	N    int
}

func (ExitCommand) isCommand()      {}
func (HelpCommand) isCommand()      {}
func (UnknownCommand) isCommand()   {}
func (LoadCommand) isCommand()      {}
func (ClassesCommand) isCommand()   {}
func (RelationsCommand) isCommand() {}
func (ShowClassCommand) isCommand() {}
func (RelateCommand) isCommand()    {}
func (ScoreCommand) isCommand()     {}
func (BreakCommand) isCommand()     {}
func (DisplayCommand) isCommand()   {}
func (SaveCommand) isCommand()      {}
func (PageCommand) isCommand()      {}

// =============================================================================
// Parsers
// =============================================================================

// ParseMain parses one main-state input line. Blank input returns nil
// (the runner just reprompts). Keywords are matched case-insensitively;
// class and element names are case-sensitive.
func ParseMain(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		if len(fields) == 1 {
			return ExitCommand{}
		}
	case "help", "h", "?":
		if len(fields) == 1 {
			return HelpCommand{}
		}
	case "classes":
		if len(fields) == 1 {
			return ClassesCommand{}
		}
	case "relations":
		if len(fields) == 1 {
			return RelationsCommand{}
		}
	case "load":
		// The path is everything after the keyword, so paths with
		// spaces survive.
		if rest := strings.TrimSpace(strings.TrimPrefix(line, fields[0])); rest != "" {
			return LoadCommand{Path: rest}
		}
		return UnknownCommand{Input: line}
	}

	switch {
	case len(fields) == 1:
		return ShowClassCommand{Class: fields[0]}
	case len(fields) == 3 && isOp(fields[1]):
		return RelateCommand{KeyClass: fields[0], ValClass: fields[2]}
	case len(fields) == 5 && isOp(fields[1]):
		dissim, showEq, ok := scopeFlags(fields[3])
		if !ok {
			return UnknownCommand{Input: line}
		}
		return ScoreCommand{
			KeyClass:      fields[0],
			ValClass:      fields[2],
			Ref:           fields[4],
			Dissimilarity: dissim,
			ShowEquality:  showEq,
		}
	}
	return UnknownCommand{Input: line}
}

// ParseTable parses one table-view input line. Blank input returns nil.
func ParseTable(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	switch strings.ToLower(line) {
	case "exit", "quit":
		return ExitCommand{}
	case "help", "h", "?":
		return HelpCommand{}
	case "break", "b":
		return BreakCommand{}
	case "display", "show":
		return DisplayCommand{}
	case "save":
		return SaveCommand{}
	case "pnext":
		return PageCommand{Move: PageNext}
	case "pprev":
		return PageCommand{Move: PagePrev}
	case "pfirst":
		return PageCommand{Move: PageFirst}
	case "plast":
		return PageCommand{Move: PageLast}
	}

	// p<N>: absolute page jump.
	if len(line) > 1 && (line[0] == 'p' || line[0] == 'P') {
		if n, err := strconv.Atoi(line[1:]); err == nil {
			return PageCommand{Move: PageAbsolute, N: n}
		}
	}
	return UnknownCommand{Input: line}
}

func isOp(tok string) bool {
	switch strings.ToLower(tok) {
	case "v", "x":
		return true
	}
	return false
}

// scopeFlags maps a SCOPE token to (dissimilarity, showEquality).
func scopeFlags(tok string) (dissim, showEq, ok bool) {
	switch tok {
	case ".":
		return false, false, true
	case "!":
		return true, false, true
	case "=":
		return false, true, true
	case "#":
		return true, true, true
	}
	return false, false, false
}
