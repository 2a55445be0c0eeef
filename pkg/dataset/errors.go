// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations. Callers match with errors.Is.
var (
	// ErrDuplicateSymbol is returned when a class element is declared twice.
	ErrDuplicateSymbol = errors.New("duplicate symbol declaration")

	// ErrDuplicatePair is returned when the same pair is added twice to one
	// relation direction.
	ErrDuplicatePair = errors.New("duplicate relation pair")

	// ErrSelfRelation is returned when a class is related to itself.
	ErrSelfRelation = errors.New("class cannot relate to itself")

	// ErrUnknownClass is returned when an operation names a class that has
	// not been declared.
	ErrUnknownClass = errors.New("unknown class")

	// ErrUnknownRelation is returned when a relation direction was never
	// declared.
	ErrUnknownRelation = errors.New("relation not declared")

	// ErrUnknownSymbol is returned when a class has no element by the
	// requested name.
	ErrUnknownSymbol = errors.New("unknown element")
)

// ParseError describes a malformed line in a dataset file.
//
// # Description
//
// ParseError carries the source name and 1-based line number so the REPL
// can report load failures as a single actionable message. It wraps the
// underlying store error (if any) for errors.Is matching.
//
// Note that the loader resets the dataset before it starts parsing, so a
// ParseError always leaves the dataset empty, never half-loaded.
//
// # Example
//
//	err := dataset.LoadFile(ds, "fruit.txt")
//	var perr *dataset.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Printf("%s:%d: %s\n", perr.Source, perr.Line, perr.Msg)
//	}
type ParseError struct {
	// Source is the file path or reader name being parsed.
	Source string

	// Line is the 1-based line number of the offending line.
	Line int

	// Msg is the human-readable description of the problem.
	Msg string

	// Wrapped is the underlying error, if the problem surfaced from the
	// symbol table or relation store. May be nil.
	Wrapped error
}

// Error returns "source:line: message".
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
}

// Unwrap returns the underlying store error, enabling errors.Is/As
// through the chain.
func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// parseErrorf builds a ParseError with a formatted message.
func parseErrorf(source string, line int, wrapped error, format string, args ...any) *ParseError {
	return &ParseError{
		Source:  source,
		Line:    line,
		Msg:     fmt.Sprintf(format, args...),
		Wrapped: wrapped,
	}
}
