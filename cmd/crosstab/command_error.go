// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"
)

// CommandError wraps a failed REPL command with the input that caused it.
//
// # Description
//
// A CommandError is always recoverable: the runner reports it as a
// single inline line and keeps looping with session state unchanged.
// Implements the error interface and supports unwrapping so callers can
// match the dataset sentinels with errors.Is.
//
// # Example
//
//	err := NewCommandError("Fruit v Fruit", "a class cannot relate to itself", nil)
//	fmt.Println(err.Error()) // "Fruit v Fruit: a class cannot relate to itself"
type CommandError struct {
	// Input is the command text as the user typed it.
	Input string

	// Msg is the single-line description shown to the user.
	Msg string

	// Wrapped is the underlying error, often a dataset sentinel.
	Wrapped error
}

// Error returns "input: message", falling back to the wrapped error's
// text when no message was given.
func (e *CommandError) Error() string {
	msg := e.Msg
	if msg == "" && e.Wrapped != nil {
		msg = e.Wrapped.Error()
	}
	if e.Input == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Input, msg)
}

// Unwrap returns the underlying error so errors.Is/As work through the
// chain.
func (e *CommandError) Unwrap() error {
	return e.Wrapped
}

// NewCommandError creates a CommandError with full context.
func NewCommandError(input, msg string, wrapped error) *CommandError {
	return &CommandError{Input: input, Msg: msg, Wrapped: wrapped}
}

// WrapCommandError wraps an error into a CommandError unless it already
// is one.
func WrapCommandError(err error, input string) *CommandError {
	if err == nil {
		return nil
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr
	}
	return NewCommandError(input, "", err)
}
