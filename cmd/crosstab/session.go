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

	"github.com/AleutianAI/crosstab/pkg/dataset"
	"github.com/AleutianAI/crosstab/pkg/query"
)

// Session is the table-view selection: which classes are being browsed,
// how they are scored, and which page is showing.
//
// # Description
//
// One Session is built per relation or scoring command and discarded on
// `break`. The runner owns it directly; nothing here is package-global,
// so two runners in one process (tests do this) never interfere.
type Session struct {
	// KeyClass and ValClass are the selected classes.
	KeyClass string
	ValClass string

	// Ref is the reference element for scoring; empty for a plain
	// cross-tab.
	Ref string

	// Dissimilarity and ShowEquality carry the SCOPE token's meaning.
	Dissimilarity bool
	ShowEquality  bool

	// Page is the current 1-based column page, kept clamped by the
	// runner after every navigation.
	Page int

	// CommandText is the originating input line, reproduced in export
	// headers.
	CommandText string

	// View is the computed query view this session displays.
	View *query.View
}

// Scored reports whether this is a scoring session.
func (s *Session) Scored() bool { return s.Ref != "" }

// newSession validates the selection against the dataset and computes
// the view. All failures are *CommandError: the class pair must be two
// distinct declared classes with a declared relation, and a scoring
// reference must be an element of the key class.
func newSession(ds *dataset.Dataset, cmd Command, input string) (*Session, error) {
	s := &Session{Page: 1, CommandText: input}

	switch c := cmd.(type) {
	case RelateCommand:
		s.KeyClass, s.ValClass = c.KeyClass, c.ValClass
	case ScoreCommand:
		s.KeyClass, s.ValClass = c.KeyClass, c.ValClass
		s.Ref = c.Ref
		s.Dissimilarity = c.Dissimilarity
		s.ShowEquality = c.ShowEquality
	default:
		return nil, NewCommandError(input, fmt.Sprintf("not a selection command: %T", cmd), nil)
	}

	// Self relations are rejected here, before any engine work.
	if s.KeyClass == s.ValClass {
		return nil, NewCommandError(input, "a class cannot be related to itself", dataset.ErrSelfRelation)
	}

	if err := s.recompute(ds); err != nil {
		return nil, err
	}
	return s, nil
}

// recompute rebuilds the view from the dataset, translating engine
// errors into user-facing command errors.
func (s *Session) recompute(ds *dataset.Dataset) error {
	var (
		view *query.View
		err  error
	)
	if s.Scored() {
		view, err = query.Score(ds, s.KeyClass, s.ValClass, s.Ref, query.ScoreOptions{
			Dissimilarity: s.Dissimilarity,
			ShowEquality:  s.ShowEquality,
		})
	} else {
		view, err = query.CrossTab(ds, s.KeyClass, s.ValClass)
	}
	if err != nil {
		return describeQueryError(err, s)
	}
	s.View = view
	return nil
}

// describeQueryError maps dataset sentinels to one-line messages.
func describeQueryError(err error, s *Session) error {
	switch {
	case errors.Is(err, dataset.ErrUnknownClass):
		return NewCommandError(s.CommandText, "unknown class", err)
	case errors.Is(err, dataset.ErrUnknownRelation):
		return NewCommandError(s.CommandText,
			fmt.Sprintf("no relation declared between %s and %s", s.KeyClass, s.ValClass), err)
	case errors.Is(err, dataset.ErrUnknownSymbol):
		return NewCommandError(s.CommandText,
			fmt.Sprintf("%q is not an element of %s", s.Ref, s.KeyClass), err)
	default:
		return WrapCommandError(err, s.CommandText)
	}
}
