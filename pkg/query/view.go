// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package query builds cross-tabulation and scoring views over a loaded
// dataset.
//
// Single Responsibility:
//
//	Pure functions from dataset handles to View values. No I/O, no
//	terminal, no mutation of the dataset. A View is transient: the REPL
//	recomputes it on every display, page, and save command.
package query

import "github.com/AleutianAI/crosstab/pkg/dataset"

// Cell is one (value element, display flag) entry of a view row.
//
// In cross-tab views the flag is relation membership. In scoring views it
// is either raw membership or the agreement flag, depending on the display
// mode the caller selected (see ScoreOptions).
type Cell struct {
	Value *dataset.Symbol
	Flag  bool
}

// Row is one view row, keyed by a key-class element.
//
// Scored is true for rows produced by Score; Score holds the per-row
// total and participates in row ordering. Cross-tab rows leave both at
// their zero values.
type Row struct {
	Key    *dataset.Symbol
	Score  int
	Scored bool
	Cells  []Cell
}

// View is an ordered sequence of rows with identical column identity.
//
// Structural guarantees (relied upon by the renderer, which still detects
// violations defensively):
//
//   - every row has exactly Columns cells;
//   - cell i of every row refers to the same value-class element;
//   - column order is the value class insertion order.
type View struct {
	KeyClass string
	ValClass string

	// Columns is the number of value-class elements. Kept explicitly so a
	// view with zero rows still knows its column count.
	Columns int

	Rows []Row
}

// Empty reports whether there is nothing to display: either class was
// empty. The renderer turns this into an empty-table condition rather
// than an error.
func (v *View) Empty() bool {
	return len(v.Rows) == 0 || v.Columns == 0
}

// ColumnValues returns the value elements of the columns, taken from the
// first row. Returns nil for empty views.
func (v *View) ColumnValues() []*dataset.Symbol {
	if len(v.Rows) == 0 {
		return nil
	}
	out := make([]*dataset.Symbol, 0, v.Columns)
	for _, c := range v.Rows[0].Cells {
		out = append(out, c.Value)
	}
	return out
}
