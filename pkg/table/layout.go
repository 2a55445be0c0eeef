// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package table turns a query view into a paginated, fixed-width
// bordered text table.
//
// Single Responsibility:
//
//	Layout and drawing only. The package never writes to a terminal or
//	file; it returns plain text lines for the REPL or export sink to
//	emit. No ANSI styling is applied here: the exported sizing contract
//	is exact byte geometry, which color codes would break.
//
// Layout/drawing split:
//
//	Compute produces the full geometry (widths, visible column range,
//	total width and height) without drawing anything, so the REPL can
//	clear the previously drawn table before asking Render for the next
//	one. Render reuses Compute rather than duplicating the arithmetic.
package table

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/AleutianAI/crosstab/pkg/query"
)

// Mode selects between a single column-page and the full table.
type Mode int

const (
	// ModePage renders exactly one column (Options.Page, 1-based,
	// clamped) plus a trailing pager hint line.
	ModePage Mode = iota

	// ModeFull renders every column and no pager line. Used by save.
	ModeFull
)

// Options configures one rendering.
type Options struct {
	// Header is the key column header, normally the key class name.
	Header string

	// Glyphs is the border character set.
	Glyphs Glyphs

	// Mode selects paged or full rendering.
	Mode Mode

	// Page is the 1-based page (column) for ModePage. Out-of-range
	// values clamp: below 1 to the first page, beyond the last to the
	// last page.
	Page int
}

// ErrEmptyView signals that the view has zero rows or zero columns.
// There is no page to show; the caller reports an empty-table condition
// instead of failing.
var ErrEmptyView = errors.New("empty view, nothing to display")

// ConsistencyError reports a view whose rows do not share identical
// column identity. The query engine guarantees this structurally, so
// hitting it means an internal invariant broke, so callers treat it as
// fatal, not as a user error.
type ConsistencyError struct {
	RowIndex int
	Detail   string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistent view at row %d: %s", e.RowIndex, e.Detail)
}

// Layout is the precomputed geometry of one rendering.
type Layout struct {
	// KeyWidth is the inner width of the key column: the widest key
	// label or the header, whichever is larger.
	KeyWidth int

	// CellWidth is the uniform inner width of every value cell: the
	// widest value name across ALL columns, or the widest column header.
	// Uniform width across columns is a deliberate simplicity and
	// readability trade-off.
	CellWidth int

	// Start and End bound the visible columns, [Start, End) 0-based.
	Start, End int

	// Page is the clamped 1-based page; TotalPages the column count.
	Page, TotalPages int

	// Width and Height are the exact text dimensions Render will
	// produce, in characters and lines (pager line included in
	// ModePage).
	Width, Height int
}

// Columns returns the number of visible columns.
func (l *Layout) Columns() int { return l.End - l.Start }

// Compute derives the layout without drawing.
//
// Returns ErrEmptyView for views with no rows or no columns, and a
// *ConsistencyError if row shapes or column identities diverge.
func Compute(v *query.View, opts Options) (*Layout, error) {
	if err := checkConsistent(v); err != nil {
		return nil, err
	}
	if v.Empty() {
		return nil, ErrEmptyView
	}

	l := &Layout{TotalPages: v.Columns}

	// Clamp the page. Full mode ignores paging entirely.
	switch opts.Mode {
	case ModeFull:
		l.Page = 1
		l.Start, l.End = 0, v.Columns
	default:
		l.Page = clamp(opts.Page, 1, v.Columns)
		l.Start, l.End = l.Page-1, l.Page
	}

	l.KeyWidth = textWidth(opts.Header)
	for _, row := range v.Rows {
		if w := textWidth(keyLabel(row)); w > l.KeyWidth {
			l.KeyWidth = w
		}
	}

	// Widest value name across all columns, not per column; headers
	// ("i/total") count too since they sit in the same cells.
	l.CellWidth = textWidth(columnLabel(l.TotalPages, l.TotalPages))
	for _, row := range v.Rows {
		for _, cell := range row.Cells {
			if w := textWidth(cell.Value.Name); w > l.CellWidth {
				l.CellWidth = w
			}
		}
	}

	n := l.Columns()
	l.Width = 1 + (l.KeyWidth + 2) + n*(l.CellWidth+3) + 1
	l.Height = 4 + len(v.Rows) // top, header, separator, rows, bottom
	if opts.Mode == ModePage {
		l.Height++ // pager hint line
	}
	return l, nil
}

// checkConsistent verifies uniform row shape and identical column
// identity across rows. Defensive: unreachable when views come from
// pkg/query.
func checkConsistent(v *query.View) error {
	for i, row := range v.Rows {
		if len(row.Cells) != v.Columns {
			return &ConsistencyError{
				RowIndex: i,
				Detail:   fmt.Sprintf("has %d cells, want %d", len(row.Cells), v.Columns),
			}
		}
		if i == 0 {
			continue
		}
		for c := range row.Cells {
			want := v.Rows[0].Cells[c].Value
			got := row.Cells[c].Value
			if !got.Equal(want) {
				return &ConsistencyError{
					RowIndex: i,
					Detail:   fmt.Sprintf("column %d is %s, want %s", c, got, want),
				}
			}
		}
	}
	return nil
}

func keyLabel(row query.Row) string {
	if row.Scored {
		return fmt.Sprintf("%s (%d)", row.Key.Name, row.Score)
	}
	return row.Key.Name
}

func columnLabel(i, total int) string {
	return fmt.Sprintf("%d/%d", i, total)
}

func textWidth(s string) int {
	return utf8.RuneCountInString(s)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
