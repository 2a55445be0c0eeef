// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package table

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/crosstab/pkg/query"
)

// Render draws the view as text lines.
//
// # Description
//
// Produces, in order: top border, header row (key header plus one
// "i/total" label per visible column), separator, one line per view row
// (key label, then one cell per visible column showing the value
// element's name when its flag is set and blank otherwise), bottom
// border, and, in ModePage only, a trailing pager hint line.
//
// The returned slice always matches the Layout that Compute reports for
// the same view and options: len(lines) == Layout.Height and every
// bordered line is exactly Layout.Width characters wide. Rendering is
// all-or-nothing: on error no partial table is returned.
//
// # Outputs
//
//   - []string: the rendered lines, newline-free.
//   - error: ErrEmptyView or *ConsistencyError from Compute.
func Render(v *query.View, opts Options) ([]string, error) {
	l, err := Compute(v, opts)
	if err != nil {
		return nil, err
	}
	g := opts.Glyphs

	lines := make([]string, 0, l.Height)
	lines = append(lines, rule(l, g.TL, g.TC, g.TR, g.H))

	header := make([]string, 0, l.Columns()+1)
	header = append(header, pad(opts.Header, l.KeyWidth))
	for c := l.Start; c < l.End; c++ {
		header = append(header, pad(columnLabel(c+1, l.TotalPages), l.CellWidth))
	}
	lines = append(lines, g.V+" "+strings.Join(header, " "+g.V+" ")+" "+g.V)

	lines = append(lines, rule(l, g.ML, g.MC, g.MR, g.H))

	for _, row := range v.Rows {
		cells := make([]string, 0, l.Columns()+1)
		cells = append(cells, pad(keyLabel(row), l.KeyWidth))
		for c := l.Start; c < l.End; c++ {
			text := ""
			if row.Cells[c].Flag {
				text = row.Cells[c].Value.Name
			}
			cells = append(cells, pad(text, l.CellWidth))
		}
		lines = append(lines, g.V+" "+strings.Join(cells, " "+g.V+" ")+" "+g.V)
	}

	lines = append(lines, rule(l, g.BL, g.BC, g.BR, g.H))

	if opts.Mode == ModePage {
		lines = append(lines, fmt.Sprintf("page %d/%d  (pprev/pnext, save, break)",
			l.Page, l.TotalPages))
	}
	return lines, nil
}

// rule builds one horizontal border line.
func rule(l *Layout, left, junction, right, h string) string {
	var b strings.Builder
	b.WriteString(left)
	b.WriteString(strings.Repeat(h, l.KeyWidth+2))
	for c := 0; c < l.Columns(); c++ {
		b.WriteString(junction)
		b.WriteString(strings.Repeat(h, l.CellWidth+2))
	}
	b.WriteString(right)
	return b.String()
}

// pad right-pads s to width (rune count).
func pad(s string, width int) string {
	gap := width - textWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
