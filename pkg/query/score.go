// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package query

import (
	"fmt"
	"sort"

	"github.com/AleutianAI/crosstab/pkg/dataset"
)

// ScoreOptions selects the scoring polarity and the cell display mode.
type ScoreOptions struct {
	// Dissimilarity inverts the scoring: a point is awarded when a row
	// element and the reference DISAGREE on membership of a column
	// element, instead of when they agree.
	Dissimilarity bool

	// ShowEquality switches cell flags from raw relation membership to
	// the agreement flag. In dissimilarity mode the agreement flag is
	// inverted, so a set flag always reads as "this is what scored".
	ShowEquality bool
}

// Score builds the similarity/dissimilarity view of keyClass against
// valClass, ranked by agreement with the reference element.
//
// # Description
//
// For the reference element the membership profile refHas(b) is computed
// over every value element b. Then, for each (a, b) of the cartesian
// product: equal = (related(a,b) == refHas(b)), and a point is scored iff
// equal == !Dissimilarity. Row totals sum the points over all columns.
//
// Rows are ordered by descending total; ties keep key class insertion
// order. The sort is deliberately stable: tie order is a documented
// correctness property, not an accident of the sort.
//
// # Inputs
//
//   - refName: an element of keyClass. Resolution is the command layer's
//     job; an unknown name returns ErrUnknownSymbol rather than a panic.
//
// # Outputs
//
//   - *View: rows carry Scored=true and the per-row total.
func Score(ds *dataset.Dataset, keyClass, valClass, refName string, opts ScoreOptions) (*View, error) {
	key, val, err := resolveClasses(ds, keyClass, valClass)
	if err != nil {
		return nil, err
	}
	if !ds.Relations.Has(keyClass, valClass) {
		return nil, fmt.Errorf("%s/%s: %w", keyClass, valClass, dataset.ErrUnknownRelation)
	}
	if _, err := ds.Symbols.Lookup(keyClass, refName); err != nil {
		return nil, err
	}

	// Membership profile of the reference row.
	refHas := make([]bool, val.Len())
	for i, v := range val.Members() {
		refHas[i] = ds.Relations.Related(keyClass, valClass, refName, v.Name)
	}

	view := &View{
		KeyClass: keyClass,
		ValClass: valClass,
		Columns:  val.Len(),
	}
	for _, a := range key.Members() {
		row := Row{Key: a, Scored: true, Cells: make([]Cell, 0, val.Len())}
		for i, b := range val.Members() {
			aHasB := ds.Relations.Related(keyClass, valClass, a.Name, b.Name)
			equal := aHasB == refHas[i]
			if equal == !opts.Dissimilarity {
				row.Score++
			}
			flag := aHasB
			if opts.ShowEquality {
				// XOR with the dissimilarity polarity: in a
				// dissimilarity view a set flag means "differs from
				// reference", not "equals".
				flag = equal != opts.Dissimilarity
			}
			row.Cells = append(row.Cells, Cell{Value: b, Flag: flag})
		}
		view.Rows = append(view.Rows, row)
	}

	sort.SliceStable(view.Rows, func(i, j int) bool {
		return view.Rows[i].Score > view.Rows[j].Score
	})
	return view, nil
}
