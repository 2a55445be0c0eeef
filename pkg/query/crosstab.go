// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package query

import (
	"fmt"

	"github.com/AleutianAI/crosstab/pkg/dataset"
)

// CrossTab builds the full pairing of two classes annotated by relation
// membership.
//
// # Description
//
// Conceptually the cartesian product keyClass × valClass left-joined
// against the (keyClass, valClass) relation: one row per key element in
// insertion order, one cell per value element in insertion order, flag
// true iff the pair is related. Row and column sets are identical across
// rows by construction, since both come from class enumerations rather
// than from the query result.
//
// # Outputs
//
//   - *View: the cross-tab view; Empty() when either class has no members.
//   - error: ErrUnknownClass / ErrUnknownRelation for unvalidated input.
//     The command layer normally validates first, but the engine checks
//     anyway so it can never index a missing class.
func CrossTab(ds *dataset.Dataset, keyClass, valClass string) (*View, error) {
	key, val, err := resolveClasses(ds, keyClass, valClass)
	if err != nil {
		return nil, err
	}
	if !ds.Relations.Has(keyClass, valClass) {
		return nil, fmt.Errorf("%s/%s: %w", keyClass, valClass, dataset.ErrUnknownRelation)
	}

	view := &View{
		KeyClass: keyClass,
		ValClass: valClass,
		Columns:  val.Len(),
	}
	for _, k := range key.Members() {
		row := Row{Key: k, Cells: make([]Cell, 0, val.Len())}
		for _, v := range val.Members() {
			row.Cells = append(row.Cells, Cell{
				Value: v,
				Flag:  ds.Relations.Related(keyClass, valClass, k.Name, v.Name),
			})
		}
		view.Rows = append(view.Rows, row)
	}
	return view, nil
}

func resolveClasses(ds *dataset.Dataset, keyClass, valClass string) (*dataset.Class, *dataset.Class, error) {
	key, ok := ds.Symbols.Class(keyClass)
	if !ok {
		return nil, nil, fmt.Errorf("class %q: %w", keyClass, dataset.ErrUnknownClass)
	}
	val, ok := ds.Symbols.Class(valClass)
	if !ok {
		return nil, nil, fmt.Errorf("class %q: %w", valClass, dataset.ErrUnknownClass)
	}
	return key, val, nil
}
