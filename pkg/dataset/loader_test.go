// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fruitColorText = `
# taste test dataset
Fruit, Apple, Pear
Color, Red, Green

// relations
Fruit.Apple, Color.Red
`

func TestLoad_HappyPath(t *testing.T) {
	ds := New()
	require.NoError(t, Load(ds, strings.NewReader(fruitColorText), "fruit.txt"))

	fruit, ok := ds.Symbols.Class("Fruit")
	require.True(t, ok)
	assert.Equal(t, 2, fruit.Len())

	assert.True(t, ds.Relations.Has("Fruit", "Color"))
	assert.True(t, ds.Relations.Related("Fruit", "Color", "Apple", "Red"))
	assert.True(t, ds.Relations.Related("Color", "Fruit", "Red", "Apple"),
		"loader must insert forward and inverse pairs")
}

// Every declared relation (A,B) must have an inverse (B,A) with the exact
// mirrored pair set.
func TestLoad_InverseMirrorsForward(t *testing.T) {
	text := `
Fruit, Apple, Pear, Plum
Color, Red, Green, Blue
Fruit.Apple, Color.Red
Fruit.Pear, Color.Green
Fruit.Plum, Color.Red
`
	ds := New()
	require.NoError(t, Load(ds, strings.NewReader(text), "t"))

	forward, err := ds.Relations.Pairs("Fruit", "Color")
	require.NoError(t, err)
	inverse, err := ds.Relations.Pairs("Color", "Fruit")
	require.NoError(t, err)
	require.Equal(t, len(forward), len(inverse))

	for _, p := range forward {
		assert.True(t, ds.Relations.Related("Color", "Fruit", p.Val.Name, p.Key.Name),
			"missing mirror of (%s, %s)", p.Key, p.Val)
	}
	for _, p := range inverse {
		assert.True(t, ds.Relations.Related("Fruit", "Color", p.Val.Name, p.Key.Name),
			"extra inverse pair (%s, %s)", p.Key, p.Val)
	}
}

func TestLoad_RelationTermInternsNewElement(t *testing.T) {
	text := `
Fruit, Apple
Color, Red
Fruit.Quince, Color.Red
`
	ds := New()
	require.NoError(t, Load(ds, strings.NewReader(text), "t"))

	fruit, _ := ds.Symbols.Class("Fruit")
	assert.Equal(t, 2, fruit.Len(), "Quince interned on first relation mention")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		line    int
		wantErr error
	}{
		{
			name:    "duplicate element",
			text:    "Fruit, Apple, Apple\n",
			line:    1,
			wantErr: ErrDuplicateSymbol,
		},
		{
			name:    "duplicate class",
			text:    "Fruit, Apple\nFruit, Pear\n",
			line:    2,
			wantErr: ErrDuplicateSymbol,
		},
		{
			name:    "reflexive relation",
			text:    "Fruit, Apple, Pear\nFruit.Apple, Fruit.Pear\n",
			line:    2,
			wantErr: ErrSelfRelation,
		},
		{
			name:    "undeclared class in relation",
			text:    "Fruit, Apple\nFruit.Apple, Color.Red\n",
			line:    2,
			wantErr: ErrUnknownClass,
		},
		{
			name:    "duplicate relation pair",
			text:    "Fruit, Apple\nColor, Red\nFruit.Apple, Color.Red\nFruit.Apple, Color.Red\n",
			line:    4,
			wantErr: ErrDuplicatePair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := New()
			err := Load(ds, strings.NewReader(tt.text), "bad.txt")
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
			assert.Equal(t, "bad.txt", perr.Source)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ClassAfterRelationsSection(t *testing.T) {
	text := `
Fruit, Apple
Color, Red
Fruit.Apple, Color.Red
Taste, Sweet
`
	ds := New()
	err := Load(ds, strings.NewReader(text), "t")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 5, perr.Line)
}

func TestLoad_RelationLineArity(t *testing.T) {
	text := "Fruit, Apple\nColor, Red\nFruit.Apple, Color.Red, Color.Red\n"
	ds := New()
	err := Load(ds, strings.NewReader(text), "t")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Msg, "exactly 2 terms")
}

func TestLoad_FailureLeavesEmptyDataset(t *testing.T) {
	ds := New()
	require.NoError(t, Load(ds, strings.NewReader(fruitColorText), "ok"))

	err := Load(ds, strings.NewReader("Fruit, Apple, Apple\n"), "bad")
	require.Error(t, err)

	// Prior state is cleared proactively before parsing: a failed load
	// leaves an empty dataset, not the previous one.
	assert.Empty(t, ds.Symbols.ClassNames())
	assert.Empty(t, ds.Relations.Directions())
}
