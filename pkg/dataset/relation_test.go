// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declareFruitColor(t *testing.T) *Dataset {
	t.Helper()
	ds := New()
	for _, d := range [][2]string{
		{"Fruit", "Apple"}, {"Fruit", "Pear"},
		{"Color", "Red"}, {"Color", "Green"},
	} {
		_, err := ds.Symbols.Declare(d[0], d[1])
		require.NoError(t, err)
	}
	return ds
}

func TestStore_Declare_CreatesBothDirections(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Declare("Fruit", "Color"))

	assert.True(t, s.Has("Fruit", "Color"))
	assert.True(t, s.Has("Color", "Fruit"))

	// Re-declaring either direction is a no-op.
	require.NoError(t, s.Declare("Fruit", "Color"))
	require.NoError(t, s.Declare("Color", "Fruit"))
	assert.Len(t, s.Directions(), 2)
}

func TestStore_Declare_RejectsSelfRelation(t *testing.T) {
	s := NewStore()
	err := s.Declare("Fruit", "Fruit")
	require.ErrorIs(t, err, ErrSelfRelation)
	assert.False(t, s.Has("Fruit", "Fruit"))
}

func TestStore_AddPair_RequiresDeclaredDirection(t *testing.T) {
	ds := declareFruitColor(t)
	apple, err := ds.Symbols.Lookup("Fruit", "Apple")
	require.NoError(t, err)
	red, err := ds.Symbols.Lookup("Color", "Red")
	require.NoError(t, err)

	err = ds.Relations.AddPair("Fruit", "Color", apple, red)
	require.ErrorIs(t, err, ErrUnknownRelation)
}

func TestStore_AddPair_RejectsDuplicates(t *testing.T) {
	ds := declareFruitColor(t)
	require.NoError(t, ds.Relations.Declare("Fruit", "Color"))
	apple, _ := ds.Symbols.Lookup("Fruit", "Apple")
	red, _ := ds.Symbols.Lookup("Color", "Red")

	require.NoError(t, ds.Relations.AddPair("Fruit", "Color", apple, red))
	err := ds.Relations.AddPair("Fruit", "Color", apple, red)
	require.ErrorIs(t, err, ErrDuplicatePair)
}

func TestStore_AddPair_DoesNotInferInverse(t *testing.T) {
	ds := declareFruitColor(t)
	require.NoError(t, ds.Relations.Declare("Fruit", "Color"))
	apple, _ := ds.Symbols.Lookup("Fruit", "Apple")
	red, _ := ds.Symbols.Lookup("Color", "Red")

	require.NoError(t, ds.Relations.AddPair("Fruit", "Color", apple, red))

	assert.True(t, ds.Relations.Related("Fruit", "Color", "Apple", "Red"))
	assert.False(t, ds.Relations.Related("Color", "Fruit", "Red", "Apple"),
		"the store must not insert the mirrored pair on its own")
}

func TestStore_Pairs_InsertionOrder(t *testing.T) {
	ds := declareFruitColor(t)
	require.NoError(t, ds.Relations.Declare("Fruit", "Color"))
	apple, _ := ds.Symbols.Lookup("Fruit", "Apple")
	pear, _ := ds.Symbols.Lookup("Fruit", "Pear")
	red, _ := ds.Symbols.Lookup("Color", "Red")
	green, _ := ds.Symbols.Lookup("Color", "Green")

	require.NoError(t, ds.Relations.AddPair("Fruit", "Color", pear, green))
	require.NoError(t, ds.Relations.AddPair("Fruit", "Color", apple, red))

	pairs, err := ds.Relations.Pairs("Fruit", "Color")
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "Pear", pairs[0].Key.Name)
	assert.Equal(t, "Apple", pairs[1].Key.Name)
}

func TestStore_UnorderedPairs_OnePerClassPair(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Declare("Fruit", "Color"))
	require.NoError(t, s.Declare("Fruit", "Taste"))

	rels := s.UnorderedPairs()
	require.Len(t, rels, 2)
	assert.Equal(t, "Fruit", rels[0].KeyClass())
	assert.Equal(t, "Color", rels[0].ValClass())
	assert.Equal(t, "Taste", rels[1].ValClass())
}

func TestStore_Reset(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Declare("Fruit", "Color"))
	s.Reset()
	assert.False(t, s.Has("Fruit", "Color"))
	assert.Empty(t, s.Directions())
}
