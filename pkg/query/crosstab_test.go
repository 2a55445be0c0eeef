// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package query

import (
	"strings"
	"testing"

	"github.com/AleutianAI/crosstab/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadText(t *testing.T, text string) *dataset.Dataset {
	t.Helper()
	ds := dataset.New()
	require.NoError(t, dataset.Load(ds, strings.NewReader(text), "test"))
	return ds
}

const fruitColor = `
Fruit, Apple, Pear
Color, Red, Green
Fruit.Apple, Color.Red
`

func TestCrossTab_FruitColorExample(t *testing.T) {
	ds := loadText(t, fruitColor)

	v, err := CrossTab(ds, "Fruit", "Color")
	require.NoError(t, err)

	// Row Apple -> [Red:true, Green:false]; row Pear -> [Red:false, Green:false].
	require.Len(t, v.Rows, 2)
	require.Equal(t, 2, v.Columns)

	apple := v.Rows[0]
	assert.Equal(t, "Apple", apple.Key.Name)
	assert.False(t, apple.Scored)
	assert.Equal(t, "Red", apple.Cells[0].Value.Name)
	assert.True(t, apple.Cells[0].Flag)
	assert.Equal(t, "Green", apple.Cells[1].Value.Name)
	assert.False(t, apple.Cells[1].Flag)

	pear := v.Rows[1]
	assert.Equal(t, "Pear", pear.Key.Name)
	assert.False(t, pear.Cells[0].Flag)
	assert.False(t, pear.Cells[1].Flag)
}

func TestCrossTab_ShapeMatchesClasses(t *testing.T) {
	text := `
Dish, Soup, Stew, Salad
Season, Spring, Summer, Autumn, Winter
Dish.Soup, Season.Winter
Dish.Salad, Season.Summer
`
	ds := loadText(t, text)

	v, err := CrossTab(ds, "Dish", "Season")
	require.NoError(t, err)

	// Row count == |keyClass|, column count == |valClass| on every row.
	assert.Len(t, v.Rows, 3)
	assert.Equal(t, 4, v.Columns)
	for _, row := range v.Rows {
		assert.Len(t, row.Cells, 4)
	}

	// A cell is flagged true iff the corresponding pair is in the relation.
	for _, row := range v.Rows {
		for _, cell := range row.Cells {
			want := ds.Relations.Related("Dish", "Season", row.Key.Name, cell.Value.Name)
			assert.Equal(t, want, cell.Flag, "%s/%s", row.Key.Name, cell.Value.Name)
		}
	}
}

func TestCrossTab_InverseDirectionWorks(t *testing.T) {
	ds := loadText(t, fruitColor)

	v, err := CrossTab(ds, "Color", "Fruit")
	require.NoError(t, err)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "Red", v.Rows[0].Key.Name)
	assert.True(t, v.Rows[0].Cells[0].Flag, "Red relates back to Apple")
}

func TestCrossTab_UnknownClass(t *testing.T) {
	ds := loadText(t, fruitColor)
	_, err := CrossTab(ds, "Fruit", "Shape")
	require.ErrorIs(t, err, dataset.ErrUnknownClass)
}

func TestCrossTab_UndeclaredRelation(t *testing.T) {
	text := `
Fruit, Apple
Color, Red
Shape, Round
Fruit.Apple, Color.Red
`
	ds := loadText(t, text)
	_, err := CrossTab(ds, "Fruit", "Shape")
	require.ErrorIs(t, err, dataset.ErrUnknownRelation)
}

func TestCrossTab_EmptyValClass(t *testing.T) {
	// A class can be declared with no elements; the view must carry zero
	// columns and report Empty rather than failing.
	text := `
Fruit, Apple
Color
Shade, Dark
Fruit.Apple, Shade.Dark
`
	ds := loadText(t, text)
	require.NoError(t, ds.Relations.Declare("Fruit", "Color"))

	v, err := CrossTab(ds, "Fruit", "Color")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Columns)
	assert.True(t, v.Empty())
}
