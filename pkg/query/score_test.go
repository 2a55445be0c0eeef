// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package query

import (
	"testing"

	"github.com/AleutianAI/crosstab/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_SimilarityFruitExample(t *testing.T) {
	ds := loadText(t, fruitColor)

	// Reference Apple: refHas(Red)=true, refHas(Green)=false.
	// Apple matches itself on both columns -> 2.
	// Pear: Red mismatch, Green match -> 1.
	v, err := Score(ds, "Fruit", "Color", "Apple", ScoreOptions{})
	require.NoError(t, err)
	require.Len(t, v.Rows, 2)

	assert.Equal(t, "Apple", v.Rows[0].Key.Name)
	assert.Equal(t, 2, v.Rows[0].Score)
	assert.True(t, v.Rows[0].Scored)

	assert.Equal(t, "Pear", v.Rows[1].Key.Name)
	assert.Equal(t, 1, v.Rows[1].Score)
}

func TestScore_DissimilarityInvertsPoints(t *testing.T) {
	ds := loadText(t, fruitColor)

	v, err := Score(ds, "Fruit", "Color", "Apple", ScoreOptions{Dissimilarity: true})
	require.NoError(t, err)

	// Dissimilarity scores disagreements: Pear disagrees on Red only.
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "Pear", v.Rows[0].Key.Name)
	assert.Equal(t, 1, v.Rows[0].Score)
	assert.Equal(t, "Apple", v.Rows[1].Key.Name)
	assert.Equal(t, 0, v.Rows[1].Score, "nothing disagrees with itself")
}

func TestScore_MembershipDisplayShowsRawFlags(t *testing.T) {
	ds := loadText(t, fruitColor)

	v, err := Score(ds, "Fruit", "Color", "Apple", ScoreOptions{})
	require.NoError(t, err)

	apple := v.Rows[0]
	assert.True(t, apple.Cells[0].Flag, "Apple-Red membership")
	assert.False(t, apple.Cells[1].Flag)
}

func TestScore_EqualityDisplay(t *testing.T) {
	ds := loadText(t, fruitColor)

	v, err := Score(ds, "Fruit", "Color", "Apple", ScoreOptions{ShowEquality: true})
	require.NoError(t, err)

	// Against itself every column agrees.
	apple := v.Rows[0]
	assert.True(t, apple.Cells[0].Flag)
	assert.True(t, apple.Cells[1].Flag)

	// Pear agrees on Green only.
	pear := v.Rows[1]
	assert.False(t, pear.Cells[0].Flag)
	assert.True(t, pear.Cells[1].Flag)
}

func TestScore_EqualityDisplayXorDissimilarity(t *testing.T) {
	ds := loadText(t, fruitColor)

	v, err := Score(ds, "Fruit", "Color", "Apple",
		ScoreOptions{Dissimilarity: true, ShowEquality: true})
	require.NoError(t, err)

	// A set flag now reads "differs from reference". Pear differs on Red.
	pear := v.Rows[0]
	require.Equal(t, "Pear", pear.Key.Name)
	assert.True(t, pear.Cells[0].Flag)
	assert.False(t, pear.Cells[1].Flag)
}

func TestScore_TiesKeepInsertionOrder(t *testing.T) {
	// Ash, Beech, Cedar all have an empty profile; Oak is the reference
	// with one relation. The three zero-diff rows tie at full similarity
	// minus one and must keep declaration order.
	text := `
Tree, Oak, Ash, Beech, Cedar
Soil, Clay, Sand
Tree.Oak, Soil.Clay
`
	ds := loadText(t, text)

	v, err := Score(ds, "Tree", "Soil", "Oak", ScoreOptions{})
	require.NoError(t, err)

	names := make([]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		names = append(names, r.Key.Name)
	}
	assert.Equal(t, []string{"Oak", "Ash", "Beech", "Cedar"}, names)
	assert.Equal(t, 2, v.Rows[0].Score)
	for _, r := range v.Rows[1:] {
		assert.Equal(t, 1, r.Score)
	}
}

// Sum of per-row points must equal the count of columns where the row and
// reference profiles agree (similarity) or its complement (dissimilarity).
func TestScore_PointSumProperty(t *testing.T) {
	text := `
Dish, Soup, Stew, Salad
Season, Spring, Summer, Autumn, Winter
Dish.Soup, Season.Winter
Dish.Soup, Season.Autumn
Dish.Salad, Season.Summer
Dish.Stew, Season.Winter
`
	ds := loadText(t, text)

	sim, err := Score(ds, "Dish", "Season", "Soup", ScoreOptions{})
	require.NoError(t, err)
	dis, err := Score(ds, "Dish", "Season", "Soup", ScoreOptions{Dissimilarity: true})
	require.NoError(t, err)

	simByName := map[string]int{}
	for _, r := range sim.Rows {
		simByName[r.Key.Name] = r.Score
	}
	for _, r := range dis.Rows {
		assert.Equal(t, sim.Columns, simByName[r.Key.Name]+r.Score,
			"similarity and dissimilarity scores are complements for %s", r.Key.Name)
	}

	for _, r := range sim.Rows {
		agree := 0
		for _, b := range []string{"Spring", "Summer", "Autumn", "Winter"} {
			aHasB := ds.Relations.Related("Dish", "Season", r.Key.Name, b)
			refHasB := ds.Relations.Related("Dish", "Season", "Soup", b)
			if aHasB == refHasB {
				agree++
			}
		}
		assert.Equal(t, agree, r.Score, "row %s", r.Key.Name)
	}
}

func TestScore_UnknownReference(t *testing.T) {
	ds := loadText(t, fruitColor)
	_, err := Score(ds, "Fruit", "Color", "Mango", ScoreOptions{})
	require.ErrorIs(t, err, dataset.ErrUnknownSymbol)
}
