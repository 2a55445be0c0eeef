// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyPress(t *testing.T, m inputModel, key tea.KeyType) inputModel {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: key})
	res, ok := updated.(inputModel)
	require.True(t, ok, "unexpected model type %T", updated)
	return res
}

func TestInputModel_CtrlCMarksReadInterrupted(t *testing.T) {
	ti := textinput.New()
	ti.SetValue("Fruit v Col")
	m := inputModel{textInput: ti}

	res := keyPress(t, m, tea.KeyCtrlC)
	assert.True(t, res.done)
	assert.True(t, res.interrupted)
	assert.False(t, res.cancelled)
	assert.Empty(t, res.textInput.Value())
}

func TestInputModel_CtrlDMarksEndOfInput(t *testing.T) {
	m := inputModel{textInput: textinput.New()}

	res := keyPress(t, m, tea.KeyCtrlD)
	assert.True(t, res.done)
	assert.True(t, res.cancelled)
	assert.False(t, res.interrupted)
}

func TestInputModel_HistoryNavigation(t *testing.T) {
	m := inputModel{
		textInput:    textinput.New(),
		history:      []string{"classes", "relations"},
		historyIndex: -1,
	}

	res := keyPress(t, m, tea.KeyUp)
	assert.Equal(t, "relations", res.textInput.Value())

	res = keyPress(t, res, tea.KeyUp)
	assert.Equal(t, "classes", res.textInput.Value())

	// Down walks back toward the (empty) in-progress input.
	res = keyPress(t, res, tea.KeyDown)
	assert.Equal(t, "relations", res.textInput.Value())
	res = keyPress(t, res, tea.KeyDown)
	assert.Equal(t, "", res.textInput.Value())
}
