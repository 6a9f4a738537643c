// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "github.com/charmbracelet/bubbles/key"

// watchKeyMap defines the key bindings of the watch view.
type watchKeyMap struct {
	Pause key.Binding
	Step  key.Binding // Fetch one prime while paused.
	Quit  key.Binding
}

var defaultWatchKeyMap = watchKeyMap{
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause"),
	),
	Step: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n", "step"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k watchKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Quit}
}
