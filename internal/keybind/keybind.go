// Package keybind loads an ini-format keybinding file into an ordered
// list of (key-chord, action-sequence) bindings, per section 0's
// note that bindings are "an ordered list of (key-chord,
// Action-sequence) pairs".
package keybind

import (
	"gopkg.in/ini.v1"
)

// Binding pairs a key chord (e.g. "ctrl+q", "space", "Left") with the
// action sequence string it triggers.
type Binding struct {
	Chord    string
	Sequence string
}

// defaultBindings mirrors the vocabulary of single-key navigation and
// view commands a gallery viewer needs out of the box.
var defaultBindings = []Binding{
	{Chord: "space", Sequence: "next_file"},
	{Chord: "backspace", Sequence: "prev_file"},
	{Chord: "Home", Sequence: "first_file"},
	{Chord: "End", Sequence: "last_file"},
	{Chord: "Left", Sequence: "step_left"},
	{Chord: "Right", Sequence: "step_right"},
	{Chord: "Up", Sequence: "step_up"},
	{Chord: "Down", Sequence: "step_down"},
	{Chord: "Page_Up", Sequence: "page_up"},
	{Chord: "Page_Down", Sequence: "page_down"},
	{Chord: "r", Sequence: "rotate_right"},
	{Chord: "R", Sequence: "rotate_left"},
	{Chord: "f", Sequence: "flip_horizontal"},
	{Chord: "F11", Sequence: "fullscreen"},
	{Chord: "Tab", Sequence: "mode"},
	{Chord: "i", Sequence: "info"},
	{Chord: "q", Sequence: "exit"},
	{Chord: "?", Sequence: "help"},
}

// Default returns the built-in keybinding set, in a freshly allocated
// slice so callers may freely mutate it.
func Default() []Binding {
	out := make([]Binding, len(defaultBindings))
	copy(out, defaultBindings)
	return out
}

// Load reads an ini-format keybinding file, where each key is a chord
// and each value is the action sequence it triggers. Keys are merged
// over Default(): a chord present in the file overrides the default
// binding for that chord in place; chords absent from the file keep
// their default binding. The result lists the default chords in their
// built-in order, followed by chords new to the file in file order.
func Load(path string) ([]Binding, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	sec := f.Section("")

	order := Default()
	index := make(map[string]int, len(order))
	for i, b := range order {
		index[b.Chord] = i
	}

	for _, key := range sec.Keys() {
		chord := key.Name()
		seq := key.String()
		if i, ok := index[chord]; ok {
			order[i].Sequence = seq
			continue
		}
		index[chord] = len(order)
		order = append(order, Binding{Chord: chord, Sequence: seq})
	}
	return order, nil
}
