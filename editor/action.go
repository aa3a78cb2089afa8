package editor

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// Action is a state change request. The concrete types are SetBackground,
// ToggleEditing, EditText and ReplaceImage.
type Action interface {
	action()
}

// SetBackground picks a new background color.
type SetBackground struct {
	Color string
}

// ToggleEditing switches between the display and edit views of the text.
type ToggleEditing struct{}

// EditText is one input event of the text editor. Each event commits its
// text immediately; there is no separate save step.
type EditText struct {
	Text string
}

// ReplaceImage swaps the product image reference.
type ReplaceImage struct {
	Source string
}

func (SetBackground) action() {}
func (ToggleEditing) action() {}
func (EditText) action()      {}
func (ReplaceImage) action()  {}

// Reduce returns the state that results from applying a to s. It never
// modifies s.
//
//   - SetBackground sets the color and appends it to History, dropping the
//     oldest entries beyond HistoryLimit. An empty color is ignored.
//   - ToggleEditing flips Editing.
//   - EditText replaces Text while Editing and is ignored otherwise.
//     Input is normalized to NFC.
//   - ReplaceImage sets Image. An empty source is ignored.
func Reduce(s State, a Action) State {
	s = s.Clone()
	switch a := a.(type) {
	case SetBackground:
		if a.Color == "" {
			return s
		}
		s.Background = a.Color
		s.History = pushHistory(s.History, a.Color)
	case ToggleEditing:
		s.Editing = !s.Editing
	case EditText:
		if s.Editing {
			s.Text = norm.NFC.String(a.Text)
		}
	case ReplaceImage:
		if a.Source != "" {
			s.Image = a.Source
		}
	}
	return s
}

func pushHistory(h []string, color string) []string {
	h = append(h, color)
	if len(h) > HistoryLimit {
		h = slices.Clone(h[len(h)-HistoryLimit:])
	}
	return h
}
