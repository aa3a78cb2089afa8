package editor

import "slices"

// HistoryLimit is the number of recent background colors kept.
const HistoryLimit = 5

// Initial editor values.
const (
	DefaultBackground = "#f7df1e"
	DefaultText       = "Treat yourself to a divine Blueberry Cake - INR 900.00!"
	DefaultImage      = "https://www.homecookingadventure.com/wp-content/uploads/2023/05/Poppy-Seed-Blueberry-Cake-main2.webp"
)

// State is the editable content of a creative.
type State struct {
	// Background is the background fill color.
	Background string

	// Text is the single line shown by the text layer.
	Text string

	// Image is the product image reference.
	Image string

	// History holds the most recent background colors, oldest first.
	// It never exceeds HistoryLimit entries and may contain duplicates.
	History []string

	// Editing reports whether the text is in edit mode.
	Editing bool
}

// DefaultState returns the initial state of a new editor session.
func DefaultState() State {
	return State{
		Background: DefaultBackground,
		Text:       DefaultText,
		Image:      DefaultImage,
	}
}

// Clone returns a copy of s that shares no memory with it.
func (s State) Clone() State {
	s.History = slices.Clone(s.History)
	return s
}
