package race

import (
	"encoding/json"

	"github.com/lucasb-eyer/go-colorful"
)

// FrameEntry is one bar in a dense frame. Count and Position are fractional
// between keyframes.
type FrameEntry struct {
	Name     string
	Count    float64
	Position float64
	Color    colorful.Color
}

// Frame represents the bars to display at one animation tick.
type Frame struct {
	Label   string
	Entries []FrameEntry
}

// NewFrame creates a new Frame instance.
func NewFrame(label string) *Frame {
	f := new(Frame)
	f.Label = label
	return f
}

// Entry returns the frame's entry for name, if a bar is drawn for it.
func (f *Frame) Entry(name string) (FrameEntry, bool) {
	for _, e := range f.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return FrameEntry{}, false
}

type wireEntry struct {
	Name     string  `json:"name"`
	Count    float64 `json:"count"`
	Position float64 `json:"pos"`
	Color    string  `json:"color"`
}

type wireFrame struct {
	Label   string      `json:"label"`
	Entries []wireEntry `json:"bars"`
}

// MarshalJSON converts a Frame into the renderer's wire form, colours as
// hex strings.
func (f *Frame) MarshalJSON() ([]byte, error) {
	w := wireFrame{Label: f.Label, Entries: make([]wireEntry, len(f.Entries))}
	for i, e := range f.Entries {
		w.Entries[i] = wireEntry{
			Name:     e.Name,
			Count:    e.Count,
			Position: e.Position,
			Color:    e.Color.Clamped().Hex(),
		}
	}
	return json.Marshal(w)
}
