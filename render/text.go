// Package render holds preview renderers for dense frames. The real
// renderer is an external process; these exist to eyeball an animation
// without one.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matt-g-everett/barrace/race"
)

// Text draws a frame as rows of text bars, one row per visible position.
type Text struct {
	out          io.Writer
	displayCount int
	labelWidth   int
	barWidth     int
}

// NewText creates a Text renderer clipping to displayCount positions.
func NewText(out io.Writer, displayCount int) *Text {
	t := new(Text)
	t.out = out
	t.displayCount = displayCount
	t.labelWidth = 16
	t.barWidth = 40
	return t
}

// Frame writes one frame. Bars are ordered by position and only positions
// inside the visible window are drawn.
func (t *Text) Frame(f *race.Frame) {
	visible := make([]race.FrameEntry, 0, len(f.Entries))
	maxCount := 0.0
	for _, e := range f.Entries {
		if e.Position >= 0 && e.Position < float64(t.displayCount) {
			visible = append(visible, e)
		}
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].Position < visible[j].Position
	})

	fmt.Fprintf(t.out, "== %s ==\n", f.Label)
	for _, e := range visible {
		width := 0
		if maxCount > 0 {
			width = int(math.Round(e.Count / maxCount * float64(t.barWidth)))
		}
		label := runewidth.FillRight(runewidth.Truncate(e.Name, t.labelWidth, "…"), t.labelWidth)
		fmt.Fprintf(t.out, "%s %s %d\n", label, strings.Repeat("█", width), int(math.Round(e.Count)))
	}
}

// Every writes every nth frame of the source, a cheap animation scrub.
func (t *Text) Every(source race.FrameSource, n int) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < source.FrameCount(); i += n {
		t.Frame(source.FrameAt(i))
	}
}
