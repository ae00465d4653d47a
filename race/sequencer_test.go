package race

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerFrameCount(t *testing.T) {
	keyframes := buildRace(t)
	s := NewSequencer(keyframes, 15)
	assert.Equal(t, 30, s.FrameCount())
}

func TestSequencerFirstFrameIsFirstKeyframe(t *testing.T) {
	keyframes := buildRace(t)
	s := NewSequencer(keyframes, 10)

	f := s.FrameAt(0)
	for _, e := range keyframes[0].Entries {
		fe, ok := f.Entry(e.Name)
		require.True(t, ok)
		assert.Equal(t, float64(e.Count), fe.Count)
		assert.Equal(t, float64(e.Rank), fe.Position)
	}
}

func TestSequencerOvertakeCrossesSmoothly(t *testing.T) {
	keyframes := buildRace(t)
	fpi := 10
	s := NewSequencer(keyframes, fpi)

	// B overtakes A inside the first interval. Positions must converge,
	// cross and settle without any jump bigger than the in-flight step.
	var prevA, prevB float64
	crossed := false
	for i := 0; i < fpi; i++ {
		f := s.FrameAt(i)
		a, ok := f.Entry("A")
		require.True(t, ok)
		b, ok := f.Entry("B")
		require.True(t, ok)

		if i == 0 {
			assert.Equal(t, 0.0, a.Position)
			assert.Equal(t, 1.0, b.Position)
		} else {
			assert.Less(t, math.Abs(a.Position-prevA), 0.5, "frame %d", i)
			assert.Less(t, math.Abs(b.Position-prevB), 0.5, "frame %d", i)
		}
		if b.Position < a.Position {
			crossed = true
		}
		prevA, prevB = a.Position, b.Position
	}
	assert.True(t, crossed, "B never overtook A")
}

func TestSequencerNoBoundaryDiscontinuity(t *testing.T) {
	keyframes := buildRace(t)
	fpi := 8
	s := NewSequencer(keyframes, fpi)

	// The hop across a keyframe switch is no bigger than the eased step
	// already in flight.
	prev := s.FrameAt(fpi - 2)
	before := s.FrameAt(fpi - 1)
	after := s.FrameAt(fpi)
	for _, e := range after.Entries {
		b, ok := before.Entry(e.Name)
		if !ok {
			continue
		}
		p, ok := prev.Entry(e.Name)
		if !ok {
			continue
		}

		inFlight := math.Abs(b.Position - p.Position)
		hop := math.Abs(e.Position - b.Position)
		assert.LessOrEqual(t, hop, inFlight+1e-9, e.Name)
	}
}

func TestSequencerClampsToStaticHold(t *testing.T) {
	keyframes := buildRace(t)
	fpi := 6
	s := NewSequencer(keyframes, fpi)

	hold := s.FrameAt(fpi)
	for i := fpi; i < s.FrameCount(); i++ {
		f := s.FrameAt(i)
		require.Len(t, f.Entries, len(hold.Entries), "frame %d", i)
		for j, e := range f.Entries {
			assert.Equal(t, hold.Entries[j], e, "frame %d", i)
		}
	}

	// Bars hold the final keyframe's counts, settled exactly on their
	// final ranks.
	for _, e := range keyframes[1].Entries {
		if e.Count == 0 {
			continue
		}
		fe, ok := hold.Entry(e.Name)
		require.True(t, ok)
		assert.Equal(t, float64(e.Count), fe.Count)
		assert.InDelta(t, float64(e.Rank), fe.Position, 1e-9)
	}
}

func TestSequencerFramesArePure(t *testing.T) {
	keyframes := buildRace(t)
	s := NewSequencer(keyframes, 5)

	// Out-of-order and repeated generation yields identical frames.
	indexes := []int{7, 0, 9, 3, 3, 7, 1, 0}
	first := make(map[int]*Frame)
	for _, i := range indexes {
		f := s.FrameAt(i)
		if prev, ok := first[i]; ok {
			assert.Equal(t, prev, f, "frame %d", i)
		} else {
			first[i] = f
		}
	}
}

func TestSequencerSingleKeyframe(t *testing.T) {
	keyframes := buildRace(t)[:1]
	s := NewSequencer(keyframes, 4)

	assert.Equal(t, 4, s.FrameCount())
	for i := 0; i < 4; i++ {
		f := s.FrameAt(i)
		for _, e := range keyframes[0].Entries {
			fe, ok := f.Entry(e.Name)
			require.True(t, ok)
			assert.Equal(t, float64(e.Rank), fe.Position)
		}
	}
}

func TestSequencerEmpty(t *testing.T) {
	s := NewSequencer(nil, 10)
	assert.Equal(t, 0, s.FrameCount())
	assert.Empty(t, s.FrameAt(0).Entries)
}
