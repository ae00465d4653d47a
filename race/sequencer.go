package race

// A Sequencer drives the interpolator across the whole keyframe sequence,
// exposing the dense frames by index. Interval start positions are chained
// once at construction; after that every FrameAt call is a pure function of
// the index, so frames can be generated out of order or regenerated freely.
type Sequencer struct {
	keyframes         []*Keyframe
	framesPerInterval int
	intervals         []*Interpolator
}

// NewSequencer creates a Sequencer producing framesPerInterval dense frames
// per keyframe.
func NewSequencer(keyframes []*Keyframe, framesPerInterval int) *Sequencer {
	s := new(Sequencer)
	s.keyframes = keyframes
	s.framesPerInterval = framesPerInterval
	s.intervals = make([]*Interpolator, len(keyframes))

	if len(keyframes) == 0 {
		return s
	}

	// Chain each interval's start positions from the previous interval's
	// completed transition, so bars settle exactly on their ranks at
	// every keyframe boundary. The residual hop from the last rendered
	// tick is smaller than the eased step already in flight.
	start := InitialPositions(keyframes[0])
	for i := 0; i < len(keyframes)-1; i++ {
		s.intervals[i] = NewInterpolator(keyframes[i], keyframes[i+1], start)
		start = s.intervals[i].PositionsAt(1.0)
	}

	// The final keyframe holds statically.
	last := len(keyframes) - 1
	s.intervals[last] = NewInterpolator(keyframes[last], keyframes[last], start)

	return s
}

// FrameCount is the total number of dense frames.
func (s *Sequencer) FrameCount() int {
	return len(s.keyframes) * s.framesPerInterval
}

// FrameAt produces the dense frame at global index i. Indexes at or past
// the last keyframe clamp to a static hold of its entries.
func (s *Sequencer) FrameAt(i int) *Frame {
	if len(s.keyframes) == 0 {
		return NewFrame("")
	}

	idx := i / s.framesPerInterval
	if idx >= len(s.keyframes)-1 {
		return s.intervals[len(s.keyframes)-1].FrameAt(0)
	}

	t := float64(i%s.framesPerInterval) / float64(s.framesPerInterval)
	return s.intervals[idx].FrameAt(t)
}
