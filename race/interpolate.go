package race

import (
	"github.com/fogleman/ease"
)

// Ease maps linear progress onto the quarter-sine curve sin(t * 90°): zero
// initial velocity, full velocity at the end, so overtaking bars cross
// smoothly instead of swapping in a straight line.
func Ease(t float64) float64 {
	return ease.OutSine(t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// An Interpolator produces dense frames between two adjacent keyframes.
// start carries each entity's displayed position when the interval began,
// which is the keyframe's rank unless a previous transition was still in
// flight (retargeted bars resume from wherever they sit, never snap back).
type Interpolator struct {
	k0    *Keyframe
	k1    *Keyframe
	start map[string]float64
}

// NewInterpolator creates an Interpolator over one keyframe interval.
func NewInterpolator(k0, k1 *Keyframe, start map[string]float64) *Interpolator {
	ip := new(Interpolator)
	ip.k0 = k0
	ip.k1 = k1
	ip.start = start
	return ip
}

// InitialPositions seeds the first interval: every entity starts exactly on
// its rank.
func InitialPositions(k *Keyframe) map[string]float64 {
	pos := make(map[string]float64, len(k.Entries))
	for _, e := range k.Entries {
		pos[e.Name] = float64(e.Rank)
	}
	return pos
}

// FrameAt produces the intermediate frame at progress t in [0,1). Counts
// interpolate linearly, positions along the eased curve. An entity absent
// from one keyframe counts 0 on that side, so its bar grows from or shrinks
// to nothing. Entities whose interpolated count is 0 get no bar at all but
// keep their place in the watch-list and their colour.
func (ip *Interpolator) FrameAt(t float64) *Frame {
	f := NewFrame(ip.k0.Label)
	eased := Ease(t)

	for _, name := range ip.union() {
		var count0, count1 float64
		e0, in0 := ip.k0.Entry(name)
		e1, in1 := ip.k1.Entry(name)
		if in0 {
			count0 = float64(e0.Count)
		}
		if in1 {
			count1 = float64(e1.Count)
		}

		count := lerp(count0, count1, t)
		if count == 0 {
			continue
		}

		entry := FrameEntry{
			Name:     name,
			Count:    count,
			Position: lerp(ip.startPosition(name), ip.targetPosition(name), eased),
		}
		if in1 {
			entry.Color = e1.Color
		} else {
			entry.Color = e0.Color
		}
		f.Entries = append(f.Entries, entry)
	}

	return f
}

// PositionsAt reports every tracked entity's displayed position at progress
// t, dormant entities included. The sequencer chains intervals with it.
func (ip *Interpolator) PositionsAt(t float64) map[string]float64 {
	eased := Ease(t)
	pos := make(map[string]float64)
	for _, name := range ip.union() {
		pos[name] = lerp(ip.startPosition(name), ip.targetPosition(name), eased)
	}
	return pos
}

// startPosition is where the entity's bar sits as the interval begins. An
// entity never seen before enters from just below the tracked window.
func (ip *Interpolator) startPosition(name string) float64 {
	if p, ok := ip.start[name]; ok {
		return p
	}
	return float64(len(ip.k1.Entries))
}

// targetPosition is the rank the bar is heading for. An entity that left
// the keyframe sequence slides out below the window.
func (ip *Interpolator) targetPosition(name string) float64 {
	if e, ok := ip.k1.Entry(name); ok {
		return float64(e.Rank)
	}
	return float64(len(ip.k1.Entries))
}

// union lists entities present in either keyframe, k1 order first so frames
// come out in current-rank order.
func (ip *Interpolator) union() []string {
	names := make([]string, 0, len(ip.k1.Entries))
	seen := make(map[string]bool, len(ip.k1.Entries))
	for _, e := range ip.k1.Entries {
		names = append(names, e.Name)
		seen[e.Name] = true
	}
	for _, e := range ip.k0.Entries {
		if !seen[e.Name] {
			names = append(names, e.Name)
		}
	}
	return names
}
