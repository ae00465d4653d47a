package race

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Entry is one tracked entity inside a Keyframe.
type Entry struct {
	Name  string
	Count int64
	Rank  int
	Color colorful.Color
}

// A Keyframe holds the ranked, coloured entries for every watch-listed
// entity at one sampled instant. Ranks are a dense permutation of 0..n-1.
type Keyframe struct {
	Label   string
	Entries []Entry
}

// Entry returns the keyframe's entry for name, if the entity is tracked.
func (k *Keyframe) Entry(name string) (Entry, bool) {
	for _, e := range k.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// A KeyframeBuilder turns raw snapshots into Keyframes. It maintains the
// watch-list: every entity that ever ranks inside the top
// displayCount+buffer joins permanently, so its count history is available
// whenever it could slide into or out of view.
type KeyframeBuilder struct {
	displayCount int
	buffer       int
	allocator    *ColorAllocator
	watched      []string // admission order, the tie-break for watch-list ranking
	watchedSet   map[string]bool
}

// NewKeyframeBuilder creates a KeyframeBuilder tracking displayCount+buffer
// entities, colouring them from pool.
func NewKeyframeBuilder(displayCount, buffer int, pool []colorful.Color) *KeyframeBuilder {
	b := new(KeyframeBuilder)
	b.displayCount = displayCount
	b.buffer = buffer
	b.allocator = NewColorAllocator(pool)
	b.watchedSet = make(map[string]bool)
	return b
}

// TrackedCount is the number of entities the builder retains per keyframe.
func (b *KeyframeBuilder) TrackedCount() int {
	return b.displayCount + b.buffer
}

// Build converts the snapshot sequence into keyframes. It fails on the first
// snapshot that exhausts the colour pool.
func (b *KeyframeBuilder) Build(snapshots []*Snapshot) ([]*Keyframe, error) {
	keyframes := make([]*Keyframe, 0, len(snapshots))
	for _, snap := range snapshots {
		k, err := b.Append(snap)
		if err != nil {
			return nil, fmt.Errorf("keyframe %q: %w", snap.Label, err)
		}
		keyframes = append(keyframes, k)
	}
	return keyframes, nil
}

// Append consumes one snapshot and emits its keyframe.
func (b *KeyframeBuilder) Append(snap *Snapshot) (*Keyframe, error) {
	b.admit(snap)

	// Rank over the watch-list, not the raw snapshot, so every keyframe's
	// ranks are dense even when a watched entity is absent (count 0).
	watched := make([]SnapshotEntry, len(b.watched))
	for i, name := range b.watched {
		watched[i] = SnapshotEntry{Name: name, Count: snap.Count(name)}
	}
	ranks := Ranks(watched)

	for _, name := range b.watched {
		b.allocator.Request(name)
	}
	if err := b.allocator.Finalize(); err != nil {
		return nil, err
	}

	k := &Keyframe{Label: snap.Label}
	k.Entries = make([]Entry, 0, len(watched))
	for _, w := range watched {
		color, _ := b.allocator.Color(w.Name)
		k.Entries = append(k.Entries, Entry{
			Name:  w.Name,
			Count: w.Count,
			Rank:  ranks[w.Name],
			Color: color,
		})
	}
	sort.Slice(k.Entries, func(i, j int) bool {
		return k.Entries[i].Rank < k.Entries[j].Rank
	})

	return k, nil
}

// admit adds every entity ranked inside the tracked window to the
// watch-list. Admission is permanent.
func (b *KeyframeBuilder) admit(snap *Snapshot) {
	ranks := Ranks(snap.Entries)
	for _, e := range snap.Entries {
		if ranks[e.Name] < b.TrackedCount() && !b.watchedSet[e.Name] {
			b.watchedSet[e.Name] = true
			b.watched = append(b.watched, e.Name)
		}
	}
}
