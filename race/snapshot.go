package race

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SnapshotEntry is one (name, count) pair inside a snapshot. Order matters:
// it is the tie-break order for ranking.
type SnapshotEntry struct {
	Name  string
	Count int64
}

// Snapshot is a labelled set of cumulative counts sampled at one instant.
type Snapshot struct {
	Label   string
	Entries []SnapshotEntry
}

// Count returns the count for name, or 0 if the entity is absent from
// this snapshot.
func (s *Snapshot) Count(name string) int64 {
	for _, e := range s.Entries {
		if e.Name == name {
			return e.Count
		}
	}
	return 0
}

// MalformedSnapshotError reports a snapshot line that could not be parsed
// into (name, count) pairs.
type MalformedSnapshotError struct {
	Label  string
	Reason string
}

func (e *MalformedSnapshotError) Error() string {
	return fmt.Sprintf("malformed snapshot %q: %s", e.Label, e.Reason)
}

// Stream is a parsed snapshot stream: the header parameters followed by the
// snapshots in sample order.
type Stream struct {
	DisplayCount int
	TrackedCount int
	Snapshots    []*Snapshot
}

// ReadStream parses a snapshot stream. The first line carries two integers,
// display_count and tracked_count. Every following line is a label followed
// by alternating name and count fields, whitespace-separated.
func ReadStream(r io.Reader) (*Stream, error) {
	s := new(Stream)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("snapshot stream is empty")
	}

	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return nil, fmt.Errorf("stream header: want 2 integers, got %d fields", len(header))
	}
	var err error
	if s.DisplayCount, err = strconv.Atoi(header[0]); err != nil {
		return nil, fmt.Errorf("stream header display count: %w", err)
	}
	if s.TrackedCount, err = strconv.Atoi(header[1]); err != nil {
		return nil, fmt.Errorf("stream header tracked count: %w", err)
	}
	if s.DisplayCount < 1 || s.TrackedCount < s.DisplayCount {
		return nil, fmt.Errorf("stream header: display %d, tracked %d out of range",
			s.DisplayCount, s.TrackedCount)
	}

	for scanner.Scan() {
		line := strings.Fields(scanner.Text())
		if len(line) == 0 {
			continue
		}

		snap, err := parseSnapshot(line)
		if err != nil {
			return nil, err
		}
		s.Snapshots = append(s.Snapshots, snap)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return s, nil
}

func parseSnapshot(line []string) (*Snapshot, error) {
	snap := &Snapshot{Label: line[0]}
	rest := line[1:]
	if len(rest)%2 != 0 {
		return nil, &MalformedSnapshotError{
			Label:  snap.Label,
			Reason: fmt.Sprintf("odd field count %d, want (name, count) pairs", len(rest)),
		}
	}

	for i := 0; i < len(rest); i += 2 {
		count, err := strconv.ParseInt(rest[i+1], 10, 64)
		if err != nil {
			return nil, &MalformedSnapshotError{
				Label:  snap.Label,
				Reason: fmt.Sprintf("count for %q is not an integer: %q", rest[i], rest[i+1]),
			}
		}
		snap.Entries = append(snap.Entries, SnapshotEntry{Name: rest[i], Count: count})
	}

	return snap, nil
}
