package race

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStream(t *testing.T) {
	input := strings.Join([]string{
		"10 15",
		"2021-01-01 alice 3 bob 1",
		"",
		"2021-01-02 alice 5 bob 4 carol 2",
	}, "\n")

	s, err := ReadStream(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 10, s.DisplayCount)
	assert.Equal(t, 15, s.TrackedCount)
	require.Len(t, s.Snapshots, 2)

	assert.Equal(t, "2021-01-01", s.Snapshots[0].Label)
	assert.Equal(t, []SnapshotEntry{
		{Name: "alice", Count: 3},
		{Name: "bob", Count: 1},
	}, s.Snapshots[0].Entries)

	assert.Equal(t, int64(2), s.Snapshots[1].Count("carol"))
	assert.Equal(t, int64(0), s.Snapshots[1].Count("nobody"))
}

func TestReadStreamHeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty stream", input: ""},
		{name: "one field", input: "10\n"},
		{name: "non-numeric", input: "ten 15\n"},
		{name: "tracked below display", input: "10 8\n"},
		{name: "zero display", input: "0 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadStream(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadStreamMalformedSnapshot(t *testing.T) {
	tests := []struct {
		name  string
		input string
		label string
	}{
		{
			name:  "odd pair count",
			input: "2 3\n2021-01-01 alice 3 bob\n",
			label: "2021-01-01",
		},
		{
			name:  "non-numeric count",
			input: "2 3\n2021-01-01 alice 3\n2021-01-02 alice many\n",
			label: "2021-01-02",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadStream(strings.NewReader(tt.input))
			require.Error(t, err)

			var malformed *MalformedSnapshotError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.label, malformed.Label)
		})
	}
}
