package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	var s Sequence
	assert.Equal(t, 0, s.Last())
	assert.Equal(t, 1, s.Next())
	assert.Equal(t, 2, s.Next())
	assert.Equal(t, 2, s.Last())
}

func TestNewSequence(t *testing.T) {
	s := NewSequence(10)
	assert.Equal(t, 10, s.Next())
	assert.Equal(t, 11, s.Next())
}

func TestFormatParseEntryID(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "1"},
		{42, "42"},
		{1234, "1234"},
	}
	for _, tt := range tests {
		got := FormatEntryID(tt.id)
		assert.Equal(t, tt.want, got)

		back, err := ParseEntryID(got)
		require.NoError(t, err)
		assert.Equal(t, tt.id, back)
	}
}

func TestParseEntryID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"abc",
		"0",
		"-3",
		"2025-01-001",
	}
	for _, input := range badInputs {
		_, err := ParseEntryID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}
