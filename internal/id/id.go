package id

import (
	"fmt"
	"strconv"
)

// Sequence hands out entry-group ids 1, 2, 3, ... in call order.
// The zero value is ready to use.
type Sequence struct {
	last int
}

// NewSequence returns a Sequence whose next id is start.
func NewSequence(start int) *Sequence {
	return &Sequence{last: start - 1}
}

// Next returns the next id.
func (s *Sequence) Next() int {
	s.last++
	return s.last
}

// Last returns the most recently issued id, or 0 if none was issued.
func (s *Sequence) Last() int {
	return s.last
}

// FormatEntryID returns the CSV form of an entry-group id.
func FormatEntryID(entryID int) string {
	return strconv.Itoa(entryID)
}

// ParseEntryID parses an entry-group id; ids start at 1.
func ParseEntryID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid entry ID %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid entry ID %q: must be positive", s)
	}
	return n, nil
}
