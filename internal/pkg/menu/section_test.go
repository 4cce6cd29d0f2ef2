package menu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sectionWith(n int) *Section {
	s := NewSection()
	for i := 0; i < n; i++ {
		s.Add(NewContinuous(fmt.Sprintf("p%d", i), i, float64(i), 1))
	}
	return s
}

func TestSectionNavigationWraps(t *testing.T) {
	for _, tc := range []struct {
		name     string
		size     int
		moves    []string
		expected int
	}{
		{name: "next", size: 3, moves: []string{"next"}, expected: 1},
		{name: "next wraps at end", size: 3, moves: []string{"next", "next", "next"}, expected: 0},
		{name: "prev wraps at start", size: 3, moves: []string{"prev"}, expected: 2},
		{name: "prev after wrap", size: 3, moves: []string{"prev", "prev"}, expected: 1},
		{name: "single item stays put", size: 1, moves: []string{"next", "prev", "next"}, expected: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := sectionWith(tc.size)
			for _, m := range tc.moves {
				if m == "next" {
					s.Next()
				} else {
					s.Prev()
				}
			}
			assert.Equal(t, tc.expected, s.Index())
		})
	}
}

func TestSectionIndexStaysInRange(t *testing.T) {
	s := sectionWith(4)
	for i := 0; i < 50; i++ {
		if i%3 == 0 {
			s.Prev()
		} else {
			s.Next()
		}
		assert.GreaterOrEqual(t, s.Index(), 0)
		assert.Less(t, s.Index(), s.Len())
	}
}

func TestSectionCapacityOverflowDroppedSilently(t *testing.T) {
	s := NewSection()
	for i := 0; i < 12; i++ {
		s.Add(NewContinuous(fmt.Sprintf("p%d", i), i, float64(i), 1))
	}

	assert.Equal(t, Capacity, s.Len())

	// existing parameters are untouched by rejected adds
	for i := 0; i < Capacity; i++ {
		s.Next()
	}
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, "p0", s.Current().Name())
}

func TestSectionAt(t *testing.T) {
	s := sectionWith(3)
	assert.Equal(t, "p0", s.At(0).Name())
	assert.Equal(t, "p2", s.At(2).Name())
	assert.Equal(t, "", s.At(3).Name())
	assert.Equal(t, "", s.At(-1).Name())
}

func TestEmptySection(t *testing.T) {
	s := NewSection()

	s.Next()
	s.Prev()
	assert.Equal(t, 0, s.Index())

	p := s.Current()
	assert.Equal(t, "", p.Name())
	assert.Equal(t, float64(0), p.Value())

	// placeholder is shared, not allocated per call
	assert.Equal(t, true, s.Current() == p)
}
