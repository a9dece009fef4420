package source

import (
	"fmt"
)

// Location is a 0-indexed position inside a module file.
type Location struct {
	Line uint32
	Col  uint32
}

// NewLocation builds a Location from 0-indexed line and column.
func NewLocation(line, col uint32) Location {
	return Location{Line: line, Col: col}
}

// Compare orders locations by line, then by column.
func (l Location) Compare(other Location) int {
	switch {
	case l.Line < other.Line:
		return -1
	case l.Line > other.Line:
		return 1
	case l.Col < other.Col:
		return -1
	case l.Col > other.Col:
		return 1
	}
	return 0
}

func (l Location) Less(other Location) bool {
	return l.Compare(other) < 0
}

// String renders the location 1-based, the way editors count.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Col+1)
}

func minLocation(a, b Location) Location {
	if b.Less(a) {
		return b
	}
	return a
}

func maxLocation(a, b Location) Location {
	if a.Less(b) {
		return b
	}
	return a
}

// Range is a half-open interval of locations.
type Range struct {
	Start Location // включительно
	End   Location // не включительно
}

// NewRange builds a range on a single line covering [startCol, endCol).
func NewRange(line, startCol, endCol uint32) Range {
	return Range{
		Start: Location{Line: line, Col: startCol},
		End:   Location{Line: line, Col: endCol},
	}
}

// RangeAt converts a single location into a one column range.
func RangeAt(l Location) Range {
	return Range{
		Start: l,
		End:   Location{Line: l.Line, Col: l.Col + 1},
	}
}

// Union returns the smallest range covering both r and other.
func (r Range) Union(other Range) Range {
	return Range{
		Start: minLocation(r.Start, other.Start),
		End:   maxLocation(r.End, other.End),
	}
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

// Contains reports whether l falls inside the half-open range.
func (r Range) Contains(l Location) bool {
	return !l.Less(r.Start) && l.Less(r.End)
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
