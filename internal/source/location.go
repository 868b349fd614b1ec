// Package source provides position information carried by diagnostics
// and syntax-tree nodes.
package source

import "fmt"

// Location is a 1-based line/column position in the original source text.
// Line 0 marks a synthetic location (e.g. a missing input tree).
type Location struct {
	Line   int
	Column int
}

// NewLocation creates a location at the given line and column.
func NewLocation(line, column int) *Location {
	return &Location{Line: line, Column: column}
}

func (l *Location) String() string {
	return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
}

// Before reports whether l comes strictly before other in reading order.
func (l *Location) Before(other *Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}
