package spreadsheet

import "time"

// CellKind discriminates the value variants a decoded cell can carry.
type CellKind int

const (
	CellAbsent CellKind = iota
	CellNumber
	CellText
	CellTimestamp
)

// Cell is a tagged variant for one decoded spreadsheet cell. Exactly one of
// the value fields is meaningful, selected by Kind.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Time   time.Time
}

func Absent() Cell {
	return Cell{Kind: CellAbsent}
}

func Number(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

func Text(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

func Timestamp(t time.Time) Cell {
	return Cell{Kind: CellTimestamp, Time: t}
}

// IsAbsent reports whether the cell carries no value.
func (c Cell) IsAbsent() bool {
	return c.Kind == CellAbsent
}
