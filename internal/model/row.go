package model

import "math"

type Kind int

const (
	KindNumber Kind = iota
	KindText
)

// Cell is one named input column of a row.
type Cell struct {
	Column string
	Kind   Kind
	Number float64
	Text   string
}

// Row is a single input record, columns in the order the pipeline was fitted on.
type Row []Cell

func Number(column string, v float64) Cell {
	return Cell{Column: column, Kind: KindNumber, Number: v}
}

func Text(column, v string) Cell {
	return Cell{Column: column, Kind: KindText, Text: v}
}

func Bool(column string, v bool) Cell {
	if v {
		return Number(column, 1)
	}
	return Number(column, 0)
}

// Missing marks a numeric column as absent so the preprocessor imputes it.
func Missing(column string) Cell {
	return Number(column, math.NaN())
}

func (r Row) Columns() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Column
	}
	return out
}
