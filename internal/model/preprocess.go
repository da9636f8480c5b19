package model

import (
	"fmt"
	"math"
)

type NumericColumn struct {
	Column string  `json:"column"`
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
	Scale  float64 `json:"scale"`
}

type CategoricalColumn struct {
	Column       string   `json:"column"`
	MostFrequent string   `json:"most_frequent"`
	Categories   []string `json:"categories"`
}

type BooleanColumn struct {
	Column       string  `json:"column"`
	MostFrequent float64 `json:"most_frequent"`
}

// Preprocessor turns a Row into the dense vector the forest was fitted on:
// scaled numerics, then one-hot categoricals, then booleans.
type Preprocessor struct {
	Numeric     []NumericColumn     `json:"numeric"`
	Categorical []CategoricalColumn `json:"categorical"`
	Boolean     []BooleanColumn     `json:"boolean"`
}

func (p *Preprocessor) Width() int {
	n := len(p.Numeric) + len(p.Boolean)
	for _, c := range p.Categorical {
		n += len(c.Categories)
	}
	return n
}

func (p *Preprocessor) Columns() []string {
	var out []string
	for _, c := range p.Numeric {
		out = append(out, c.Column)
	}
	for _, c := range p.Categorical {
		out = append(out, c.Column)
	}
	for _, c := range p.Boolean {
		out = append(out, c.Column)
	}
	return out
}

func (p *Preprocessor) Transform(row Row) ([]float64, error) {
	byName := make(map[string]Cell, len(row))
	for _, c := range row {
		byName[c.Column] = c
	}

	out := make([]float64, 0, p.Width())
	for _, spec := range p.Numeric {
		cell, ok := byName[spec.Column]
		if !ok {
			return nil, fmt.Errorf("column %s: missing from row", spec.Column)
		}
		if cell.Kind != KindNumber {
			return nil, fmt.Errorf("column %s: expected number", spec.Column)
		}
		v := cell.Number
		if math.IsNaN(v) {
			v = spec.Median
		}
		scale := spec.Scale
		if scale == 0 {
			scale = 1
		}
		out = append(out, (v-spec.Mean)/scale)
	}
	for _, spec := range p.Categorical {
		cell, ok := byName[spec.Column]
		if !ok {
			return nil, fmt.Errorf("column %s: missing from row", spec.Column)
		}
		if cell.Kind != KindText {
			return nil, fmt.Errorf("column %s: expected text", spec.Column)
		}
		v := cell.Text
		if v == "" {
			v = spec.MostFrequent
		}
		// unknown categories encode as all zeros
		for _, cat := range spec.Categories {
			if cat == v {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	for _, spec := range p.Boolean {
		cell, ok := byName[spec.Column]
		if !ok {
			return nil, fmt.Errorf("column %s: missing from row", spec.Column)
		}
		if cell.Kind != KindNumber {
			return nil, fmt.Errorf("column %s: expected number", spec.Column)
		}
		v := cell.Number
		if math.IsNaN(v) {
			v = spec.MostFrequent
		}
		out = append(out, v)
	}
	return out, nil
}
