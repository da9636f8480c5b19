package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Classifier scores a single row.
type Classifier interface {
	Predict(row Row) (float64, error)
	PredictProba(row Row) ([]float64, error)
	Classes() []float64
}

// Info describes a loaded artifact.
type Info struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	PositiveClass float64   `json:"positive_class"`
	Classes       []float64 `json:"classes"`
	Features      []string  `json:"features"`
	Trees         int       `json:"trees"`
}

// Artifact is a loaded classifier together with its metadata.
type Artifact interface {
	Classifier
	Info() Info
}

// Pipeline is a fitted preprocessor followed by a random forest.
type Pipeline struct {
	Name          string       `json:"name"`
	Version       string       `json:"version"`
	PositiveClass float64      `json:"positive_class"`
	Features      []string     `json:"features"`
	Preprocessor  Preprocessor `json:"preprocessor"`
	Forest        Forest       `json:"forest"`
}

var _ Artifact = (*Pipeline)(nil)

// Decode reads and validates a pipeline document.
func Decode(r io.Reader) (*Pipeline, error) {
	var p Pipeline
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode pipeline: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Pipeline) Validate() error {
	if len(p.Features) == 0 {
		return errors.New("pipeline: no features")
	}
	known := p.Preprocessor.Columns()
	if len(known) != len(p.Features) {
		return fmt.Errorf("pipeline: preprocessor covers %d columns, features list %d", len(known), len(p.Features))
	}
	for _, f := range p.Features {
		if !slices.Contains(known, f) {
			return fmt.Errorf("pipeline: feature %s has no preprocessing step", f)
		}
	}
	if !slices.Contains(p.Forest.Classes, p.PositiveClass) {
		return fmt.Errorf("pipeline: positive class %v not among classes %v", p.PositiveClass, p.Forest.Classes)
	}
	return p.Forest.validate(p.Preprocessor.Width())
}

func (p *Pipeline) Classes() []float64 {
	return slices.Clone(p.Forest.Classes)
}

func (p *Pipeline) PredictProba(row Row) ([]float64, error) {
	if !slices.Equal(row.Columns(), p.Features) {
		return nil, fmt.Errorf("row columns %v do not match fitted features %v", row.Columns(), p.Features)
	}
	x, err := p.Preprocessor.Transform(row)
	if err != nil {
		return nil, err
	}
	return p.Forest.Proba(x)
}

func (p *Pipeline) Predict(row Row) (float64, error) {
	proba, err := p.PredictProba(row)
	if err != nil {
		return 0, err
	}
	return p.Forest.Classes[argmax(proba)], nil
}

// Trees reports the number of estimators in the forest.
func (p *Pipeline) Trees() int {
	return len(p.Forest.Trees)
}

func (p *Pipeline) Info() Info {
	return Info{
		Name:          p.Name,
		Version:       p.Version,
		PositiveClass: p.PositiveClass,
		Classes:       p.Classes(),
		Features:      slices.Clone(p.Features),
		Trees:         p.Trees(),
	}
}
