package prediction

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"falcon9/internal/launch"
	"falcon9/internal/model"
)

// ModelSource yields the loaded artifact, if any.
type ModelSource interface {
	Current() (model.Artifact, bool)
}

type staticSource struct {
	a model.Artifact
}

func (s staticSource) Current() (model.Artifact, bool) {
	return s.a, s.a != nil
}

// Static wraps an already loaded artifact.
func Static(a model.Artifact) ModelSource {
	return staticSource{a: a}
}

// Service scores launch parameters against the loaded artifact. It holds no
// mutable state and is safe for concurrent use.
type Service struct {
	Source ModelSource
	Logger *zap.Logger
}

// FeatureRow lays the parameters out in the column order the artifact was
// fitted on.
func FeatureRow(p launch.Parameters) model.Row {
	return model.Row{
		model.Number("PayloadMass", p.PayloadMass),
		model.Text("Orbit", string(p.Orbit)),
		model.Text("LaunchSite", string(p.LaunchSite)),
		model.Bool("GridFins", p.GridFins),
		model.Bool("Reused", p.Reused),
		model.Bool("Legs", p.Legs),
		model.Number("Block", float64(p.Block)),
		model.Number("ReusedCount", float64(p.ReusedCount)),
		model.Number("Year", float64(p.Year)),
		model.Number("Month", float64(p.Month)),
	}
}

func (s *Service) current() (model.Artifact, error) {
	if s == nil || s.Source == nil {
		return nil, ErrModelUnavailable
	}
	a, ok := s.Source.Current()
	if !ok || a == nil {
		return nil, ErrModelUnavailable
	}
	return a, nil
}

// Predict returns the landing outcome and its success probability in percent.
func (s *Service) Predict(ctx context.Context, p launch.Parameters) (Result, error) {
	a, err := s.current()
	if err != nil {
		return Result{}, err
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, &InferenceError{Stage: "context", Err: err}
	}

	res, err := infer(a, FeatureRow(p))
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("prediction failed", zap.Error(err))
		}
		return Result{}, err
	}
	if s.Logger != nil {
		s.Logger.Debug("prediction",
			zap.Float64("payload_mass", p.PayloadMass),
			zap.String("orbit", string(p.Orbit)),
			zap.String("launch_site", string(p.LaunchSite)),
			zap.Bool("success", res.Success),
			zap.Float64("probability", res.Probability),
		)
	}
	return res, nil
}

func infer(a model.Artifact, row model.Row) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, &InferenceError{Stage: "panic", Err: fmt.Errorf("%v", r)}
		}
	}()

	info := a.Info()
	classes := a.Classes()
	pos := -1
	for i, c := range classes {
		if c == info.PositiveClass {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Result{}, &InferenceError{Stage: "classes", Err: fmt.Errorf("positive class %v not in %v", info.PositiveClass, classes)}
	}

	label, err := a.Predict(row)
	if err != nil {
		return Result{}, &InferenceError{Stage: "predict", Err: err}
	}
	proba, err := a.PredictProba(row)
	if err != nil {
		return Result{}, &InferenceError{Stage: "predict_proba", Err: err}
	}
	if len(proba) != len(classes) {
		return Result{}, &InferenceError{Stage: "predict_proba", Err: fmt.Errorf("got %d probabilities for %d classes", len(proba), len(classes))}
	}
	pp := proba[pos]
	if math.IsNaN(pp) || pp < 0 || pp > 1 {
		return Result{}, &InferenceError{Stage: "predict_proba", Err: fmt.Errorf("probability %v outside [0,1]", pp)}
	}

	pct := pp * 100
	return Result{
		Success:      label == info.PositiveClass,
		Probability:  pct,
		Label:        label,
		Band:         BandFor(pct),
		ModelName:    info.Name,
		ModelVersion: info.Version,
	}, nil
}

// ModelInfo describes the loaded artifact.
func (s *Service) ModelInfo() (model.Info, error) {
	a, err := s.current()
	if err != nil {
		return model.Info{}, err
	}
	return a.Info(), nil
}

// Ready reports whether an artifact is loaded.
func (s *Service) Ready() bool {
	_, err := s.current()
	return err == nil
}

// Options lists the accepted values of the enumerated launch fields.
func (s *Service) Options() launch.Domains {
	return launch.AcceptedDomains()
}

// Classify maps err to one of the three error classes, or "" when err is
// not a prediction error.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInferenceFailure):
		return "inference_failure"
	default:
		return ""
	}
}
