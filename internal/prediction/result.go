package prediction

import "github.com/shopspring/decimal"

// Band buckets a success probability for display.
type Band string

const (
	BandHigh     Band = "high"
	BandModerate Band = "moderate"
	BandLow      Band = "low"
)

func BandFor(probability float64) Band {
	switch {
	case probability > 80:
		return BandHigh
	case probability > 50:
		return BandModerate
	default:
		return BandLow
	}
}

// Result is the outcome of one prediction. It is never mutated after Predict
// returns it.
type Result struct {
	Success      bool    `json:"success"`
	Probability  float64 `json:"probability"`
	Label        float64 `json:"label"`
	Band         Band    `json:"band"`
	ModelName    string  `json:"model_name"`
	ModelVersion string  `json:"model_version"`
}

// Percent renders the probability with one decimal place, e.g. "87.0%".
func (r Result) Percent() string {
	return decimal.NewFromFloat(r.Probability).StringFixed(1) + "%"
}

func (r Result) Verdict() string {
	if r.Success {
		return "successful"
	}
	return "unsuccessful"
}
