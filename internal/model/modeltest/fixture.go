// Package modeltest provides a small fitted pipeline for tests.
package modeltest

import "falcon9/internal/model"

// Column layout of the transformed vector produced by Pipeline's preprocessor.
const (
	ColPayloadMass = 0
	ColYear        = 3
	ColGridFins    = 17
	ColLegs        = 19
)

// Pipeline returns a three-tree forest over the ten launch columns.
//
// For the reference launch (5000 kg, LEO, CCAFS SLC 40, fins, reused, legs,
// block 5, 2 reuses, 2023-06) the positive probability is (0.9+0.9+0.95)/3.
// Without fins and legs in 2012 it is (0.1+0.2+0.4)/3.
func Pipeline() *model.Pipeline {
	return &model.Pipeline{
		Name:          "falcon9_landing_model",
		Version:       "test",
		PositiveClass: 1,
		Features: []string{
			"PayloadMass", "Orbit", "LaunchSite", "GridFins", "Reused",
			"Legs", "Block", "ReusedCount", "Year", "Month",
		},
		Preprocessor: model.Preprocessor{
			Numeric: []model.NumericColumn{
				{Column: "PayloadMass", Median: 4400, Mean: 5200, Scale: 4200},
				{Column: "Block", Median: 5, Mean: 3.5, Scale: 1.5},
				{Column: "ReusedCount", Median: 1, Mean: 1.6, Scale: 2.1},
				{Column: "Year", Median: 2019, Mean: 2018.5, Scale: 2.5},
				{Column: "Month", Median: 6, Mean: 6.4, Scale: 3.4},
			},
			Categorical: []model.CategoricalColumn{
				{Column: "Orbit", MostFrequent: "GTO", Categories: []string{"GTO", "HEO", "ISS", "LEO", "MEO", "PO", "SSO", "VLEO"}},
				{Column: "LaunchSite", MostFrequent: "CCAFS SLC 40", Categories: []string{"CCAFS LC 40", "CCAFS SLC 40", "KSC LC 39A", "VAFB SLC 4E"}},
			},
			Boolean: []model.BooleanColumn{
				{Column: "GridFins", MostFrequent: 1},
				{Column: "Reused", MostFrequent: 0},
				{Column: "Legs", MostFrequent: 1},
			},
		},
		Forest: model.Forest{
			Classes: []float64{0, 1},
			Trees: []model.Tree{
				{Nodes: []model.Node{
					{Feature: ColLegs, Threshold: 0.5, Left: 1, Right: 2},
					{Left: -1, Right: -1, Value: []float64{9, 1}},
					{Left: -1, Right: -1, Value: []float64{2, 18}},
				}},
				{Nodes: []model.Node{
					{Feature: ColGridFins, Threshold: 0.5, Left: 1, Right: 2},
					{Left: -1, Right: -1, Value: []float64{8, 2}},
					{Feature: ColPayloadMass, Threshold: 1.5, Left: 3, Right: 4},
					{Left: -1, Right: -1, Value: []float64{1, 9}},
					{Left: -1, Right: -1, Value: []float64{3, 2}},
				}},
				{Nodes: []model.Node{
					{Feature: ColYear, Threshold: -0.9, Left: 1, Right: 2},
					{Left: -1, Right: -1, Value: []float64{6, 4}},
					{Left: -1, Right: -1, Value: []float64{1, 19}},
				}},
			},
		},
	}
}

// ReferenceRow is the reference launch in fitted column order.
func ReferenceRow() model.Row {
	return model.Row{
		model.Number("PayloadMass", 5000),
		model.Text("Orbit", "LEO"),
		model.Text("LaunchSite", "CCAFS SLC 40"),
		model.Bool("GridFins", true),
		model.Bool("Reused", true),
		model.Bool("Legs", true),
		model.Number("Block", 5),
		model.Number("ReusedCount", 2),
		model.Number("Year", 2023),
		model.Number("Month", 6),
	}
}
