package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"falcon9/internal/launch"
)

type predictFlags struct {
	payloadMass float64
	orbit       string
	site        string
	gridFins    bool
	reused      bool
	legs        bool
	block       string
	reusedCount int
	year        int
	month       int
}

type predictOutput struct {
	Success      bool    `json:"success"`
	Verdict      string  `json:"verdict"`
	Probability  float64 `json:"probability"`
	Percent      string  `json:"percent"`
	Band         string  `json:"band"`
	ModelName    string  `json:"model_name"`
	ModelVersion string  `json:"model_version"`
}

func newPredictCmd(g *globalFlags) *cobra.Command {
	pf := &predictFlags{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the landing outcome for one launch",
		Example: "  falcon9 predict --payload-mass 6104.96 --orbit GTO --site \"KSC LC 39A\" \\\n" +
			"    --grid-fins --reused --legs --block 5.0 --reused-count 2 --year 2020 --month 6",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPredict(cmd, g, pf)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&pf.payloadMass, "payload-mass", 0, "Payload mass in kg (required)")
	f.StringVar(&pf.orbit, "orbit", "", "Target orbit, e.g. LEO, GTO, ISS (required)")
	f.StringVar(&pf.site, "site", "", "Launch site, e.g. \"KSC LC 39A\" (required)")
	f.BoolVar(&pf.gridFins, "grid-fins", false, "Grid fins fitted (required)")
	f.BoolVar(&pf.reused, "reused", false, "First stage previously flown (required)")
	f.BoolVar(&pf.legs, "legs", false, "Landing legs fitted (required)")
	f.StringVar(&pf.block, "block", "", "Booster block version 1.0-5.0 (required)")
	f.IntVar(&pf.reusedCount, "reused-count", 0, "Prior flights of this core (required)")
	f.IntVar(&pf.year, "year", 0, "Launch year (required)")
	f.IntVar(&pf.month, "month", 0, "Launch month 1-12 (required)")

	for _, name := range []string{
		"payload-mass", "orbit", "site", "grid-fins", "reused", "legs",
		"block", "reused-count", "year", "month",
	} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (pf *predictFlags) input() launch.Input {
	block := launch.BlockInput(pf.block)
	return launch.Input{
		PayloadMass: &pf.payloadMass,
		Orbit:       &pf.orbit,
		LaunchSite:  &pf.site,
		GridFins:    &pf.gridFins,
		Reused:      &pf.reused,
		Legs:        &pf.legs,
		Block:       &block,
		ReusedCount: &pf.reusedCount,
		Year:        &pf.year,
		Month:       &pf.month,
	}
}

func runPredict(cmd *cobra.Command, g *globalFlags, pf *predictFlags) error {
	e, err := setup(g)
	if err != nil {
		return err
	}
	defer e.log.Sync()

	ctx := cmd.Context()
	svc, _, err := e.service(ctx)
	if err != nil {
		return err
	}
	params, err := pf.input().Parameters()
	if err != nil {
		return err
	}
	res, err := svc.Predict(ctx, params)
	if err != nil {
		return err
	}

	out := predictOutput{
		Success:      res.Success,
		Verdict:      res.Verdict(),
		Probability:  res.Probability,
		Percent:      res.Percent(),
		Band:         string(res.Band),
		ModelName:    res.ModelName,
		ModelVersion: res.ModelVersion,
	}
	return write(cmd.OutOrStdout(), e.format, out, []row{
		{"Landing", out.Verdict},
		{"Probability", fmt.Sprintf("%s (%s confidence)", out.Percent, out.Band)},
		{"Model", fmt.Sprintf("%s %s", out.ModelName, out.ModelVersion)},
	})
}
