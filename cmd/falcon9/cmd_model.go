package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type modelOutput struct {
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	PositiveClass float64   `json:"positive_class"`
	Classes       []float64 `json:"classes"`
	Features      []string  `json:"features"`
	Trees         int       `json:"trees"`
	Source        string    `json:"source"`
	Path          string    `json:"path"`
}

func newModelCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Show the artifact that would be used and where it was found",
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(g)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			loaded, err := e.loadModel(cmd.Context())
			if err != nil {
				return err
			}
			info := loaded.Pipeline.Info()
			out := modelOutput{
				Name:          info.Name,
				Version:       info.Version,
				PositiveClass: info.PositiveClass,
				Classes:       info.Classes,
				Features:      info.Features,
				Trees:         info.Trees,
				Source:        loaded.Source.Name,
				Path:          loaded.Source.Path,
			}
			return write(cmd.OutOrStdout(), e.format, out, []row{
				{"Name", out.Name},
				{"Version", out.Version},
				{"Trees", fmt.Sprint(out.Trees)},
				{"Features", strings.Join(out.Features, ", ")},
				{"Source", fmt.Sprintf("%s (%s)", out.Source, out.Path)},
			})
		},
	}
}
