package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"falcon9/internal/launch"
)

func newOptionsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List accepted orbits, launch sites, block versions and years",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFormat(g.output)
			if err != nil {
				return err
			}
			d := launch.AcceptedDomains()
			return write(cmd.OutOrStdout(), f, d, []row{
				{"Orbits", strings.Join(d.Orbits, ", ")},
				{"Launch sites", strings.Join(d.Sites, ", ")},
				{"Blocks", strings.Join(d.Blocks, ", ")},
				{"Years", fmt.Sprintf("%d-%d", d.MinYear, d.MaxYear)},
			})
		},
	}
}
