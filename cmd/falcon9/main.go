package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

type globalFlags struct {
	config      string
	modelPath   string
	projectRoot string
	output      string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "falcon9",
		Short: "Predict Falcon 9 first-stage landing outcomes",
		Long:  "falcon9 scores launch parameters against a fitted random-forest\nartifact and reports whether the first stage is expected to land.",
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.config, "config", "", "Config file (env-only when empty)")
	pf.StringVar(&g.modelPath, "model", "", "Explicit artifact path, tried before the search locations")
	pf.StringVar(&g.projectRoot, "project-root", "", "Project root searched last for models/")
	pf.StringVarP(&g.output, "output", "o", string(formatText), "Output format: json|text")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Debug logging on stderr")

	root.AddCommand(newPredictCmd(g))
	root.AddCommand(newModelCmd(g))
	root.AddCommand(newOptionsCmd(g))
	root.AddCommand(newTokenCmd(g))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
