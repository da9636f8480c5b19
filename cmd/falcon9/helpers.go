package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"falcon9/internal/artifact"
	"falcon9/internal/config"
	"falcon9/internal/logger"
	"falcon9/internal/prediction"
)

// env holds what every subcommand needs after flags are parsed.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	format format
}

func setup(g *globalFlags) (*env, error) {
	f, err := parseFormat(g.output)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(g.config, g.config == "")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.modelPath != "" {
		cfg.Model.Path = g.modelPath
	}
	if g.projectRoot != "" {
		cfg.Model.ProjectRoot = g.projectRoot
	}
	log, err := logger.NewCLI(g.verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &env{cfg: cfg, log: log, format: f}, nil
}

// loadModel runs one pass over the search locations. The CLI does not retry.
func (e *env) loadModel(ctx context.Context) (*artifact.Loaded, error) {
	paths := artifact.DefaultSearchPaths(e.cfg.Model.Name, e.cfg.Model.Path, e.cfg.Model.ProjectRoot)
	l := &artifact.Loader{Candidates: paths.Candidates(), Logger: e.log}
	loaded, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	e.log.Debug("model loaded",
		zap.String("source", loaded.Source.Name),
		zap.String("path", loaded.Source.Path),
	)
	return loaded, nil
}

func (e *env) service(ctx context.Context) (*prediction.Service, *artifact.Loaded, error) {
	loaded, err := e.loadModel(ctx)
	if err != nil {
		return nil, nil, err
	}
	return &prediction.Service{Source: prediction.Static(loaded.Pipeline), Logger: e.log}, loaded, nil
}
