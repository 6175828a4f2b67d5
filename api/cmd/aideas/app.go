package main

import (
	"fmt"

	"go.uber.org/zap"

	"aideas/api/internal/config"
	"aideas/api/internal/idea"
	"aideas/api/internal/llm"
	"aideas/api/internal/llm/gemini"
	"aideas/api/internal/llm/openai"
	"aideas/api/internal/logging"
	"aideas/api/internal/trending"
)

// app is the wired object graph shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	ideas   *idea.Analyzer
	catalog *trending.Catalog
}

// newApp builds the graph from the environment. Tests replace it.
var newApp = func() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	engines := &llm.Engines{
		OpenAI: openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
	}
	eng, err := engines.GetEngine(cfg.Provider)
	if err != nil {
		return nil, fmt.Errorf("select engine: %w", err)
	}
	log.Info("engine selected", zap.String("engine", eng.Name()), zap.String("model", eng.GetModel()))

	return wire(cfg, log, eng), nil
}

func wire(cfg *config.Config, log *zap.Logger, eng llm.Engine) *app {
	return &app{
		cfg:     cfg,
		log:     log,
		ideas:   idea.NewAnalyzer(eng, log),
		catalog: trending.New(eng, log),
	}
}
