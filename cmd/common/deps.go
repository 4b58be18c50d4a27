// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/jonesrussell/golocator/internal/config"
	"github.com/jonesrussell/golocator/internal/locator"
	"github.com/jonesrussell/golocator/internal/logger"
	"github.com/jonesrussell/golocator/internal/query"
	"github.com/jonesrussell/golocator/internal/stability"
)

// CommandDeps holds common dependencies for all commands.
// Use this instead of context.Value for type-safe dependency injection.
type CommandDeps struct {
	Logger    logger.Interface
	Config    config.Interface
	Evaluator query.Evaluator
	Generator *locator.Generator
}

// Validate ensures all required dependencies are present.
func (d *CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	if d.Generator == nil {
		return ErrGeneratorRequired
	}
	return nil
}

// NewCommandDeps loads configuration and builds the logger, evaluator, and
// generator shared by every command.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.GetLoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	classifier, err := newClassifier(cfg.GetLocatorConfig(), log)
	if err != nil {
		return nil, err
	}

	evaluator := query.NewXPathEvaluator()
	gen, err := locator.New(locator.Params{
		Evaluator:  evaluator,
		Classifier: classifier,
		Logger:     log.WithComponent("locator"),
		Tracer:     newTracer(log),
	})
	if err != nil {
		return nil, fmt.Errorf("create generator: %w", err)
	}

	deps := &CommandDeps{
		Logger:    log,
		Config:    cfg,
		Evaluator: evaluator,
		Generator: gen,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return nil, fmt.Errorf("validate deps: %w", validateErr)
	}
	return deps, nil
}

// newClassifier builds the stability classifier, loading a replacement rule
// table when one is configured.
func newClassifier(cfg *config.LocatorConfig, log logger.Interface) (*stability.Classifier, error) {
	if cfg.RulesFile == "" {
		return stability.Default(), nil
	}

	rules, err := stability.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load stability rules: %w", err)
	}
	classifier, err := stability.NewClassifier(rules)
	if err != nil {
		return nil, fmt.Errorf("compile stability rules: %w", err)
	}
	log.Info("loaded stability rules", "file", cfg.RulesFile, "version", classifier.Version())
	return classifier, nil
}

// newTracer enables candidate tracing only in debug mode; the generator
// skips a nil tracer entirely.
func newTracer(log logger.Interface) locator.Tracer {
	if !IsDebug() {
		return nil
	}
	return locator.NewLoggerTracer(log.WithComponent("trace"))
}
