// Package container provides dependency injection for the camt-fix application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/camt-fix/internal/batch"
	"fjacquet/camt-fix/internal/camtfix"
	"fjacquet/camt-fix/internal/config"
	"fjacquet/camt-fix/internal/logging"
	"fjacquet/camt-fix/internal/report"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	rewriter *camtfix.Rewriter
	reports  *report.Generator
}

// NewContainer creates and wires all application dependencies.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return NewContainerWithLogger(cfg, logger)
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	rewriter := camtfix.New(camtfix.OptionsFromConfig(cfg), logger)

	logger.Debug("Container initialized successfully",
		logging.F("suffix", cfg.Output.Suffix),
		logging.F("indent", cfg.Output.Indent))

	return &Container{
		logger:   logger,
		config:   cfg,
		rewriter: rewriter,
		reports:  report.NewGenerator(logger),
	}, nil
}

// NewProcessor returns a file processor using the configured suffix. A
// workers value of 0 falls back to batch.workers from the configuration.
func (c *Container) NewProcessor(validate bool, workers int) *batch.Processor {
	if workers == 0 {
		workers = c.config.Batch.Workers
	}
	return batch.NewProcessor(c.rewriter, batch.Options{
		Workers:  workers,
		Suffix:   c.config.Output.Suffix,
		Validate: validate,
	}, c.logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRewriter returns the statement rewriter.
func (c *Container) GetRewriter() *camtfix.Rewriter {
	return c.rewriter
}

// GetReportGenerator returns the rewrite report renderer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.reports
}
