// Package common provides the shared dependency wiring used by every
// subcommand.
package common

import (
	"errors"
	"fmt"

	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/extract"
	"github.com/jonesrussell/goharvest/internal/fetcher"
	"github.com/jonesrussell/goharvest/internal/harvester"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/registry"
)

// Dependency validation errors.
var (
	errLoggerRequired = errors.New("logger is required")
	errConfigRequired = errors.New("config is required")
)

// CommandDeps holds the dependencies common to all commands.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps loads configuration and creates the logger.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps := &CommandDeps{Logger: log, Config: cfg}
	if validateErr := deps.validate(); validateErr != nil {
		return nil, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// validate ensures all required dependencies are present.
func (d *CommandDeps) validate() error {
	if d.Logger == nil {
		return errLoggerRequired
	}
	if d.Config == nil {
		return errConfigRequired
	}

	return nil
}

// NewHarvester wires the harvest pipeline from the shared dependencies.
func (d *CommandDeps) NewHarvester() *harvester.Harvester {
	client := fetcher.NewClient(d.Config.GitHub, d.Logger)
	reg := registry.New(d.Config.Registry, client, d.Logger)
	assembler := extract.NewAssembler(d.Logger)

	return harvester.New(reg, client, assembler, d.Logger)
}

// NewRegistry wires a registry client from the shared dependencies.
func (d *CommandDeps) NewRegistry() registry.Interface {
	client := fetcher.NewClient(d.Config.GitHub, d.Logger)

	return registry.New(d.Config.Registry, client, d.Logger)
}
