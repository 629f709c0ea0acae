// Package harvester drives the batch harvest: it walks the registry entry
// list, fetches each README, and assembles catalog records.
package harvester

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/extract"
	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/registry"
)

// ReadmeFetcher fetches the README for a skill repository.
type ReadmeFetcher interface {
	FetchReadme(ctx context.Context, owner, repo string) (string, error)
}

// Summary describes the outcome of one harvest run.
type Summary struct {
	RunID     string
	Harvested int
	Skipped   int
	Duration  time.Duration
}

// Harvester runs the batch pipeline. Entries are processed sequentially;
// each record is a pure function of its own README, so a failed entry is
// logged and skipped without touching the rest of the batch.
type Harvester struct {
	registry  registry.Interface
	fetcher   ReadmeFetcher
	assembler *extract.Assembler
	log       logger.Interface
}

// New creates a harvester.
func New(
	reg registry.Interface,
	fetcher ReadmeFetcher,
	assembler *extract.Assembler,
	log logger.Interface,
) *Harvester {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Harvester{
		registry:  reg,
		fetcher:   fetcher,
		assembler: assembler,
		log:       log,
	}
}

// Run harvests every registry entry and returns the partial result set
// over the entries that succeeded. Only a registry listing failure or a
// cancelled context aborts the run.
func (h *Harvester) Run(ctx context.Context) (*domain.ResultSet, Summary, error) {
	summary := Summary{RunID: uuid.New().String()}
	log := h.log.WithRunID(summary.RunID)

	started := time.Now()

	entries, err := h.registry.List(ctx)
	if err != nil {
		return nil, summary, fmt.Errorf("list registry entries: %w", err)
	}

	log.Info("Harvest started", "entries", len(entries))

	results := domain.NewResultSet()
	for _, entry := range entries {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, summary, ctxErr
		}

		record, renderErr := h.Render(ctx, entry)
		if renderErr != nil {
			log.WithSkill(entry.Name).WithError(renderErr).Error("Failed to generate record, skipping entry")
			summary.Skipped++
			continue
		}

		results.Add(entry.Name, record)
		summary.Harvested++
	}

	summary.Duration = time.Since(started)
	log.WithDuration(summary.Duration).Info("Harvest finished",
		"harvested", summary.Harvested,
		"skipped", summary.Skipped,
	)

	return results, summary, nil
}

// Render fetches the entry's README and assembles its catalog record.
func (h *Harvester) Render(ctx context.Context, entry registry.Entry) (domain.Record, error) {
	h.log.WithSkill(entry.Name).Debug("Generating record")

	readme, err := h.fetcher.FetchReadme(ctx, entry.Author, entry.Repo)
	if err != nil {
		return domain.Record{}, fmt.Errorf("fetch readme: %w", err)
	}

	record := h.assembler.Assemble(extract.Input{
		Name:    entry.Name,
		Author:  entry.Author,
		RepoURL: entry.RepoURL,
		Tree:    entry.Tree,
		Readme:  readme,
	})

	return record, nil
}
