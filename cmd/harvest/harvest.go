// Package harvest implements the harvest command, which generates catalog
// records for every registry entry and writes them as a JSON document.
package harvest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/goharvest/cmd/common"
	"github.com/jonesrussell/goharvest/internal/domain"
	"github.com/jonesrussell/goharvest/internal/harvester"
	"github.com/jonesrussell/goharvest/internal/output"
	"github.com/jonesrussell/goharvest/internal/storage"
)

// Command returns the harvest command.
func Command() *cobra.Command {
	var (
		outputFile string
		index      bool
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest skill metadata from the registry",
		Long: `Fetches the README of every skill in the registry, extracts its
metadata, and writes the assembled catalog as a JSON document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return run(cmd.Context(), deps, outputFile, index)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"output file path (\"-\" for stdout, default from config)")
	cmd.Flags().BoolVar(&index, "index", false,
		"index harvested records into Elasticsearch")

	return cmd
}

// run executes one harvest and writes the results.
func run(ctx context.Context, deps *common.CommandDeps, outputFile string, index bool) error {
	h := deps.NewHarvester()

	results, summary, err := h.Run(ctx)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	path := outputFile
	if path == "" {
		path = deps.Config.Output.File
	}

	writer := output.NewWriter(deps.Logger)
	if writeErr := writer.Write(results, path); writeErr != nil {
		return fmt.Errorf("write results: %w", writeErr)
	}

	if index || deps.Config.Elasticsearch.Enabled {
		if indexErr := indexResults(ctx, deps, results); indexErr != nil {
			return indexErr
		}
	}

	renderSummary(summary)

	return nil
}

// indexResults pushes the harvested records into Elasticsearch.
func indexResults(ctx context.Context, deps *common.CommandDeps, results *domain.ResultSet) error {
	store, err := storage.NewElasticsearchStorage(deps.Config.Elasticsearch, deps.Logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}

	if connErr := store.TestConnection(ctx); connErr != nil {
		return fmt.Errorf("elasticsearch unreachable: %w", connErr)
	}

	if indexErr := store.BulkIndexRecords(ctx, results); indexErr != nil {
		return fmt.Errorf("index records: %w", indexErr)
	}

	return nil
}

// renderSummary prints the run summary to stdout.
func renderSummary(summary harvester.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Run ID", "Harvested", "Skipped", "Duration"})
	t.AppendRow(table.Row{
		summary.RunID,
		summary.Harvested,
		summary.Skipped,
		summary.Duration.Round(time.Millisecond).String(),
	})
	t.Render()
}
