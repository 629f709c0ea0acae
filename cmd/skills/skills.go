// Package skills implements the skills command for inspecting the
// registry entry list without running a full harvest.
package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/goharvest/cmd/common"
	"github.com/jonesrussell/goharvest/internal/registry"
)

// Command returns the skills command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Inspect the skill registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(listCommand())
	cmd.AddCommand(showCommand())

	return cmd
}

// listCommand returns the skills list subcommand.
func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every entry in the skill registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return runList(cmd.Context(), deps)
		},
	}
}

// runList fetches and renders the registry entry list.
func runList(ctx context.Context, deps *common.CommandDeps) error {
	entries, err := deps.NewRegistry().List(ctx)
	if err != nil {
		return fmt.Errorf("list registry entries: %w", err)
	}

	renderEntries(entries)

	return nil
}

// renderEntries prints the entries as a table.
func renderEntries(entries []registry.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Author", "Repository", "Tree"})

	for _, entry := range entries {
		t.AppendRow(table.Row{entry.Name, entry.Author, entry.RepoURL, entry.Tree})
	}

	t.Render()
}

// showCommand returns the skills show subcommand, which harvests a single
// entry and prints its record.
func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Harvest one skill and print its catalog record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}

			return runShow(cmd.Context(), deps, args[0])
		},
	}
}

// runShow harvests a single entry by name.
func runShow(ctx context.Context, deps *common.CommandDeps, name string) error {
	entries, err := deps.NewRegistry().List(ctx)
	if err != nil {
		return fmt.Errorf("list registry entries: %w", err)
	}

	for _, entry := range entries {
		if entry.Name != name {
			continue
		}

		record, renderErr := deps.NewHarvester().Render(ctx, entry)
		if renderErr != nil {
			return fmt.Errorf("generate record for %q: %w", name, renderErr)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)

		return enc.Encode(record)
	}

	return fmt.Errorf("skill %q not found in registry", name)
}
