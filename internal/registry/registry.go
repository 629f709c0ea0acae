// Package registry lists the skill entries referenced by the skills
// registry repository.
package registry

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/logger"
)

// Registry errors.
var (
	// ErrNoEntries is returned when the registry yields no usable entries.
	ErrNoEntries = errors.New("no entries found in registry")
	// ErrBadRepoURL is returned when a repository URL has no owner/repo path.
	ErrBadRepoURL = errors.New("repository URL has no owner and repository segments")
)

// Entry describes one skill referenced by the registry.
type Entry struct {
	// Name is the stable registry name of the skill.
	Name string
	// Author is the repository owner's handle.
	Author string
	// Repo is the repository name.
	Repo string
	// RepoURL is the repository's web URL.
	RepoURL string
	// Tree is the commit or branch reference used for asset URLs.
	Tree string
}

// Interface defines read access to the registry entry list.
type Interface interface {
	List(ctx context.Context) ([]Entry, error)
}

// RawFetcher fetches a raw file by URL.
type RawFetcher interface {
	FetchRaw(ctx context.Context, rawURL string) (string, error)
}

// Registry loads entries either from pinned configuration or from the
// registry repository's submodule list.
type Registry struct {
	cfg     config.RegistryConfig
	fetcher RawFetcher
	log     logger.Interface
}

// Ensure Registry implements Interface.
var _ Interface = (*Registry)(nil)

// New creates a registry backed by cfg and fetcher.
func New(cfg config.RegistryConfig, fetcher RawFetcher, log logger.Interface) *Registry {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Registry{cfg: cfg, fetcher: fetcher, log: log}
}

// List returns the registry entries. Entries without a repository URL are
// skipped, matching the registry's own convention for removed skills.
func (r *Registry) List(ctx context.Context) ([]Entry, error) {
	if len(r.cfg.Skills) > 0 {
		return r.pinnedEntries()
	}

	return r.submoduleEntries(ctx)
}

// pinnedEntries builds the entry list from configuration.
func (r *Registry) pinnedEntries() ([]Entry, error) {
	entries := make([]Entry, 0, len(r.cfg.Skills))

	for _, ref := range r.cfg.Skills {
		if ref.URL == "" {
			r.log.WithSkill(ref.Name).Debug("Skipping entry without repository URL")
			continue
		}

		entry, err := newEntry(ref.Name, ref.URL, ref.Tree)
		if err != nil {
			return nil, fmt.Errorf("pinned skill %q: %w", ref.Name, err)
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	return entries, nil
}

// submoduleEntries fetches and parses the registry repository's
// .gitmodules listing.
func (r *Registry) submoduleEntries(ctx context.Context) ([]Entry, error) {
	listURL := gitmodulesURL(r.cfg.RepoURL, r.cfg.Branch)

	content, err := r.fetcher.FetchRaw(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("fetch registry listing: %w", err)
	}

	var entries []Entry
	for _, sub := range parseGitmodules(content) {
		if sub.url == "" {
			r.log.WithSkill(sub.name).Debug("Skipping entry without repository URL")
			continue
		}

		entry, entryErr := newEntry(sub.name, sub.url, "")
		if entryErr != nil {
			r.log.WithSkill(sub.name).WithError(entryErr).Warn("Skipping entry with unusable repository URL")
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	r.log.Info("Registry entries loaded", "count", len(entries), "url", listURL)

	return entries, nil
}

// newEntry derives the owner and repository name from the URL and applies
// the default tree reference.
func newEntry(name, repoURL, tree string) (Entry, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return Entry{}, err
	}

	if tree == "" {
		tree = config.DefaultTree
	}
	if name == "" {
		name = repo
	}

	return Entry{
		Name:    name,
		Author:  owner,
		Repo:    repo,
		RepoURL: webURL(repoURL),
		Tree:    tree,
	}, nil
}

// ParseRepoURL extracts the owner and repository name from a repository
// URL, tolerating a trailing ".git" suffix.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	parsed, parseErr := url.Parse(repoURL)
	if parseErr != nil {
		return "", "", fmt.Errorf("parse repository URL: %w", parseErr)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadRepoURL, repoURL)
	}

	return segments[0], strings.TrimSuffix(segments[1], ".git"), nil
}

// webURL normalizes a clone URL into the repository's web URL.
func webURL(repoURL string) string {
	return strings.TrimSuffix(strings.TrimSuffix(repoURL, "/"), ".git")
}

// gitmodulesURL builds the raw-content URL of the registry's .gitmodules
// file at the configured branch.
func gitmodulesURL(repoURL, branch string) string {
	base := strings.Replace(webURL(repoURL), "github.com", "raw.githubusercontent.com", 1)

	return base + "/" + branch + "/.gitmodules"
}

// submodule is one parsed .gitmodules stanza.
type submodule struct {
	name string
	url  string
}

// parseGitmodules scans a .gitmodules document for submodule stanzas and
// their url keys.
func parseGitmodules(content string) []submodule {
	var subs []submodule

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "[submodule ") {
			name := strings.TrimPrefix(line, "[submodule ")
			name = strings.TrimSuffix(name, "]")
			name = strings.Trim(name, `"`)
			subs = append(subs, submodule{name: name})
			continue
		}

		if key, value, found := strings.Cut(line, "="); found && len(subs) > 0 {
			if strings.TrimSpace(key) == "url" {
				subs[len(subs)-1].url = strings.TrimSpace(value)
			}
		}
	}

	return subs
}
