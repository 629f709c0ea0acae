package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/registry"
)

// gitmodulesDoc is a registry listing with two usable submodules and one
// stanza missing its url key.
const gitmodulesDoc = `[submodule "skill-alarm"]
	path = skill-alarm
	url = https://github.com/MycroftAI/skill-alarm.git
[submodule "skill-removed"]
	path = skill-removed
[submodule "fallback-wolfram-alpha"]
	path = fallback-wolfram-alpha
	url = https://github.com/MycroftAI/fallback-wolfram-alpha
`

// fakeRawFetcher serves canned content for one URL.
type fakeRawFetcher struct {
	wantURL string
	content string
	err     error

	gotURL string
}

func (f *fakeRawFetcher) FetchRaw(_ context.Context, rawURL string) (string, error) {
	f.gotURL = rawURL
	if f.err != nil {
		return "", f.err
	}

	return f.content, nil
}

func TestList_SubmoduleEntries(t *testing.T) {
	t.Parallel()

	fetcher := &fakeRawFetcher{content: gitmodulesDoc}
	reg := registry.New(config.RegistryConfig{
		RepoURL: "https://github.com/MycroftAI/mycroft-skills",
		Branch:  "21.02",
	}, fetcher, nil)

	entries, err := reg.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	wantURL := "https://raw.githubusercontent.com/MycroftAI/mycroft-skills/21.02/.gitmodules"
	if fetcher.gotURL != wantURL {
		t.Errorf("fetched %q, want %q", fetcher.gotURL, wantURL)
	}

	// The url-less stanza is skipped.
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}

	first := entries[0]
	if first.Name != "skill-alarm" || first.Author != "MycroftAI" || first.Repo != "skill-alarm" {
		t.Errorf("entries[0] = %+v", first)
	}
	if first.RepoURL != "https://github.com/MycroftAI/skill-alarm" {
		t.Errorf("RepoURL = %q", first.RepoURL)
	}
	if first.Tree != config.DefaultTree {
		t.Errorf("Tree = %q, want %q", first.Tree, config.DefaultTree)
	}

	if entries[1].Name != "fallback-wolfram-alpha" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestList_PinnedSkillsBypassFetch(t *testing.T) {
	t.Parallel()

	fetcher := &fakeRawFetcher{err: errors.New("must not be called")}
	reg := registry.New(config.RegistryConfig{
		Skills: []config.SkillRef{
			{Name: "skill-weather", URL: "https://github.com/MycroftAI/skill-weather.git", Tree: "20.08"},
			{Name: "no-url-skill"},
		},
	}, fetcher, nil)

	entries, err := reg.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("entries = %v", entries)
	}
	if entries[0].Name != "skill-weather" || entries[0].Tree != "20.08" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if fetcher.gotURL != "" {
		t.Errorf("fetcher was called with %q", fetcher.gotURL)
	}
}

func TestList_EmptyRegistry(t *testing.T) {
	t.Parallel()

	fetcher := &fakeRawFetcher{content: "# nothing here\n"}
	reg := registry.New(config.RegistryConfig{
		RepoURL: "https://github.com/MycroftAI/mycroft-skills",
		Branch:  "21.02",
	}, fetcher, nil)

	_, err := reg.List(context.Background())
	if !errors.Is(err, registry.ErrNoEntries) {
		t.Fatalf("err = %v, want ErrNoEntries", err)
	}
}

func TestParseRepoURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"https with .git", "https://github.com/MycroftAI/skill-alarm.git", "MycroftAI", "skill-alarm", false},
		{"https plain", "https://github.com/someone/some-skill", "someone", "some-skill", false},
		{"trailing slash", "https://github.com/someone/some-skill/", "someone", "some-skill", false},
		{"no path", "https://github.com", "", "", true},
		{"owner only", "https://github.com/someone", "", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			owner, repo, err := registry.ParseRepoURL(tt.input)
			if tt.wantErr {
				if !errors.Is(err, registry.ErrBadRepoURL) {
					t.Fatalf("err = %v, want ErrBadRepoURL", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRepoURL(%q) = %q, %q", tt.input, owner, repo)
			}
		})
	}
}
