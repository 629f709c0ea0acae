package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonesrussell/goharvest/internal/config"
	"github.com/jonesrussell/goharvest/internal/fetcher"
)

const readmeBody = "# Test Skill\nBody text.\n"

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*fetcher.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := fetcher.NewClient(config.GitHubConfig{
		APIBaseURL: server.URL,
		Token:      token,
		UserAgent:  "goharvest-test",
	}, nil)

	return client, server
}

func TestFetchReadme(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccept, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(readmeBody))
	}, "test-token")

	body, err := client.FetchReadme(context.Background(), "MycroftAI", "skill-alarm")
	if err != nil {
		t.Fatalf("FetchReadme: %v", err)
	}

	if body != readmeBody {
		t.Errorf("body = %q", body)
	}
	if gotPath != "/repos/MycroftAI/skill-alarm/readme" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAccept != "application/vnd.github.raw+json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestFetchReadme_NoTokenOmitsAuthorization(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(readmeBody))
	}, "")

	if _, err := client.FetchReadme(context.Background(), "someone", "skill"); err != nil {
		t.Fatalf("FetchReadme: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want empty", gotAuth)
	}
}

func TestFetchReadme_NotFound(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, "")

	_, err := client.FetchReadme(context.Background(), "someone", "gone")
	if !errors.Is(err, fetcher.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchReadme_RateLimited(t *testing.T) {
	t.Parallel()

	statuses := []int{http.StatusForbidden, http.StatusTooManyRequests}

	for _, status := range statuses {
		client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}, "")

		_, err := client.FetchReadme(context.Background(), "someone", "skill")
		if !errors.Is(err, fetcher.ErrRateLimited) {
			t.Fatalf("status %d: err = %v, want ErrRateLimited", status, err)
		}
	}
}

func TestFetchReadme_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "")

	_, err := client.FetchReadme(context.Background(), "someone", "skill")
	if err == nil || errors.Is(err, fetcher.ErrNotFound) || errors.Is(err, fetcher.ErrRateLimited) {
		t.Fatalf("err = %v, want generic status error", err)
	}
}

func TestFetchRaw(t *testing.T) {
	t.Parallel()

	const listing = "[submodule \"skill-alarm\"]\n\turl = https://github.com/MycroftAI/skill-alarm\n"

	var gotAccept string
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(listing))
	}, "")

	body, err := client.FetchRaw(context.Background(), server.URL+"/MycroftAI/mycroft-skills/21.02/.gitmodules")
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}

	if body != listing {
		t.Errorf("body = %q", body)
	}
	// Raw fetches take the server's default representation.
	if gotAccept != "" {
		t.Errorf("Accept = %q, want empty", gotAccept)
	}
}
