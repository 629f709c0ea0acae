package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goharvest/internal/config"
)

// Load reads the global viper state, so these tests reset it and must not
// run in parallel.

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultGitHubAPIURL, cfg.GitHub.APIBaseURL)
	assert.Equal(t, config.DefaultRequestTimeout, cfg.GitHub.RequestTimeout)
	assert.Equal(t, config.DefaultUserAgent, cfg.GitHub.UserAgent)
	assert.Equal(t, config.DefaultRegistryRepoURL, cfg.Registry.RepoURL)
	assert.Equal(t, config.DefaultRegistryBranch, cfg.Registry.Branch)
	assert.Equal(t, config.DefaultOutputFile, cfg.Output.File)
	assert.Equal(t, config.DefaultServerAddress, cfg.Server.Address)
	assert.Equal(t, []string{config.DefaultESAddress}, cfg.Elasticsearch.Addresses)
	assert.Equal(t, config.DefaultESIndex, cfg.Elasticsearch.IndexName)
	assert.Equal(t, config.DefaultSchedule, cfg.Scheduler.Schedule)
	assert.False(t, cfg.Elasticsearch.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("github.token", "secret-token")
	viper.Set("registry.branch", "20.08")
	viper.Set("output.file", "custom.json")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.GitHub.Token)
	assert.Equal(t, "20.08", cfg.Registry.Branch)
	assert.Equal(t, "custom.json", cfg.Output.File)
}

func TestLoad_PinnedSkills(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("registry.skills", []map[string]any{
		{"name": "skill-weather", "url": "https://github.com/MycroftAI/skill-weather", "tree": "20.08"},
	})

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Len(t, cfg.Registry.Skills, 1)
	assert.Equal(t, "skill-weather", cfg.Registry.Skills[0].Name)
	assert.Equal(t, "20.08", cfg.Registry.Skills[0].Tree)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{
			"no registry source",
			func(c *config.Config) {
				c.Registry.RepoURL = ""
				c.Registry.Skills = nil
			},
			config.ErrMissingRegistry,
		},
		{
			"indexing without addresses",
			func(c *config.Config) {
				c.Elasticsearch.Enabled = true
				c.Elasticsearch.Addresses = nil
			},
			config.ErrMissingESAddress,
		},
		{
			"no server address",
			func(c *config.Config) {
				c.Server.Address = ""
			},
			config.ErrMissingServerAddr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			cfg, err := config.Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}
