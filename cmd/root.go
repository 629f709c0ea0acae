// Package cmd implements the command-line interface for the skill
// metadata harvester. It provides the root command and subcommands for
// harvesting, listing, serving, and scheduling.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonesrussell/goharvest/cmd/harvest"
	"github.com/jonesrussell/goharvest/cmd/httpd"
	cmdscheduler "github.com/jonesrussell/goharvest/cmd/scheduler"
	cmdskills "github.com/jonesrussell/goharvest/cmd/skills"
	"github.com/jonesrussell/goharvest/internal/config"
)

var (
	// cfgFile holds the path to the configuration file.
	cfgFile string

	// Debug enables debug mode for all commands
	Debug bool

	// rootCmd represents the root command for the goharvest CLI.
	rootCmd = &cobra.Command{
		Use:   "goharvest",
		Short: "A skill metadata harvester",
		Long: `Harvests structured metadata from the READMEs of every skill in the
skills registry and assembles it into a JSON catalog.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	// Parse flags early to get debug flag before creating logger
	_ = rootCmd.ParseFlags(os.Args[1:])

	if err := initConfig(); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}

	return rootCmd.ExecuteContext(context.Background())
}

// init initializes the root command and its subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"config file (default is ./config.yaml)",
	)
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug mode")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("goharvest version %s\n", "1.0.0")
		},
	})

	rootCmd.AddCommand(harvest.Command())
	rootCmd.AddCommand(cmdskills.Command())
	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// Environment variables take precedence over file values.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Config file is optional; defaults and environment variables cover
	// every setting.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Config file not found: %v (using defaults and environment variables)\n", err)
	}

	if err := bindFlags(); err != nil {
		return err
	}

	if err := bindEnvVars(); err != nil {
		return err
	}

	setupDevelopmentLogging()

	return nil
}

// bindFlags binds command-line flags to Viper.
func bindFlags() error {
	if err := viper.BindPFlag("app.debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		return fmt.Errorf("failed to bind debug flag: %w", err)
	}

	return nil
}

// bindEnvVars maps environment variables to config keys.
func bindEnvVars() error {
	bindings := map[string][]string{
		"app.environment":          {"APP_ENV"},
		"app.debug":                {"APP_DEBUG"},
		"logger.level":             {"LOG_LEVEL"},
		"logger.encoding":          {"LOG_FORMAT"},
		"github.token":             {"GITHUB_TOKEN"},
		"registry.repo_url":        {"REGISTRY_REPO_URL"},
		"registry.branch":          {"REGISTRY_BRANCH"},
		"output.file":              {"OUTPUT_FILE"},
		"elasticsearch.addresses":  {"ELASTICSEARCH_HOSTS", "ELASTICSEARCH_ADDRESSES"},
		"elasticsearch.password":   {"ELASTIC_PASSWORD", "ELASTICSEARCH_PASSWORD"},
		"elasticsearch.api_key":    {"ELASTICSEARCH_API_KEY"},
		"elasticsearch.index_name": {"ELASTICSEARCH_INDEX_NAME"},
	}

	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := viper.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", envs[0], err)
		}
	}

	return nil
}

// setupDevelopmentLogging configures development logging settings based on
// environment and debug flag.
func setupDevelopmentLogging() {
	debugFlag := Debug || viper.GetBool("app.debug")
	isDev := viper.GetString("app.environment") == "development"

	if debugFlag {
		viper.Set("logger.level", "debug")
	}

	if isDev {
		viper.Set("logger.development", true)
		viper.Set("logger.encoding", "console")
	}

	Debug = debugFlag
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app", map[string]any{
		"name":        "goharvest",
		"environment": "production",
		"debug":       false,
	})

	viper.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
	})

	viper.SetDefault("github", map[string]any{
		"api_base_url":    config.DefaultGitHubAPIURL,
		"request_timeout": config.DefaultRequestTimeout.String(),
		"user_agent":      config.DefaultUserAgent,
	})

	viper.SetDefault("registry", map[string]any{
		"repo_url": config.DefaultRegistryRepoURL,
		"branch":   config.DefaultRegistryBranch,
	})

	viper.SetDefault("output", map[string]any{
		"file": config.DefaultOutputFile,
	})

	viper.SetDefault("server", map[string]any{
		"address":       config.DefaultServerAddress,
		"read_timeout":  config.DefaultServerTimeout.String(),
		"write_timeout": config.DefaultServerTimeout.String(),
		"idle_timeout":  config.DefaultIdleTimeout.String(),
	})

	viper.SetDefault("elasticsearch", map[string]any{
		"enabled":    false,
		"addresses":  []string{config.DefaultESAddress},
		"index_name": config.DefaultESIndex,
	})

	viper.SetDefault("scheduler", map[string]any{
		"schedule": config.DefaultSchedule,
	})
}
