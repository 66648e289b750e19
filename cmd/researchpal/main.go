// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the researchpal CLI, a terminal client
// for the research-assistant API: chat, paper search, paper details, the
// saved-paper library and the recent-searches list.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/da-ros/researchpal/internal/api"
	"github.com/da-ros/researchpal/internal/recent"
	"github.com/da-ros/researchpal/internal/secrets"
	"github.com/da-ros/researchpal/internal/storage"
	"github.com/da-ros/researchpal/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the researchpal CLI.
var rootCmd = &cobra.Command{
	Use:   "researchpal",
	Short: "Terminal client for the research-assistant API",
	Long: `researchpal talks to a research-assistant server: chat with the assistant,
search for papers, look up a paper's details by arXiv ID, and manage the
saved-paper library. Recent searches are remembered locally.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of researchpal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "researchpal %s\n", rootCmd.Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// --version and the version subcommand print the same line.
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("researchpal {{.Version}}\n")
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./researchpal.yaml or ~/.config/researchpal/researchpal.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "API server base URL (overrides api.base_url)")
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func setDefaults() {
	viper.SetDefault("api.base_url", api.DefaultBaseURL)
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("api.user_agent", "researchpal/"+version)
	viper.SetDefault("api.token", "")
	viper.SetDefault("api.rate_limit_retries", 0)
	viper.SetDefault("recent.max", recent.DefaultMax)

	if home, err := os.UserHomeDir(); err == nil {
		viper.SetDefault("storage.path", filepath.Join(home, ".config", "researchpal", "local.db"))
	} else {
		viper.SetDefault("storage.path", "local.db")
	}
}

func initConfig() {
	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("researchpal")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "researchpal"))
		}
	}

	viper.SetEnvPrefix("RESEARCHPAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper settings. A token in .secrets/api-token
// is used when configuration leaves api.token empty.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.API.Token = loadedSecrets.Default(secrets.APIToken, cfg.API.Token)
	return cfg, nil
}

func newClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.API), nil
}

// openRecent opens local storage and the recent-searches cache over it. The
// caller must close the returned store.
func openRecent() (*recent.Store, *storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	kv, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}
	return recent.New(kv, recent.WithMax(cfg.Recent.Max), recent.WithWarnings(os.Stderr)), kv, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
