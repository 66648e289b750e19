// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/da-ros/researchpal/internal/export"
	"github.com/da-ros/researchpal/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for papers",
	Long: `Search asks the server for papers matching a free-text query and prints
the hits. Each search is remembered in the recent-searches list together
with the number of papers found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("search query is empty")
	}
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Search(context.Background(), types.SearchRequest{Query: query})
	if err != nil {
		return err
	}

	// Recording the search is best effort.
	if store, kv, err := openRecent(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: recent searches unavailable: %v\n", err)
	} else {
		store.Add(query, resp.Total)
		kv.Close()
	}

	return export.Search(cmd.OutOrStdout(), resp, format)
}

// formatFlag reads and validates the --format flag.
func formatFlag(cmd *cobra.Command) (export.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	return export.ParseFormat(s)
}

func init() {
	searchCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(searchCmd)
}
