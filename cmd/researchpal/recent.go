// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/da-ros/researchpal/internal/export"
	"github.com/da-ros/researchpal/internal/recent"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recent searches",
	Long: `Recent lists the most recent distinct search topics, newest first, with
the number of papers each search returned.`,
	RunE: runRecent,
}

func runRecent(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	store, kv, err := openRecent()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: recent searches unavailable: %v\n", err)
		return export.Recent(cmd.OutOrStdout(), []recent.Entry{}, format, time.Now())
	}
	defer kv.Close()

	return export.Recent(cmd.OutOrStdout(), store.List(), format, time.Now())
}

var recentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all recent searches",
	RunE:  runRecentClear,
}

func runRecentClear(cmd *cobra.Command, args []string) error {
	store, kv, err := openRecent()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: recent searches unavailable: %v\n", err)
	} else {
		store.Clear()
		kv.Close()
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Recent searches cleared.")
	return nil
}

func init() {
	recentCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	recentCmd.AddCommand(recentClearCmd)
	rootCmd.AddCommand(recentCmd)
}
