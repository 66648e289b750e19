// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/da-ros/researchpal/internal/export"
	"github.com/da-ros/researchpal/internal/library"
	"github.com/da-ros/researchpal/internal/paper"
	"github.com/da-ros/researchpal/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "List and manage saved papers",
	Long: `Library lists the papers saved on the server. Use --tag (repeatable) to
show papers carrying any of the given tags and --notes to show only papers
with notes. Subcommands save and remove papers.`,
	RunE: runLibrary,
}

func runLibrary(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	tags, _ := cmd.Flags().GetStringSlice("tag")
	notesOnly, _ := cmd.Flags().GetBool("notes")
	listTags, _ := cmd.Flags().GetBool("list-tags")

	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Library(context.Background())
	if err != nil {
		return err
	}

	if listTags {
		for _, t := range library.Tags(resp.Papers) {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	}

	papers := library.FilterByTags(resp.Papers, tags)
	if notesOnly {
		papers = library.WithNotes(papers)
	}
	return export.Library(cmd.OutOrStdout(), papers, format)
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <arxiv-id>",
	Short: "Save a paper to the library",
	Long: `Save stores a paper in the library. Title, authors, and abstract are
taken from flags; when --title is not given the details are looked up
through the assistant first.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibrarySave,
}

func runLibrarySave(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	authors, _ := cmd.Flags().GetStringSlice("author")
	abstract, _ := cmd.Flags().GetString("abstract")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	notes, _ := cmd.Flags().GetString("notes")

	client, err := newClient()
	if err != nil {
		return err
	}
	svc := paper.NewService(client, client)
	ctx := context.Background()

	var rec types.PaperRecord
	if title == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Looking up %s...\n", args[0])
		if rec, err = svc.Details(ctx, args[0]); err != nil {
			return err
		}
	} else {
		rec = types.NewPaperRecord(strings.TrimSpace(args[0]))
		rec.Title = title
	}
	if len(authors) > 0 {
		rec.Authors = authors
	}
	if abstract != "" {
		rec.Abstract = abstract
	}

	resp, err := svc.Save(ctx, rec, tags, notes)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Message, resp.ArxivID)
	return nil
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove <arxiv-id>",
	Short: "Remove a paper from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		resp, err := client.RemoveFromLibrary(context.Background(), strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", resp.Message, resp.ArxivID)
		return nil
	},
}

func init() {
	libraryCmd.Flags().StringSlice("tag", nil, "show papers with any of these tags")
	libraryCmd.Flags().Bool("notes", false, "show only papers with notes")
	libraryCmd.Flags().Bool("list-tags", false, "print the distinct tags in the library")
	libraryCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	librarySaveCmd.Flags().String("title", "", "paper title (skips the details lookup)")
	librarySaveCmd.Flags().StringSlice("author", nil, "paper author (repeatable)")
	librarySaveCmd.Flags().String("abstract", "", "paper abstract")
	librarySaveCmd.Flags().StringSlice("tag", nil, "tag to attach (repeatable)")
	librarySaveCmd.Flags().String("notes", "", "notes to attach")

	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	rootCmd.AddCommand(libraryCmd)
}
