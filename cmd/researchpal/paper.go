// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/da-ros/researchpal/internal/export"
	"github.com/da-ros/researchpal/internal/paper"
	"github.com/da-ros/researchpal/pkg/types"
)

var paperCmd = &cobra.Command{
	Use:   "paper <arxiv-id>...",
	Short: "Show the details of one or more papers",
	Long: `Paper asks the assistant for the details of arXiv papers and extracts the
title, authors, abstract, and metadata from each reply. Fields a reply does
not mention keep their placeholders. Several IDs are looked up concurrently.
Use --save to add the papers to the library afterwards.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPaper,
}

func runPaper(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	save, _ := cmd.Flags().GetBool("save")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	notes, _ := cmd.Flags().GetString("notes")
	parallel, _ := cmd.Flags().GetInt("parallel")

	client, err := newClient()
	if err != nil {
		return err
	}
	svc := paper.NewService(client, client)
	ctx := context.Background()

	recs, err := svc.DetailsMany(ctx, args, parallel)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if !rec.HasDetails() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: no details found for %s\n", rec.ArxivID)
		}
	}
	if err := writePapers(cmd.OutOrStdout(), recs, format); err != nil {
		return err
	}

	if !save {
		return nil
	}
	for _, rec := range recs {
		resp, err := svc.Save(ctx, rec, tags, notes)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", resp.Message, resp.ArxivID)
	}
	return nil
}

// writePapers prints a single record as an object and several as a list.
func writePapers(w io.Writer, recs []types.PaperRecord, format export.Format) error {
	if len(recs) == 1 || format == export.FormatTable {
		for i, rec := range recs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := export.Paper(w, rec, format); err != nil {
				return err
			}
		}
		return nil
	}
	return export.Encode(w, recs, format)
}

func init() {
	paperCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	paperCmd.Flags().Bool("save", false, "save the papers to the library")
	paperCmd.Flags().StringSlice("tag", nil, "tag to attach when saving (repeatable)")
	paperCmd.Flags().String("notes", "", "notes to attach when saving")
	paperCmd.Flags().Int("parallel", paper.DefaultParallel, "maximum concurrent lookups")

	rootCmd.AddCommand(paperCmd)
}
