// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders paper records, library listings, search hits, and
// recent searches for the terminal as YAML, JSON, or a text table.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/da-ros/researchpal/internal/recent"
	"github.com/da-ros/researchpal/pkg/types"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format flag value. The empty string selects
// FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want table, json, or yaml)", s)
	}
}

// Encode writes v to w as JSON or YAML. Table output is type-specific and
// is rejected here.
func Encode(w io.Writer, v any, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q cannot encode %T", f, v)
	}
}

// Paper writes a single record in format f.
func Paper(w io.Writer, rec types.PaperRecord, f Format) error {
	if f != FormatTable {
		return Encode(w, rec, f)
	}

	fmt.Fprintf(w, "%s\n", rec.Title)
	fmt.Fprintln(w, strings.Repeat("=", min(len(rec.Title), 80)))
	field(w, "arXiv ID", rec.ArxivID)
	field(w, "Authors", strings.Join(rec.Authors, ", "))
	field(w, "Published", rec.PublishedDate)
	field(w, "Categories", strings.Join(rec.Categories, ", "))
	field(w, "Journal", rec.JournalRef)
	field(w, "DOI", rec.DOI)
	field(w, "PDF", rec.PDFURL)
	field(w, "Entry", rec.EntryURL)
	fmt.Fprintf(w, "\n%s\n", rec.Abstract)
	return nil
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%-11s %s\n", label+":", value)
}

// Library writes the saved papers in format f.
func Library(w io.Writer, papers []types.LibraryPaper, f Format) error {
	if f != FormatTable {
		return Encode(w, papers, f)
	}

	if len(papers) == 0 {
		fmt.Fprintln(w, "Your library is empty.")
		return nil
	}

	fmt.Fprintf(w, "%-16s  %-50s  %-20s  %-10s  %s\n",
		"arXiv ID", "Title", "Authors", "Added", "Tags")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, p := range papers {
		fmt.Fprintf(w, "%-16s  %-50s  %-20s  %-10s  %s\n",
			truncate(p.ArxivID, 16), truncate(p.Title, 50), formatAuthors(p.Authors),
			dateOnly(p.DateAdded), strings.Join(p.Tags, ", "))
		if notes := strings.TrimSpace(p.Notes); notes != "" {
			fmt.Fprintf(w, "%-16s  notes: %s\n", "", notes)
		}
	}
	fmt.Fprintf(w, "\n%d papers\n", len(papers))
	return nil
}

// Search writes search hits in format f.
func Search(w io.Writer, resp types.SearchResponse, f Format) error {
	if f != FormatTable {
		return Encode(w, resp.Papers, f)
	}

	if len(resp.Papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %s\n",
		"Rank", "Title", "Authors", "Date", "arXiv ID")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, p := range resp.Papers {
		id := p.ArxivID
		if id == "" {
			id = p.ID
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %s\n",
			i+1, truncate(p.Title, 60), formatAuthors(p.Authors), dateOnly(p.Date), id)
	}
	fmt.Fprintf(w, "\n%d results\n", resp.Total)
	return nil
}

// Recent writes the recent searches in format f. Table output shows times
// relative to now.
func Recent(w io.Writer, entries []recent.Entry, f Format, now time.Time) error {
	if f != FormatTable {
		return Encode(w, entries, f)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No recent searches.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-50s  %4d papers  %s\n", truncate(e.Topic, 50), e.Count, ago(now.Sub(e.Time())))
	}
	return nil
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

// dateOnly keeps the YYYY-MM-DD prefix of an ISO timestamp.
func dateOnly(s string) string {
	if len(s) > 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return s
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
