// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library provides read-only views over the saved-paper listing.
package library

import (
	"sort"
	"strings"

	"github.com/da-ros/researchpal/pkg/types"
)

// FilterByTags returns the papers carrying at least one of tags. With no
// tags every paper is returned. Tag comparison is exact.
func FilterByTags(papers []types.LibraryPaper, tags []string) []types.LibraryPaper {
	if len(tags) == 0 {
		return papers
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	out := make([]types.LibraryPaper, 0, len(papers))
	for _, p := range papers {
		for _, t := range p.Tags {
			if want[t] {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// WithNotes returns the papers whose notes are not blank.
func WithNotes(papers []types.LibraryPaper) []types.LibraryPaper {
	out := make([]types.LibraryPaper, 0, len(papers))
	for _, p := range papers {
		if strings.TrimSpace(p.Notes) != "" {
			out = append(out, p)
		}
	}
	return out
}

// Tags returns every distinct tag across papers, sorted.
func Tags(papers []types.LibraryPaper) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range papers {
		for _, t := range p.Tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
