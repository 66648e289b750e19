// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// DefaultAbstract is the abstract placeholder used when none could be recovered.
const DefaultAbstract = "Abstract not available"

// DefaultTitle returns the title placeholder for a paper with the given arXiv ID.
func DefaultTitle(arxivID string) string {
	return fmt.Sprintf("Paper %s", arxivID)
}

// PaperRecord is the structured view of a single paper recovered from a
// free-text chat response. Optional string fields are empty when absent.
type PaperRecord struct {
	// ArxivID is supplied by the caller and never parsed from text.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title, or DefaultTitle(ArxivID).
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in the order they appeared.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract, or DefaultAbstract.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PublishedDate is the publication date exactly as written in the response.
	PublishedDate string `json:"published_date,omitempty" yaml:"published_date,omitempty"`

	// Categories lists subject categories (e.g. "cs.AI") in source order.
	Categories []string `json:"categories" yaml:"categories"`

	PDFURL     string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
	EntryURL   string `json:"entry_url,omitempty" yaml:"entry_url,omitempty"`
	JournalRef string `json:"journal_ref,omitempty" yaml:"journal_ref,omitempty"`
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
}

// NewPaperRecord returns a record for arxivID with every field at its default.
func NewPaperRecord(arxivID string) PaperRecord {
	return PaperRecord{
		ArxivID:    arxivID,
		Title:      DefaultTitle(arxivID),
		Authors:    []string{},
		Abstract:   DefaultAbstract,
		Categories: []string{},
	}
}

// HasDetails reports whether any field differs from the defaults set by
// NewPaperRecord. A false result means nothing useful was recovered.
func (r PaperRecord) HasDetails() bool {
	return r.Title != DefaultTitle(r.ArxivID) ||
		r.Abstract != DefaultAbstract ||
		len(r.Authors) > 0 ||
		len(r.Categories) > 0 ||
		r.PublishedDate != "" ||
		r.PDFURL != "" ||
		r.EntryURL != "" ||
		r.JournalRef != "" ||
		r.DOI != ""
}

// LibraryRequest builds the library-save payload for this record.
func (r PaperRecord) LibraryRequest(tags []string, notes string) LibraryRequest {
	authors := r.Authors
	if authors == nil {
		authors = []string{}
	}
	return LibraryRequest{
		ArxivID:  r.ArxivID,
		Title:    r.Title,
		Authors:  authors,
		Abstract: r.Abstract,
		Tags:     tags,
		Notes:    notes,
	}
}
