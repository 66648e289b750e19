// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the researchpal client:
// the remote API wire format, the extracted PaperRecord, and configuration.
package types

// ChatRequest is the body of POST /api/chat. An empty SessionID asks the
// server to start a new conversation.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse carries the assistant reply and the conversation's session ID.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// SearchRequest is the body of POST /api/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchResponse lists the papers found for a query.
type SearchResponse struct {
	Papers []Paper `json:"papers"`
	Total  int     `json:"total"`
}

// Paper is a search hit as returned by the remote API.
type Paper struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Authors  []string `json:"authors" yaml:"authors"`
	Abstract string   `json:"abstract" yaml:"abstract"`
	Subjects []string `json:"subjects" yaml:"subjects"`
	Date     string   `json:"date" yaml:"date"`
	ArxivID  string   `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
}

// LibraryPaper is a paper saved in the user's library.
type LibraryPaper struct {
	ID        string   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Authors   []string `json:"authors" yaml:"authors"`
	Abstract  string   `json:"abstract" yaml:"abstract"`
	ArxivID   string   `json:"arxiv_id" yaml:"arxiv_id"`
	DateAdded string   `json:"date_added" yaml:"date_added"`
	Tags      []string `json:"tags" yaml:"tags"`
	Notes     string   `json:"notes" yaml:"notes"`
}

// LibraryRequest is the body of POST /api/library.
type LibraryRequest struct {
	ArxivID  string   `json:"arxiv_id"`
	Title    string   `json:"title"`
	Authors  []string `json:"authors"`
	Abstract string   `json:"abstract"`
	Tags     []string `json:"tags,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// LibraryResponse lists the papers in the library.
type LibraryResponse struct {
	Papers []LibraryPaper `json:"papers"`
	Total  int            `json:"total"`
}

// MessageResponse acknowledges a library save or removal.
type MessageResponse struct {
	Message string `json:"message"`
	ArxivID string `json:"arxiv_id"`
}
