// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paper looks up a single paper by arXiv ID through the chat
// endpoint and turns the free-text reply into a types.PaperRecord.
package paper

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/da-ros/researchpal/internal/extract"
	"github.com/da-ros/researchpal/pkg/types"
)

// Chatter sends a single chat turn.
type Chatter interface {
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
}

// Saver stores a paper in the library.
type Saver interface {
	SaveToLibrary(ctx context.Context, req types.LibraryRequest) (types.MessageResponse, error)
}

// Service resolves paper details and saves papers to the library.
type Service struct {
	chat  Chatter
	saver Saver
}

// NewService returns a Service. The api.Client satisfies both interfaces.
func NewService(chat Chatter, saver Saver) *Service {
	return &Service{chat: chat, saver: saver}
}

// DetailsPrompt is the chat message used to ask for a paper's details.
func DetailsPrompt(arxivID string) string {
	return fmt.Sprintf("Get details about the paper with arXiv ID %s", arxivID)
}

// Details asks the assistant about arxivID and extracts a record from the
// reply. Only transport errors are returned; an unhelpful reply yields a
// record at its defaults.
func (s *Service) Details(ctx context.Context, arxivID string) (types.PaperRecord, error) {
	arxivID = strings.TrimSpace(arxivID)
	if arxivID == "" {
		return types.PaperRecord{}, fmt.Errorf("arXiv ID is required")
	}

	resp, err := s.chat.Chat(ctx, types.ChatRequest{Message: DetailsPrompt(arxivID)})
	if err != nil {
		return types.PaperRecord{}, fmt.Errorf("fetching details for %s: %w", arxivID, err)
	}
	return extract.Extract(resp.Response, arxivID), nil
}

// DefaultParallel bounds concurrent lookups in DetailsMany.
const DefaultParallel = 4

// DetailsMany looks up every ID with at most limit requests in flight and
// returns the records in input order. The first transport error cancels the
// remaining lookups and is returned.
func (s *Service) DetailsMany(ctx context.Context, arxivIDs []string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = DefaultParallel
	}
	records := make([]types.PaperRecord, len(arxivIDs))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, id := range arxivIDs {
		i, id := i, id
		eg.Go(func() error {
			rec, err := s.Details(gctx, id)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// Save stores rec in the library with the given tags and notes.
func (s *Service) Save(ctx context.Context, rec types.PaperRecord, tags []string, notes string) (types.MessageResponse, error) {
	resp, err := s.saver.SaveToLibrary(ctx, rec.LibraryRequest(tags, notes))
	if err != nil {
		return types.MessageResponse{}, fmt.Errorf("saving %s to library: %w", rec.ArxivID, err)
	}
	return resp, nil
}
