// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recent remembers the most recent distinct search topics in
// client-local storage. Storage failures never reach the caller: an
// unreadable or corrupt value lists as empty and failed writes are dropped
// with a warning.
package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/da-ros/researchpal/internal/storage"
)

const (
	// StorageKey is the single storage key holding the JSON-encoded list.
	StorageKey = "recent_searches"

	// DefaultMax is the number of topics remembered.
	DefaultMax = 10
)

// Entry is one remembered search. Timestamp is Unix milliseconds.
type Entry struct {
	Topic     string `json:"topic" yaml:"topic"`
	Count     int    `json:"count" yaml:"count"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
}

// Time returns the entry timestamp as a time.Time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Store is the recent-searches cache.
type Store struct {
	kv   storage.KV
	max  int
	now  func() time.Time
	warn io.Writer

	// mu serializes the read-modify-write in Add.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithMax overrides the number of topics remembered.
func WithMax(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithClock overrides the time source used for entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithWarnings sets the writer that receives swallowed storage errors.
func WithWarnings(w io.Writer) Option {
	return func(s *Store) { s.warn = w }
}

// New returns a Store persisting to kv.
func New(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:   kv,
		max:  DefaultMax,
		now:  time.Now,
		warn: io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the remembered searches, most recent first. It returns an
// empty slice when nothing is stored or the stored value cannot be read.
func (s *Store) List() []Entry {
	entries, err := s.load()
	if err != nil {
		fmt.Fprintf(s.warn, "warning: reading recent searches: %v\n", err)
		return []Entry{}
	}
	return entries
}

// Add records a search for topic with count results. An existing entry with
// the same topic (exact, case-sensitive match) is replaced by the new one at
// the front; the list is then truncated to the configured maximum.
func (s *Store) Add(topic string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		fmt.Fprintf(s.warn, "warning: reading recent searches: %v\n", err)
		current = nil
	}

	next := make([]Entry, 0, s.max)
	next = append(next, Entry{Topic: topic, Count: count, Timestamp: s.now().UnixMilli()})
	for _, e := range current {
		if len(next) == s.max {
			break
		}
		if e.Topic == topic {
			continue
		}
		next = append(next, e)
	}

	data, err := json.Marshal(next)
	if err != nil {
		fmt.Fprintf(s.warn, "warning: failed to save recent search: %v\n", err)
		return
	}
	if err := s.kv.Set(context.Background(), StorageKey, string(data)); err != nil {
		fmt.Fprintf(s.warn, "warning: failed to save recent search: %v\n", err)
	}
}

// Clear forgets every remembered search.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(context.Background(), StorageKey); err != nil {
		fmt.Fprintf(s.warn, "warning: failed to clear recent searches: %v\n", err)
	}
}

func (s *Store) load() ([]Entry, error) {
	raw, ok, err := s.kv.Get(context.Background(), StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", StorageKey, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
