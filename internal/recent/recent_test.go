// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/da-ros/researchpal/internal/storage"
)

// --- test helpers ---

func testStore(t *testing.T, opts ...Option) (*Store, *storage.Store) {
	t.Helper()
	kv, err := storage.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return New(kv, opts...), kv
}

// tickingClock returns a clock that advances one second per call.
func tickingClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

// failingKV fails every operation.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error        { return f.err }
func (f failingKV) Remove(context.Context, string) error             { return f.err }

func topics(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Topic
	}
	return out
}

// --- tests ---

func TestList_EmptyWhenAbsent(t *testing.T) {
	s, _ := testStore(t)
	got := s.List()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAdd_ThenListRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := testStore(t, WithClock(func() time.Time { return now }))

	s.Add("transformers", 5)

	got := s.List()
	require.Len(t, got, 1)
	assert.Equal(t, "transformers", got[0].Topic)
	assert.Equal(t, 5, got[0].Count)
	assert.Equal(t, now.UnixMilli(), got[0].Timestamp)
	assert.True(t, got[0].Time().Equal(now))
}

func TestAdd_SameTopicMovesToFront(t *testing.T) {
	s, _ := testStore(t, WithClock(tickingClock(time.Unix(0, 0))))

	s.Add("a", 1)
	s.Add("b", 2)
	s.Add("a", 7)

	got := s.List()
	assert.Equal(t, []string{"a", "b"}, topics(got))
	assert.Equal(t, 7, got[0].Count, "re-added entry carries the new count")
}

func TestAdd_TopicMatchIsCaseSensitive(t *testing.T) {
	s, _ := testStore(t)

	s.Add("BERT", 1)
	s.Add("bert", 1)

	assert.Equal(t, []string{"bert", "BERT"}, topics(s.List()))
}

func TestAdd_EvictsOldestBeyondMax(t *testing.T) {
	s, _ := testStore(t, WithClock(tickingClock(time.Unix(0, 0))))

	for i := 1; i <= 11; i++ {
		s.Add(fmt.Sprintf("topic-%d", i), i)
	}

	got := s.List()
	require.Len(t, got, DefaultMax)
	assert.Equal(t, "topic-11", got[0].Topic)
	assert.Equal(t, "topic-2", got[len(got)-1].Topic)
	assert.NotContains(t, topics(got), "topic-1")
}

func TestWithMax(t *testing.T) {
	s, _ := testStore(t, WithMax(2))

	s.Add("a", 0)
	s.Add("b", 0)
	s.Add("c", 0)

	assert.Equal(t, []string{"c", "b"}, topics(s.List()))
}

func TestClear(t *testing.T) {
	s, _ := testStore(t)
	s.Add("a", 1)
	s.Add("b", 1)

	s.Clear()

	assert.Empty(t, s.List())
}

func TestList_CorruptValueIsEmpty(t *testing.T) {
	var warn bytes.Buffer
	s, kv := testStore(t, WithWarnings(&warn))
	require.NoError(t, kv.Set(context.Background(), StorageKey, "{not json"))

	got := s.List()
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Contains(t, warn.String(), "warning:")
}

func TestAdd_OverwritesCorruptValue(t *testing.T) {
	s, kv := testStore(t)
	require.NoError(t, kv.Set(context.Background(), StorageKey, `"a string, not a list"`))

	s.Add("fresh", 3)

	assert.Equal(t, []string{"fresh"}, topics(s.List()))
}

func TestList_NullValueIsEmpty(t *testing.T) {
	s, kv := testStore(t)
	require.NoError(t, kv.Set(context.Background(), StorageKey, "null"))
	got := s.List()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPersistedFormat(t *testing.T) {
	s, kv := testStore(t, WithClock(func() time.Time { return time.UnixMilli(1700000000000) }))
	s.Add("graph neural networks", 4)

	raw, ok, err := kv.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"topic":"graph neural networks","count":4,"timestamp":1700000000000}]`, raw)
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	var warn bytes.Buffer
	s := New(failingKV{err: errors.New("quota exceeded")}, WithWarnings(&warn))

	assert.NotPanics(t, func() {
		s.Add("x", 1)
		s.Clear()
	})
	assert.Empty(t, s.List())
	assert.Contains(t, warn.String(), "quota exceeded")
}
