package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/thavelick/just-type-it/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func TestInsertAndListSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := model.SessionRecord{
		StartedAt:  started,
		EndedAt:    started.Add(time.Minute),
		Source:     "A Book",
		TextLen:    120,
		Position:   120,
		Correct:    118,
		Total:      125,
		DurationMs: 60000,
		Completed:  true,
	}
	mistyped := []model.WordCount{{Word: "quick", Count: 2}}

	id, err := s.InsertSession(ctx, rec, mistyped)
	if err != nil {
		t.Fatalf("InsertSession failed: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive session id, got %d", id)
	}

	sessions, err := s.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	got := sessions[0]
	if !got.StartedAt.Equal(rec.StartedAt) || !got.EndedAt.Equal(rec.EndedAt) {
		t.Fatalf("timestamps differ: %+v", got)
	}
	if got.Source != rec.Source || got.Total != rec.Total || !got.Completed {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestListSessionsLastN(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := model.SessionRecord{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			EndedAt:   base.Add(time.Duration(i)*time.Hour + time.Minute),
			Source:    string(rune('a' + i)),
			Total:     i,
		}
		if _, err := s.InsertSession(ctx, rec, nil); err != nil {
			t.Fatalf("InsertSession failed: %v", err)
		}
	}

	sessions, err := s.ListSessions(ctx, 2)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	// Oldest first within the kept tail.
	if sessions[0].Source != "d" || sessions[1].Source != "e" {
		t.Fatalf("unexpected tail: %q, %q", sessions[0].Source, sessions[1].Source)
	}
}

func TestTopMistypedWordsAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	rec := model.SessionRecord{StartedAt: now, EndedAt: now}
	if _, err := s.InsertSession(ctx, rec, []model.WordCount{
		{Word: "fox", Count: 1},
		{Word: "quick", Count: 2},
	}); err != nil {
		t.Fatalf("InsertSession failed: %v", err)
	}
	rec.EndedAt = now.Add(time.Minute)
	if _, err := s.InsertSession(ctx, rec, []model.WordCount{
		{Word: "fox", Count: 3},
	}); err != nil {
		t.Fatalf("InsertSession failed: %v", err)
	}

	words, err := s.TopMistypedWords(ctx, 10)
	if err != nil {
		t.Fatalf("TopMistypedWords failed: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %v", words)
	}
	if words[0].Word != "fox" || words[0].Count != 4 {
		t.Fatalf("expected fox aggregated to 4, got %+v", words[0])
	}
	if words[1].Word != "quick" || words[1].Count != 2 {
		t.Fatalf("unexpected second word: %+v", words[1])
	}

	if none, err := s.TopMistypedWords(ctx, 0); err != nil || none != nil {
		t.Fatalf("expected nil for zero limit, got %v (%v)", none, err)
	}
}
