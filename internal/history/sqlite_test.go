package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/math-master/backend/internal/domain/mocktest"
	"github.com/math-master/backend/internal/history"
)

func sampleResult(testID string, score int) mocktest.Result {
	return mocktest.Result{
		TestID:           testID,
		TestTitle:        "Sample Test",
		Score:            score,
		CorrectCount:     score / 10,
		TotalQuestions:   5,
		AccuracyPercent:  score,
		TimeSpentSeconds: 120,
		TopicPerformance: map[mocktest.Topic]mocktest.TopicScore{
			mocktest.TopicNumbers: {Correct: 2, Total: 3},
		},
		Strengths:        []string{"Arithmetic"},
		Weaknesses:       []string{"Geometry"},
		Recommendations:  []string{"Practice more: Geometry"},
		PerformanceLevel: "Good",
		PacingVerdict:    "Good time management",
		CompletedAt:      time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newStore(t *testing.T) *history.SQLiteStore {
	t.Helper()
	store, err := history.NewSQLite(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_SaveAndList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", sampleResult("t1", 40)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "alice", sampleResult("t2", 80)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	results, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	// Most recent first.
	if results[0].TestID != "t2" || results[1].TestID != "t1" {
		t.Errorf("wrong order: %q then %q", results[0].TestID, results[1].TestID)
	}

	// The full result survives the round trip.
	got := results[1]
	if got.Score != 40 {
		t.Errorf("expected score 40, got %d", got.Score)
	}
	if got.TopicPerformance[mocktest.TopicNumbers].Total != 3 {
		t.Errorf("topic performance lost: %v", got.TopicPerformance)
	}
	if len(got.Recommendations) != 1 {
		t.Errorf("recommendations lost: %v", got.Recommendations)
	}
	if !got.CompletedAt.Equal(time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("completed at lost: %v", got.CompletedAt)
	}
}

func TestSQLiteStore_KeepsDuplicateAttempts(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	// Two attempts at the same test are both history entries.
	for i := 0; i < 2; i++ {
		if err := store.Save(ctx, "alice", sampleResult("t1", 60)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	results, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected both attempts to be kept, got %d", len(results))
	}
}

func TestSQLiteStore_ScopesByUsername(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "alice", sampleResult("t1", 50)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "bob", sampleResult("t2", 90)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	results, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(results) != 1 || results[0].TestID != "t1" {
		t.Errorf("expected only alice's result, got %v", results)
	}

	empty, err := store.List(ctx, "carol")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no results for an unknown user, got %d", len(empty))
	}
}
