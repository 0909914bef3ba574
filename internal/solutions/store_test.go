package solutions

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/san-kum/tokasim/internal/reactor"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "solutions.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func candidate(id string, score float64) Candidate {
	return Candidate{
		ID:            id,
		Method:        "random",
		Score:         score,
		OperationTime: 600.0,
		Config:        reactor.DefaultConfig(),
	}
}

func TestInitRequiresPath(t *testing.T) {
	store := NewStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Error("expected an error for an empty path")
	}
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	want := candidate("abc", 150.0)
	want.Failed = true
	want.FailureCause = "Safety factor too low (plasma instability)"
	if err := store.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("candidate not found")
	}
	if got.Score != want.Score || got.Method != want.Method {
		t.Errorf("candidate did not round-trip: %+v", got)
	}
	if got.FailureCause != want.FailureCause {
		t.Errorf("expected cause %q, got %q", want.FailureCause, got.FailureCause)
	}
	if got.Config != want.Config {
		t.Error("config did not round-trip")
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected a timestamp to be assigned")
	}
}

func TestGetMissing(t *testing.T) {
	store := testStore(t)
	_, ok, err := store.Get(context.Background(), "nope")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected a miss")
	}
}

func TestSaveUpserts(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	if err := store.Save(ctx, candidate("abc", 100.0)); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, candidate("abc", 200.0)); err != nil {
		t.Fatal(err)
	}

	got, ok, err := store.Get(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("get failed: %v", err)
	}
	if got.Score != 200.0 {
		t.Errorf("expected the updated score, got %g", got.Score)
	}

	best, err := store.Best(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(best) != 1 {
		t.Errorf("upsert should not duplicate rows, got %d", len(best))
	}
}

func TestBestOrdersByScore(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	for _, c := range []Candidate{
		candidate("low", 10.0),
		candidate("high", 300.0),
		candidate("mid", 150.0),
	} {
		if err := store.Save(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	best, err := store.Best(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(best) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(best))
	}
	if best[0].ID != "high" || best[1].ID != "mid" {
		t.Errorf("wrong order: %s, %s", best[0].ID, best[1].ID)
	}
}

func TestUninitializedStore(t *testing.T) {
	store := NewStore("unused.db")
	if err := store.Save(context.Background(), candidate("x", 1)); err == nil {
		t.Error("expected an error before Init")
	}
}
