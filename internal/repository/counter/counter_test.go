package counter

import (
	"context"
	"errors"
	"testing"

	"github.com/aadb-project/aadb/internal/db"
	"github.com/aadb-project/aadb/internal/db/memory"
)

func TestIncrAndValue(t *testing.T) {
	r := New(memory.NewStore(), "aadb:", "articles")
	ctx := context.Background()

	if v, err := r.Value(ctx, "a1", "views"); err != nil || v != 0 {
		t.Fatalf("Value() = %d, %v", v, err)
	}
	for range 3 {
		if _, err := r.Incr(ctx, "a1", "views"); err != nil {
			t.Fatal(err)
		}
	}
	if v, _ := r.Value(ctx, "a1", "views"); v != 3 {
		t.Errorf("views = %d, want 3", v)
	}
	if v, _ := r.Value(ctx, "a1", "likes"); v != 0 {
		t.Errorf("likes = %d, want 0", v)
	}
}

func TestDrop(t *testing.T) {
	s := memory.NewStore()
	r := New(s, "aadb:", "articles")
	ctx := context.Background()
	_, _ = r.Incr(ctx, "a1", "views")
	_, _ = r.Incr(ctx, "a1", "likes")
	if err := r.Drop(ctx, "a1", "views", "likes"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Exists(ctx, "aadb:articles:a1:views"); ok {
		t.Error("views counter should be gone")
	}
}

type errStore struct{}

func (errStore) Get(context.Context, string) ([]byte, error) {
	return nil, &db.Error{Op: db.OpGet, Err: errors.New("down")}
}
func (errStore) IncrBy(context.Context, string, int64) (int64, error) {
	return 0, &db.Error{Op: db.OpIncrBy, Err: errors.New("down")}
}
func (errStore) Del(context.Context, ...string) error { return nil }

func TestErrorsWrapped(t *testing.T) {
	r := New(errStore{}, "", "articles")
	var dbErr *db.Error
	if _, err := r.Incr(context.Background(), "a", "views"); !errors.As(err, &dbErr) {
		t.Errorf("Incr err = %v", err)
	}
	if _, err := r.Value(context.Background(), "a", "views"); !errors.As(err, &dbErr) {
		t.Errorf("Value err = %v", err)
	}
}
