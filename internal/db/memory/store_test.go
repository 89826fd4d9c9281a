package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aadb-project/aadb/internal/db"
)

func TestJSON_SetGetCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	data := []byte(`{"a":1}`)
	if err := s.JSONSet(ctx, "k", data); err != nil {
		t.Fatal(err)
	}
	data[2] = 'X'
	got, err := s.JSONGet(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("JSONGet() = %s", got)
	}
}

func TestJSONGet_NotFound(t *testing.T) {
	_, err := NewStore().JSONGet(context.Background(), "missing")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestJSONMGet_NilForMissing(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	errs := s.JSONSetMulti(ctx, []db.JSONSetItem{{Key: "a", Data: []byte(`1`)}, {Key: "c", Data: []byte(`3`)}})
	for _, err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
	docs, err := s.JSONMGet(ctx, []string{"a", "b", "c"})
	if err != nil {
		t.Fatal(err)
	}
	if string(docs[0]) != "1" || docs[1] != nil || string(docs[2]) != "3" {
		t.Errorf("docs = %q", docs)
	}
}

func TestSets(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.SAdd(ctx, "ids", "b", "a", "b")
	members, _ := s.SMembers(ctx, "ids")
	if len(members) != 2 || members[0] != "a" || members[1] != "b" {
		t.Errorf("SMembers() = %v", members)
	}
	if n, _ := s.SCard(ctx, "ids"); n != 2 {
		t.Errorf("SCard() = %d", n)
	}
	_ = s.SRem(ctx, "ids", "a", "b")
	if ok, _ := s.Exists(ctx, "ids"); ok {
		t.Error("emptied set should disappear")
	}
}

func TestIncrBy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	if n, _ := s.IncrBy(ctx, "views", 1); n != 1 {
		t.Errorf("first IncrBy = %d", n)
	}
	if n, _ := s.IncrBy(ctx, "views", 4); n != 5 {
		t.Errorf("second IncrBy = %d", n)
	}
	raw, _ := s.Get(ctx, "views")
	if string(raw) != "5" {
		t.Errorf("Get() = %s", raw)
	}
	_ = s.Set(ctx, "text", []byte("abc"))
	if _, err := s.IncrBy(ctx, "text", 1); err == nil {
		t.Error("expected error on non-numeric value")
	}
}

func TestDel_AllKinds(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.JSONSet(ctx, "doc", []byte(`{}`))
	_ = s.SAdd(ctx, "set", "x")
	_ = s.Set(ctx, "val", []byte("1"))
	_ = s.Del(ctx, "doc", "set", "val")
	for _, k := range []string{"doc", "set", "val"} {
		if ok, _ := s.Exists(ctx, k); ok {
			t.Errorf("%s still exists", k)
		}
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewStore().JSONSet(ctx, "k", []byte(`{}`))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestConcurrentIncr(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for range 50 {
		wg.Go(func() { _, _ = s.IncrBy(ctx, "c", 1) })
	}
	wg.Wait()
	raw, _ := s.Get(ctx, "c")
	if string(raw) != "50" {
		t.Errorf("counter = %s, want 50", raw)
	}
}
