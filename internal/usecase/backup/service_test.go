package backup

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aadb-project/aadb/internal/db/memory"
	"github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/repository/docstore"
)

// --- Mocks ---

type memObjects struct {
	mu        sync.Mutex
	objects   map[string]Object
	bodies    map[string][]byte
	putErr    error
	deleteErr error
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string]Object{}, bodies: map[string][]byte{}}
}

func (m *memObjects) Put(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = Object{Key: key, LastModified: time.Now(), Size: int64(len(body))}
	m.bodies[key] = body
	return nil
}

func (m *memObjects) List(_ context.Context, prefix string) ([]Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Object
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memObjects) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, key)
	delete(m.bodies, key)
	return nil
}

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }
func (brokenSource) Raw(context.Context) ([]json.RawMessage, error) {
	return nil, errors.New("store offline")
}

// --- Helpers ---

func seededRecords(t *testing.T, n int) *docstore.Collection[*record.Record] {
	t.Helper()
	coll := docstore.New[*record.Record](memory.NewStore(), "test:", "records")
	for i := range n {
		r := &record.Record{ID: string(rune('a' + i)), Disease: "d", Autoantibody: "ab", Autoantigen: "ag", Epitope: "e", UniprotID: "P1"}
		if err := coll.Insert(context.Background(), r); err != nil {
			t.Fatal(err)
		}
	}
	return coll
}

func steppingClock() func() time.Time {
	ts := time.Date(2024, 5, 1, 3, 0, 0, 0, time.UTC)
	return func() time.Time {
		ts = ts.Add(24 * time.Hour)
		return ts
	}
}

// --- Tests ---

func TestRun_UploadsDecodableSnapshot(t *testing.T) {
	store := newMemObjects()
	svc := New(store, "backups/", 3, seededRecords(t, 4)).WithClock(steppingClock())

	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(res.Key, "backups/aadb-2024-05-02T03-00-00Z") || !strings.HasSuffix(res.Key, ".json.gz") {
		t.Errorf("unexpected key %q", res.Key)
	}
	if res.Documents != 4 {
		t.Errorf("Documents = %d, want 4", res.Documents)
	}

	snap, err := Decode(store.bodies[res.Key])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := len(snap.Collections["records"]); got != 4 {
		t.Errorf("records in snapshot = %d, want 4", got)
	}
	var first record.Record
	if err := json.Unmarshal(snap.Collections["records"][0], &first); err != nil {
		t.Fatal(err)
	}
	if first.ID != "a" {
		t.Errorf("first record id = %q, want a", first.ID)
	}
}

func TestRun_RotatesOldest(t *testing.T) {
	store := newMemObjects()
	svc := New(store, "backups/", 2, seededRecords(t, 1)).WithClock(steppingClock())
	ctx := context.Background()

	var keys []string
	for range 4 {
		res, err := svc.Run(ctx)
		if err != nil {
			t.Fatal(err)
		}
		keys = append(keys, res.Key)
	}

	if len(store.objects) != 2 {
		t.Fatalf("kept %d snapshots, want 2", len(store.objects))
	}
	for _, k := range keys[2:] {
		if _, ok := store.objects[k]; !ok {
			t.Errorf("newest snapshot %s was removed", k)
		}
	}
}

func TestRun_RotationIgnoresOtherPrefixes(t *testing.T) {
	store := newMemObjects()
	_ = store.Put(context.Background(), "other/keep-me", []byte("x"))
	svc := New(store, "backups/", 1, seededRecords(t, 1)).WithClock(steppingClock())

	for range 3 {
		if _, err := svc.Run(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := store.objects["other/keep-me"]; !ok {
		t.Error("object outside the prefix was rotated")
	}
}

func TestRun_RotationKeepsForeignObjectsUnderPrefix(t *testing.T) {
	store := newMemObjects()
	ctx := context.Background()
	foreign := []string{
		"backups/README.txt",
		"backups/manual-dump.json.gz",
		"backups/aadb-not-a-date.json.gz",
		"backups/nested/aadb-2020-01-01T00-00-00Z.json.gz",
	}
	for _, k := range foreign {
		_ = store.Put(ctx, k, []byte("x"))
	}
	svc := New(store, "backups/", 1, seededRecords(t, 1)).WithClock(steppingClock())

	var last Result
	for range 3 {
		res, err := svc.Run(ctx)
		if err != nil {
			t.Fatal(err)
		}
		last = res
	}
	for _, k := range foreign {
		if _, ok := store.objects[k]; !ok {
			t.Errorf("foreign object %s was rotated", k)
		}
	}
	if _, ok := store.objects[last.Key]; !ok {
		t.Errorf("newest snapshot %s was removed", last.Key)
	}
	if len(store.objects) != len(foreign)+1 {
		t.Errorf("objects = %d, want %d", len(store.objects), len(foreign)+1)
	}
}

func TestRun_DeleteFailureDoesNotFail(t *testing.T) {
	store := newMemObjects()
	svc := New(store, "b/", 1, seededRecords(t, 1)).WithClock(steppingClock())
	ctx := context.Background()
	if _, err := svc.Run(ctx); err != nil {
		t.Fatal(err)
	}
	store.deleteErr = errors.New("denied")
	res, err := svc.Run(ctx)
	if err != nil {
		t.Fatalf("rotation failure should not fail the run: %v", err)
	}
	if len(res.Removed) != 0 {
		t.Errorf("Removed = %v, want none", res.Removed)
	}
}

func TestRun_Errors(t *testing.T) {
	t.Run("source", func(t *testing.T) {
		svc := New(newMemObjects(), "b/", 1, brokenSource{})
		if _, err := svc.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "dump broken") {
			t.Errorf("expected dump error, got %v", err)
		}
	})
	t.Run("upload", func(t *testing.T) {
		store := newMemObjects()
		store.putErr = errors.New("bucket missing")
		svc := New(store, "b/", 1, seededRecords(t, 1))
		if _, err := svc.Run(context.Background()); err == nil {
			t.Error("expected upload error")
		}
	})
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not gzip")); err == nil {
		t.Error("expected error")
	}
}
