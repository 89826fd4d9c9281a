package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aadb-project/aadb/internal/db"
	"github.com/aadb-project/aadb/internal/db/memory"
	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
)

type item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Organ string `json:"organ"`
}

func (i *item) FieldValue(name string) string {
	switch name {
	case "name":
		return i.Name
	case "organ":
		return i.Organ
	}
	return ""
}

func (i *item) DocID() string { return i.ID }

func seed(t *testing.T, n int) (*Collection[*item], *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	c := New[*item](s, "test:", "items")
	for i := 1; i <= n; i++ {
		organ := "skin"
		if i%2 == 0 {
			organ = "kidney"
		}
		if err := c.Insert(context.Background(), &item{ID: fmt.Sprintf("%02d", i), Name: fmt.Sprintf("n%02d", i), Organ: organ}); err != nil {
			t.Fatal(err)
		}
	}
	return c, s
}

func TestFind_WindowAndTotal(t *testing.T) {
	c, _ := seed(t, 25)
	got, total, err := c.Find(context.Background(), filter.All(), FindOptions[*item]{Skip: 10, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	if len(got) != 10 || got[0].ID != "11" || got[9].ID != "20" {
		t.Errorf("window = %s..%s (%d)", got[0].ID, got[len(got)-1].ID, len(got))
	}
}

func TestFind_SkipBeyondEnd(t *testing.T) {
	c, _ := seed(t, 3)
	got, total, err := c.Find(context.Background(), filter.All(), FindOptions[*item]{Skip: 10, Limit: 5})
	if err != nil || len(got) != 0 || total != 3 {
		t.Errorf("got %d items, total %d, err %v", len(got), total, err)
	}
}

func TestFind_PredicateAndCompare(t *testing.T) {
	c, _ := seed(t, 6)
	pred := filter.Match(filter.Exact("organ", "SKIN"))
	desc := func(a, b *item) int { return strings.Compare(b.Name, a.Name) }
	got, total, err := c.Find(context.Background(), pred, FindOptions[*item]{Compare: desc})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || got[0].ID != "05" || got[2].ID != "01" {
		t.Errorf("got %v total %d", ids(got), total)
	}
}

func TestCount(t *testing.T) {
	c, _ := seed(t, 5)
	ctx := context.Background()
	if n, _ := c.Count(ctx, filter.All()); n != 5 {
		t.Errorf("Count(all) = %d", n)
	}
	if n, _ := c.Count(ctx, filter.Match(filter.Exact("organ", "kidney"))); n != 2 {
		t.Errorf("Count(kidney) = %d", n)
	}
}

func TestDistinctAndGroupCount(t *testing.T) {
	c, _ := seed(t, 5)
	ctx := context.Background()
	_ = c.Insert(ctx, &item{ID: "99", Name: "blank", Organ: "  "})

	vals, err := c.Distinct(ctx, "organ", filter.All())
	if err != nil {
		t.Fatal(err)
	}
	if len(vals) != 2 || vals[0] != "kidney" || vals[1] != "skin" {
		t.Errorf("Distinct() = %v", vals)
	}

	groups, _ := c.GroupCount(ctx, "organ", filter.All())
	if len(groups) != 2 || groups[0] != (Group{"skin", 3}) || groups[1] != (Group{"kidney", 2}) {
		t.Errorf("GroupCount() = %v", groups)
	}
}

func TestInsert_Duplicate(t *testing.T) {
	c, _ := seed(t, 1)
	err := c.Insert(context.Background(), &item{ID: "01"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetReplaceDelete(t *testing.T) {
	c, _ := seed(t, 2)
	ctx := context.Background()

	got, err := c.Get(ctx, "01")
	if err != nil || got.Name != "n01" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}
	got.Name = "renamed"
	if err := c.Replace(ctx, got); err != nil {
		t.Fatal(err)
	}
	again, _ := c.Get(ctx, "01")
	if again.Name != "renamed" {
		t.Errorf("Name = %q", again.Name)
	}

	if err := c.Replace(ctx, &item{ID: "nope"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Replace missing: %v", err)
	}
	if err := c.Delete(ctx, "01"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "01"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := c.Delete(ctx, "01"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("double delete: %v", err)
	}
	if n, _ := c.Count(ctx, filter.All()); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

// failingStore fails JSON.SET for one key.
type failingStore struct {
	*memory.Store
	failKey string
}

func (f *failingStore) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) []error {
	errs := f.Store.JSONSetMulti(ctx, items)
	for i, it := range items {
		if it.Key == f.failKey {
			errs[i] = errors.New("boom")
			_ = f.Store.Del(ctx, it.Key)
		}
	}
	return errs
}

func TestInsertMany_BestEffort(t *testing.T) {
	s := &failingStore{Store: memory.NewStore(), failKey: "t:items:b"}
	c := New[*item](s, "t:", "items")
	errs := c.InsertMany(context.Background(), []*item{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	if errs[0] != nil || errs[1] == nil || errs[2] != nil {
		t.Fatalf("errs = %v", errs)
	}
	all, err := c.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(all); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("stored = %v", got)
	}
}

func TestRaw(t *testing.T) {
	c, _ := seed(t, 2)
	raws, err := c.Raw(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(raws) != 2 || !strings.Contains(string(raws[0]), `"id":"01"`) {
		t.Errorf("Raw() = %s", raws)
	}
}

func TestDecodeError(t *testing.T) {
	c, s := seed(t, 0)
	ctx := context.Background()
	_ = s.JSONSet(ctx, "test:items:bad", []byte(`not json`))
	_ = s.SAdd(ctx, "test:items:ids", "bad")
	if _, err := c.All(ctx); err == nil {
		t.Error("expected decode error")
	}
}

func ids(items []*item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
