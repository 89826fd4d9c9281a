package docstore

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aadb-project/aadb/internal/db"
	"github.com/aadb-project/aadb/internal/domain"
	"github.com/aadb-project/aadb/internal/domain/search/filter"
)

// fetchChunk bounds the number of keys per JSON.MGET.
const fetchChunk = 500

// Document is a stored aggregate addressable by id and matchable by predicates.
type Document interface {
	filter.Fields
	DocID() string
}

// store is the consumer interface for collections (ISP).
type store interface {
	JSONSet(ctx context.Context, key string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) []error
	JSONGet(ctx context.Context, key string) ([]byte, error)
	JSONMGet(ctx context.Context, keys []string) ([][]byte, error)
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// FindOptions controls ordering and the result window.
type FindOptions[T any] struct {
	// Compare orders matches; nil orders by id.
	Compare func(a, b T) int
	Skip    int
	// Limit caps the window; <= 0 returns every match after Skip.
	Limit int
}

// Group is one distinct value and how many documents carry it.
type Group struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Collection stores JSON documents under <prefix><name>:<id> and tracks ids in
// the set <prefix><name>:ids. Predicates, ordering and aggregation run in-process
// over the loaded documents.
type Collection[T Document] struct {
	store  store
	prefix string
	name   string
}

// New creates a collection.
func New[T Document](s store, prefix, name string) *Collection[T] {
	return &Collection[T]{store: s, prefix: prefix, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) key(id string) string { return c.prefix + c.name + ":" + id }

func (c *Collection[T]) idsKey() string { return c.prefix + c.name + ":ids" }

// Find evaluates pred, orders the matches and returns the window plus the total match count.
func (c *Collection[T]) Find(ctx context.Context, pred filter.Predicate, opts FindOptions[T]) ([]T, int, error) {
	matches, err := c.match(ctx, pred)
	if err != nil {
		return nil, 0, err
	}

	compare := opts.Compare
	if compare == nil {
		compare = func(a, b T) int { return strings.Compare(a.DocID(), b.DocID()) }
	}
	slices.SortStableFunc(matches, compare)

	total := len(matches)
	start := min(max(opts.Skip, 0), total)
	end := total
	if opts.Limit > 0 {
		end = min(start+opts.Limit, total)
	}
	return matches[start:end], total, nil
}

// Count returns the number of documents matching pred.
func (c *Collection[T]) Count(ctx context.Context, pred filter.Predicate) (int, error) {
	if pred.IsEmpty() {
		n, err := c.store.SCard(ctx, c.idsKey())
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", c.name, err)
		}
		return int(n), nil
	}
	matches, err := c.match(ctx, pred)
	if err != nil {
		return 0, err
	}
	return len(matches), nil
}

// Distinct returns the distinct non-blank values of field among matches,
// ordered case-insensitively.
func (c *Collection[T]) Distinct(ctx context.Context, field string, pred filter.Predicate) ([]string, error) {
	groups, err := c.GroupCount(ctx, field, pred)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Value
	}
	slices.SortFunc(out, func(a, b string) int {
		if r := strings.Compare(strings.ToLower(a), strings.ToLower(b)); r != 0 {
			return r
		}
		return strings.Compare(a, b)
	})
	return out, nil
}

// GroupCount counts matches per distinct non-blank value of field, most frequent first.
func (c *Collection[T]) GroupCount(ctx context.Context, field string, pred filter.Predicate) ([]Group, error) {
	matches, err := c.match(ctx, pred)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, d := range matches {
		v := strings.TrimSpace(d.FieldValue(field))
		if v == "" {
			continue
		}
		counts[v]++
	}
	groups := make([]Group, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, Group{Value: v, Count: n})
	}
	slices.SortFunc(groups, func(a, b Group) int {
		if r := cmp.Compare(b.Count, a.Count); r != 0 {
			return r
		}
		return strings.Compare(a.Value, b.Value)
	})
	return groups, nil
}

// Get returns a document by id.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	raw, err := c.store.JSONGet(ctx, c.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return zero, fmt.Errorf("%s %s: %w", c.name, id, domain.ErrNotFound)
		}
		return zero, fmt.Errorf("get %s %s: %w", c.name, id, err)
	}
	return c.decode(id, raw)
}

// Insert stores a new document. An existing id fails with domain.ErrAlreadyExists.
func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	id := doc.DocID()
	exists, err := c.store.Exists(ctx, c.key(id))
	if err != nil {
		return fmt.Errorf("check exists %s %s: %w", c.name, id, err)
	}
	if exists {
		return fmt.Errorf("%s %s: %w", c.name, id, domain.ErrAlreadyExists)
	}
	return c.put(ctx, doc)
}

// InsertMany stores documents best-effort and returns one error slot per input.
// Documents written before a failure stay written.
func (c *Collection[T]) InsertMany(ctx context.Context, docs []T) []error {
	errs := make([]error, len(docs))
	items := make([]db.JSONSetItem, 0, len(docs))
	pos := make([]int, 0, len(docs))
	for i, d := range docs {
		data, err := json.Marshal(d)
		if err != nil {
			errs[i] = fmt.Errorf("marshal %s %s: %w", c.name, d.DocID(), err)
			continue
		}
		items = append(items, db.JSONSetItem{Key: c.key(d.DocID()), Data: data})
		pos = append(pos, i)
	}

	written := make([]string, 0, len(items))
	for j, err := range c.store.JSONSetMulti(ctx, items) {
		i := pos[j]
		if err != nil {
			errs[i] = fmt.Errorf("insert %s %s: %w", c.name, docs[i].DocID(), err)
			continue
		}
		written = append(written, docs[i].DocID())
	}

	if err := c.store.SAdd(ctx, c.idsKey(), written...); err != nil {
		for j := range pos {
			if errs[pos[j]] == nil {
				errs[pos[j]] = fmt.Errorf("index %s: %w", c.name, err)
			}
		}
	}
	return errs
}

// Replace overwrites an existing document.
func (c *Collection[T]) Replace(ctx context.Context, doc T) error {
	id := doc.DocID()
	exists, err := c.store.Exists(ctx, c.key(id))
	if err != nil {
		return fmt.Errorf("check exists %s %s: %w", c.name, id, err)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", c.name, id, domain.ErrNotFound)
	}
	return c.put(ctx, doc)
}

// Delete removes a document.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	key := c.key(id)
	exists, err := c.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s %s: %w", c.name, id, err)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", c.name, id, domain.ErrNotFound)
	}
	if err := c.store.Del(ctx, key); err != nil {
		return fmt.Errorf("delete %s %s: %w", c.name, id, err)
	}
	if err := c.store.SRem(ctx, c.idsKey(), id); err != nil {
		return fmt.Errorf("unindex %s %s: %w", c.name, id, err)
	}
	return nil
}

// All returns every document ordered by id.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	docs, _, err := c.Find(ctx, filter.All(), FindOptions[T]{})
	return docs, err
}

// Raw returns every stored document verbatim, ordered by id.
func (c *Collection[T]) Raw(ctx context.Context) ([]json.RawMessage, error) {
	ids, raws, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(ids))
	for i := range ids {
		if raws[i] != nil {
			out = append(out, raws[i])
		}
	}
	return out, nil
}

func (c *Collection[T]) put(ctx context.Context, doc T) error {
	id := doc.DocID()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s %s: %w", c.name, id, err)
	}
	if err := c.store.JSONSet(ctx, c.key(id), data); err != nil {
		return fmt.Errorf("json.set %s %s: %w", c.name, id, err)
	}
	if err := c.store.SAdd(ctx, c.idsKey(), id); err != nil {
		return fmt.Errorf("index %s %s: %w", c.name, id, err)
	}
	return nil
}

func (c *Collection[T]) match(ctx context.Context, pred filter.Predicate) ([]T, error) {
	ids, raws, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(ids))
	for i, id := range ids {
		// Ids whose document vanished between SMEMBERS and JSON.MGET are skipped.
		if raws[i] == nil {
			continue
		}
		d, err := c.decode(id, raws[i])
		if err != nil {
			return nil, err
		}
		if pred.Matches(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// load returns the sorted ids and their raw documents (nil when missing).
func (c *Collection[T]) load(ctx context.Context) ([]string, [][]byte, error) {
	ids, err := c.store.SMembers(ctx, c.idsKey())
	if err != nil {
		return nil, nil, fmt.Errorf("list %s ids: %w", c.name, err)
	}
	slices.Sort(ids)

	raws := make([][]byte, 0, len(ids))
	for chunk := range slices.Chunk(ids, fetchChunk) {
		keys := make([]string, len(chunk))
		for i, id := range chunk {
			keys[i] = c.key(id)
		}
		got, err := c.store.JSONMGet(ctx, keys)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", c.name, err)
		}
		raws = append(raws, got...)
	}
	return ids, raws, nil
}

func (c *Collection[T]) decode(id string, raw []byte) (T, error) {
	var d T
	if err := json.Unmarshal(raw, &d); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s %s: %w", c.name, id, err)
	}
	return d, nil
}
