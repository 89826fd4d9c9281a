package memory

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/aadb-project/aadb/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store is an in-process db.Store for local runs and tests. Values are copied
// on the way in and out.
type Store struct {
	mu     sync.RWMutex
	docs   map[string][]byte
	sets   map[string]map[string]struct{}
	values map[string][]byte
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		docs:   make(map[string][]byte),
		sets:   make(map[string]map[string]struct{}),
		values: make(map[string][]byte),
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// JSONSet stores a document.
func (s *Store) JSONSet(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpJSONSet, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = slices.Clone(data)
	return nil
}

// JSONSetMulti stores documents; per-item errors only arise from cancellation.
func (s *Store) JSONSetMulti(ctx context.Context, items []db.JSONSetItem) []error {
	if len(items) == 0 {
		return nil
	}
	errs := make([]error, len(items))
	for i, item := range items {
		errs[i] = s.JSONSet(ctx, item.Key, item.Data)
	}
	return errs
}

// JSONGet returns a copy of a document.
func (s *Store) JSONGet(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpJSONGet, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return slices.Clone(data), nil
}

// JSONMGet returns one slot per key; missing keys yield nil.
func (s *Store) JSONMGet(ctx context.Context, keys []string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpJSONMGet, Err: err}
	}
	if len(keys) == 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if data, ok := s.docs[k]; ok {
			out[i] = slices.Clone(data)
		}
	}
	return out, nil
}

// Del removes keys of any kind.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.docs, k)
		delete(s.sets, k)
		delete(s.values, k)
	}
	return nil
}

// Exists checks if a key of any kind exists.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &db.Error{Op: db.OpExists, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, doc := s.docs[key]
	_, set := s.sets[key]
	_, val := s.values[key]
	return doc || set || val, nil
}

// SAdd adds members to a set.
func (s *Store) SAdd(ctx context.Context, key string, members ...string) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpSAdd, Err: err}
	}
	if len(members) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{}, len(members))
		s.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

// SRem removes members; an emptied set disappears.
func (s *Store) SRem(ctx context.Context, key string, members ...string) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpSRem, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.sets[key]
	for _, m := range members {
		delete(set, m)
	}
	if len(set) == 0 {
		delete(s.sets, key)
	}
	return nil
}

// SMembers returns the members in sorted order.
func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpSMembers, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.sets[key]
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	slices.Sort(out)
	return out, nil
}

// SCard returns the set size.
func (s *Store) SCard(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &db.Error{Op: db.OpSCard, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.sets[key])), nil
}

// Get returns a plain value.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

// Set stores a plain value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	return nil
}

// IncrBy increments a decimal counter, creating it at 0.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &db.Error{Op: db.OpIncrBy, Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var cur int64
	if raw, ok := s.values[key]; ok {
		n, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0, &db.Error{Op: db.OpIncrBy, Err: err}
		}
		cur = n
	}
	cur += val
	s.values[key] = []byte(strconv.FormatInt(cur, 10))
	return cur, nil
}
