package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/logger"
	"github.com/aadb-project/aadb/internal/metrics"
	"github.com/aadb-project/aadb/internal/version"
)

const (
	keyLayout    = "2006-01-02T15-04-05Z"
	snapshotHead = "aadb-"
	snapshotTail = ".json.gz"
)

// Snapshot is the decompressed content of one backup object.
type Snapshot struct {
	CreatedAt   time.Time                    `json:"createdAt"`
	Version     string                       `json:"version"`
	Collections map[string][]json.RawMessage `json:"collections"`
}

// Result describes a finished backup run.
type Result struct {
	Key       string   `json:"key"`
	Bytes     int      `json:"bytes"`
	Documents int      `json:"documents"`
	Removed   []string `json:"removed,omitempty"`
}

// Service dumps every collection into a gzip-compressed JSON object and
// keeps only the newest snapshots.
type Service struct {
	sources []Source
	store   ObjectStore
	prefix  string
	keep    int
	now     func() time.Time
}

// New creates a backup service.
func New(store ObjectStore, prefix string, keep int, sources ...Source) *Service {
	if keep < 1 {
		keep = 1
	}
	return &Service{sources: sources, store: store, prefix: prefix, keep: keep, now: time.Now}
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Run takes a snapshot, uploads it and rotates old snapshots.
// Rotation failures are logged and do not fail the run.
func (s *Service) Run(ctx context.Context) (Result, error) {
	res, err := s.run(ctx)
	if err != nil {
		metrics.BackupRunsTotal.WithLabelValues("error").Inc()
		logger.FromContext(ctx).Error("backup failed", zap.Error(err))
		return Result{}, err
	}
	metrics.BackupRunsTotal.WithLabelValues("ok").Inc()
	metrics.BackupBytes.Set(float64(res.Bytes))
	logger.FromContext(ctx).Info("backup uploaded",
		zap.String("key", res.Key),
		zap.Int("bytes", res.Bytes),
		zap.Int("documents", res.Documents),
		zap.Int("removed", len(res.Removed)),
	)
	return res, nil
}

func (s *Service) run(ctx context.Context) (Result, error) {
	now := s.now().UTC()
	snap := Snapshot{
		CreatedAt:   now,
		Version:     version.Version,
		Collections: make(map[string][]json.RawMessage, len(s.sources)),
	}
	docs := 0
	for _, src := range s.sources {
		raws, err := src.Raw(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("dump %s: %w", src.Name(), err)
		}
		snap.Collections[src.Name()] = raws
		docs += len(raws)
	}

	body, err := encode(snap)
	if err != nil {
		return Result{}, err
	}

	key := s.prefix + snapshotHead + now.Format(keyLayout) + snapshotTail
	if err := s.store.Put(ctx, key, body); err != nil {
		return Result{}, fmt.Errorf("upload %s: %w", key, err)
	}

	return Result{Key: key, Bytes: len(body), Documents: docs, Removed: s.rotate(ctx)}, nil
}

// rotate deletes every snapshot past the newest keep. Only keys this service
// writes (<prefix>aadb-<timestamp>.json.gz) are considered; other objects under
// the prefix are left alone.
func (s *Service) rotate(ctx context.Context) []string {
	log := logger.FromContext(ctx)
	objects, err := s.store.List(ctx, s.prefix)
	if err != nil {
		log.Warn("list backups for rotation", zap.Error(err))
		return nil
	}

	type snapshot struct {
		key   string
		taken time.Time
	}
	snaps := make([]snapshot, 0, len(objects))
	for _, obj := range objects {
		if taken, ok := s.snapshotTime(obj.Key); ok {
			snaps = append(snaps, snapshot{key: obj.Key, taken: taken})
		}
	}
	if len(snaps) <= s.keep {
		return nil
	}
	slices.SortFunc(snaps, func(a, b snapshot) int {
		if c := b.taken.Compare(a.taken); c != 0 {
			return c
		}
		return strings.Compare(b.key, a.key)
	})

	var removed []string
	for _, obj := range snaps[s.keep:] {
		if err := s.store.Delete(ctx, obj.key); err != nil {
			log.Warn("delete old backup", zap.String("key", obj.key), zap.Error(err))
			continue
		}
		removed = append(removed, obj.key)
	}
	return removed
}

// snapshotTime parses the timestamp out of a key written by run.
func (s *Service) snapshotTime(key string) (time.Time, bool) {
	name, ok := strings.CutPrefix(key, s.prefix)
	if !ok {
		return time.Time{}, false
	}
	name, ok = strings.CutPrefix(name, snapshotHead)
	if !ok {
		return time.Time{}, false
	}
	stamp, ok := strings.CutSuffix(name, snapshotTail)
	if !ok {
		return time.Time{}, false
	}
	taken, err := time.Parse(keyLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return taken, true
}

func encode(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(snap); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads a snapshot written by Run.
func Decode(body []byte) (Snapshot, error) {
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer zr.Close()

	var snap Snapshot
	if err := json.NewDecoder(zr).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
