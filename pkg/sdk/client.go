package aadb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aadb-project/aadb/internal/db"
	"github.com/aadb-project/aadb/internal/db/memory"
	dbRedis "github.com/aadb-project/aadb/internal/db/redis"
	dombio "github.com/aadb-project/aadb/internal/domain/biomarker"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/rank"
	"github.com/aadb-project/aadb/internal/domain/search/relevance"
	"github.com/aadb-project/aadb/internal/repository/docstore"
	biomarkeruc "github.com/aadb-project/aadb/internal/usecase/biomarker"
	healthuc "github.com/aadb-project/aadb/internal/usecase/health"
	recorduc "github.com/aadb-project/aadb/internal/usecase/record"
	searchuc "github.com/aadb-project/aadb/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the aadb SDK entry point.
type Client struct {
	store        db.Store
	records      recordUseCase
	recordSearch searcher[*domrec.Record]
	biomarkers   biomarkerUseCase
	bioSearch    searcher[*dombio.Biomarker]
	healthSvc    healthUseCase
	obs          *observer
}

// New creates a Client and connects to the store.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver == "" {
		return nil, errors.New("aadb: no store configured (use WithRedis or WithMemory)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("aadb: store not ready: %w", err)
	}

	return wireClient(store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case driverMemory:
		return memory.NewStore(), nil
	case driverRedis:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return nil, errors.New("aadb: redis address required")
		}
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("aadb: create redis store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("aadb: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	recs := docstore.New[*domrec.Record](store, cfg.keyPrefix, "records")
	bios := docstore.New[*dombio.Biomarker](store, cfg.keyPrefix, "biomarkers")

	recordSearch := searchuc.New[*domrec.Record]("records", recs, field.Records(), rank.ByPriority[*domrec.Record]).
		WithRelevance(relevance.Records(), [3]string{field.Disease, field.Autoantibody, field.Autoantigen})
	records := recorduc.New(recs, recordSearch)
	if cfg.exportMaxRows > 0 {
		records = records.WithExportLimit(cfg.exportMaxRows)
	}

	return &Client{
		store:        store,
		records:      records,
		recordSearch: recordSearch,
		biomarkers:   biomarkeruc.New(bios),
		bioSearch:    searchuc.New[*dombio.Biomarker]("biomarkers", bios, field.Biomarkers(), nil),
		healthSvc:    healthuc.New(store),
		obs:          obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	call := begin(collectionClient, "ping")
	defer func() { c.obs.finish(call, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Records returns the record service.
func (c *Client) Records() *RecordService {
	return &RecordService{svc: c.records, search: c.recordSearch, obs: c.obs}
}

// Biomarkers returns the biomarker service.
func (c *Client) Biomarkers() *BiomarkerService {
	return &BiomarkerService{svc: c.biomarkers, search: c.bioSearch, obs: c.obs}
}
