package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aadb-project/aadb/internal/config"
	"github.com/aadb-project/aadb/internal/db"
	"github.com/aadb-project/aadb/internal/db/memory"
	dbRedis "github.com/aadb-project/aadb/internal/db/redis"
	domart "github.com/aadb-project/aadb/internal/domain/article"
	dombio "github.com/aadb-project/aadb/internal/domain/biomarker"
	domrec "github.com/aadb-project/aadb/internal/domain/record"
	"github.com/aadb-project/aadb/internal/domain/search/field"
	"github.com/aadb-project/aadb/internal/domain/search/rank"
	"github.com/aadb-project/aadb/internal/domain/search/relevance"
	"github.com/aadb-project/aadb/internal/domain/search/request"
	domsub "github.com/aadb-project/aadb/internal/domain/submission"
	logpkg "github.com/aadb-project/aadb/internal/logger"
	"github.com/aadb-project/aadb/internal/repository/counter"
	"github.com/aadb-project/aadb/internal/repository/docstore"
	chiTransport "github.com/aadb-project/aadb/internal/transport/chi"
	"github.com/aadb-project/aadb/internal/transport/objectstore"
	articleuc "github.com/aadb-project/aadb/internal/usecase/article"
	backupuc "github.com/aadb-project/aadb/internal/usecase/backup"
	biomarkeruc "github.com/aadb-project/aadb/internal/usecase/biomarker"
	dashboarduc "github.com/aadb-project/aadb/internal/usecase/dashboard"
	healthuc "github.com/aadb-project/aadb/internal/usecase/health"
	recorduc "github.com/aadb-project/aadb/internal/usecase/record"
	searchuc "github.com/aadb-project/aadb/internal/usecase/search"
	submissionuc "github.com/aadb-project/aadb/internal/usecase/submission"
)

// app is the composition root shared by serve and backup.
type app struct {
	env      string
	cfg      config.Config
	log      *zap.Logger
	store    db.Store
	services chiTransport.Services
}

// loadConfig reads config/<env>.yaml and builds the process logger.
func loadConfig(env string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}

func newApp(ctx context.Context, env string) (*app, error) {
	cfg, log, err := loadConfig(env)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	log.Info("Connected to database", zap.String("db_driver", cfg.Database.Driver))

	a := &app{env: env, cfg: cfg, log: log, store: store}
	if err := a.wire(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// openStore creates the configured store and waits for it to answer.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverRedis:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	default:
		store = memory.NewStore()
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

func (a *app) wire(ctx context.Context) error {
	prefix := a.cfg.Storage.KeyPrefix
	sc := a.cfg.Search
	list := request.Limits{Default: sc.DefaultPageSize, Max: sc.MaxPageSize}

	recs := docstore.New[*domrec.Record](a.store, prefix, "records")
	subs := docstore.New[*domsub.Submission](a.store, prefix, "submissions")
	bios := docstore.New[*dombio.Biomarker](a.store, prefix, "biomarkers")
	arts := docstore.New[*domart.Article](a.store, prefix, "articles")

	recordSearch := searchuc.New[*domrec.Record]("records", recs, field.Records(), rank.ByPriority[*domrec.Record]).
		WithRelevance(relevance.Records(), [3]string{field.Disease, field.Autoantibody, field.Autoantigen})
	articleSearch := searchuc.New[*domart.Article]("articles", arts, field.Articles(), domart.NewestFirst)

	health := healthuc.New(a.store)
	svc := chiTransport.Services{
		Records:         recorduc.New(recs, recordSearch).WithExportLimit(sc.ExportMaxRows),
		RecordSearch:    recordSearch,
		Submissions:     submissionuc.New(subs, recs).WithLimits(list),
		Biomarkers:      biomarkeruc.New(bios),
		BiomarkerSearch: searchuc.New[*dombio.Biomarker]("biomarkers", bios, field.Biomarkers(), nil),
		Articles:        articleuc.New(arts, counter.New(a.store, prefix, "articles"), articleSearch).WithLimits(list),
		Dashboard:       dashboarduc.New(recs, subs, bios, arts),
		Health:          health,
	}

	if bc := a.cfg.Backup; bc.Enabled {
		objects, err := objectstore.New(ctx, objectstore.Config{
			Bucket:    bc.Bucket,
			Endpoint:  bc.Endpoint,
			Region:    bc.Region,
			AccessKey: bc.AccessKey,
			SecretKey: bc.SecretKey,
		})
		if err != nil {
			return fmt.Errorf("create backup storage: %w", err)
		}
		svc.Backup = backupuc.New(objects, bc.Prefix, bc.Keep, recs, subs, bios, arts)
		health.WithStorage(objects)
		a.log.Info("Backups enabled",
			zap.String("bucket", bc.Bucket),
			zap.String("prefix", bc.Prefix),
			zap.String("schedule", bc.Schedule),
			zap.Int("keep", bc.Keep),
		)
	}

	a.services = svc
	return nil
}

// authKeys maps configured bearer keys onto transport keys.
func (a *app) authKeys() []chiTransport.Key {
	keys := make([]chiTransport.Key, 0, len(a.cfg.Auth.Keys))
	for _, k := range a.cfg.Auth.Keys {
		keys = append(keys, chiTransport.Key{Token: k.Key, User: k.User, Role: k.Role})
	}
	return keys
}

func (a *app) close() {
	a.store.Close()
	_ = a.log.Sync()
}
