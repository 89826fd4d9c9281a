package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aadb-project/aadb/internal/config"
	aadb "github.com/aadb-project/aadb/pkg/sdk"
)

// openClient connects an embedded SDK client to the store named in config/<env>.yaml.
func openClient(ctx context.Context, env string, verbose bool) (*aadb.Client, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	opts := []aadb.Option{
		aadb.WithKeyPrefix(cfg.Storage.KeyPrefix),
		aadb.WithExportMaxRows(cfg.Search.ExportMaxRows),
	}
	switch cfg.Database.Driver {
	case config.DriverRedis:
		opts = append(opts, aadb.WithRedis(cfg.Database.Addrs[0], cfg.Database.Password))
	default:
		fmt.Fprintln(os.Stderr, "warning: memory driver configured, changes are not persisted")
		opts = append(opts, aadb.WithMemory())
	}
	if verbose {
		opts = append(opts, aadb.WithLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug}))))
	}

	client, err := aadb.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return client, nil
}
