package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outfit-concierge/internal/domain/dayplan"
	"github.com/yanqian/outfit-concierge/internal/domain/stylist"
	"github.com/yanqian/outfit-concierge/internal/domain/wardrobe"
	"github.com/yanqian/outfit-concierge/internal/infra/agenda"
	"github.com/yanqian/outfit-concierge/internal/infra/config"
	"github.com/yanqian/outfit-concierge/internal/infra/eventlog"
	"github.com/yanqian/outfit-concierge/internal/infra/forecast"
	"github.com/yanqian/outfit-concierge/internal/infra/imagestore"
	"github.com/yanqian/outfit-concierge/internal/infra/similarity"
	"github.com/yanqian/outfit-concierge/internal/infra/wardroberepo"
	httpiface "github.com/yanqian/outfit-concierge/internal/interface/http"
)

func provideStylistConfig(cfg *config.Config) stylist.Config {
	return stylist.Config{TopN: cfg.Stylist.TopN}
}

// providePostgresPool returns a healthy pool or nil. A nil pool makes the
// repository and similarity providers fall back to their memory backends.
func providePostgresPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Wardrobe.Postgres.DSN)
	if dsn == "" {
		logger.Info("wardrobe postgres dsn not set, using memory backends")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory backends", "error", err)
		return nil
	}
	if cfg.Wardrobe.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Wardrobe.Postgres.MaxConns
	}
	if cfg.Wardrobe.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Wardrobe.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory backends", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory backends", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("wardrobe postgres pool enabled")
	return pool
}

func provideWardrobeRepository(pool *pgxpool.Pool) wardrobe.Repository {
	if pool == nil {
		return wardroberepo.NewMemoryRepository()
	}
	return wardroberepo.NewPostgresRepository(pool)
}

func provideEmbedder(cfg *config.Config) *similarity.Embedder {
	return similarity.NewEmbedder(cfg.Similarity.EmbeddingDim)
}

func provideSimilarityIndex(pool *pgxpool.Pool, embedder *similarity.Embedder) wardrobe.SimilarityIndex {
	if pool == nil {
		return similarity.NewMemoryIndex(embedder)
	}
	return similarity.NewPostgresIndex(pool, embedder)
}

func provideImageStore(cfg *config.Config, logger *slog.Logger) wardrobe.ImageStore {
	if !cfg.Images.Enabled {
		return imagestore.NewNoopStore()
	}
	store, err := imagestore.NewMinioStore(
		cfg.Images.Endpoint,
		cfg.Images.AccessKey,
		cfg.Images.SecretKey,
		cfg.Images.Bucket,
		cfg.Images.PublicURL,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize object storage, using noop image store", "error", err)
		return imagestore.NewNoopStore()
	}
	logger.Info("minio image store enabled", "bucket", cfg.Images.Bucket)
	return store
}

func provideEventRecorder(cfg *config.Config, logger *slog.Logger) stylist.EventRecorder {
	if cfg.Events.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory event log", "error", err)
			return eventlog.NewMemoryRecorder()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory event log", "error", err)
			return eventlog.NewMemoryRecorder()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory event log", "error", err)
		} else {
			logger.Info("valkey event log enabled", "addr", cfg.Events.Valkey.Addr)
			return eventlog.NewValkeyRecorder(client, cfg.Events.Valkey.Prefix, cfg.Events.EventTTL)
		}
	}
	return eventlog.NewMemoryRecorder()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Events.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Events.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Events.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideForecastProvider(cfg *config.Config) dayplan.ForecastProvider {
	if strings.TrimSpace(cfg.Forecast.BaseURL) == "" {
		return forecast.NewStaticProvider(dayplan.Forecast{
			TempMinC:  24,
			TempMaxC:  31,
			Condition: "partly cloudy",
		})
	}
	return forecast.NewClient(cfg.Forecast.BaseURL)
}

func provideAgendaProvider() dayplan.EventsProvider {
	return agenda.NewStaticProvider()
}

func provideHandler(
	cfg *config.Config,
	stylistSvc stylist.Service,
	wardrobeSvc wardrobe.Service,
	dayplanSvc dayplan.Service,
	logger *slog.Logger,
) *httpiface.Handler {
	return httpiface.NewHandler(stylistSvc, wardrobeSvc, dayplanSvc, cfg.Similarity.TopK, logger)
}
