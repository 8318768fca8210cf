package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/mealdb/internal/config"
	"github.com/samvad-hq/mealdb/internal/feed"
	"github.com/samvad-hq/mealdb/internal/logger"
	"github.com/samvad-hq/mealdb/internal/storage"
	"github.com/samvad-hq/mealdb/pkg/httpclient"
	"github.com/samvad-hq/mealdb/pkg/mealdb"
	"github.com/samvad-hq/mealdb/pkg/publishers"
	"github.com/samvad-hq/mealdb/pkg/sources"
)

// Feeder represents the meal feed runtime. It owns the feed loop and the
// resources it needs: the sources registry, the publisher fan-out and the
// delivered-meal store.
type Feeder struct {
	cfg          *config.Config
	sourceReg    *sources.Registry
	fanout       *publishers.Fanout
	feedService  *feed.Service
	feedInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewFeeder builds a feeder runtime from config files.
func NewFeeder(ctx context.Context, cfg *config.Config, log logger.Logger) (*Feeder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	sourceList := sourceReg.All()
	sourceIDs := make([]string, 0, len(sourceList))
	for _, s := range sourceList {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceIDs),
		"ids":   sourceIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		MealTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"meal_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	api := mealdb.New(mealdb.Options{
		BaseURL:   cfg.MealDBBaseURL,
		Timeout:   cfg.MealDBTimeout,
		UserAgent: cfg.MealDBUserAgent,
	}, nil, log)

	var enricher feed.Enricher
	if cfg.EnrichSourcePages {
		enricher = feed.NewPageEnricher(httpclient.NewRestyClient(httpclient.Options{
			Timeout:   cfg.MealDBTimeout,
			UserAgent: cfg.MealDBUserAgent,
		}), log)
	}

	feedService := feed.NewService(sources.DefaultFetcherRegistry(api), enricher, fanout, store, log)

	return &Feeder{
		cfg:          cfg,
		sourceReg:    sourceReg,
		fanout:       fanout,
		feedService:  feedService,
		feedInterval: cfg.FeedInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run starts the feed loop until the context is cancelled.
func (f *Feeder) Run(ctx context.Context) error {
	if f == nil || f.feedService == nil {
		return fmt.Errorf("feeder is not initialized")
	}
	defer f.close()

	srcs := f.sourceReg.All()
	if len(srcs) == 0 {
		f.log.WarnObj("no sources configured; feeder idle", "sources_file", f.cfg.SourcesFile)
		<-ctx.Done()
		return ctx.Err()
	}

	f.log.InfoObj("feed loop starting", "feeder_state", map[string]any{
		"sources_count":    len(srcs),
		"publishers_count": f.fanout.Size(),
		"feed_interval":    f.feedInterval.String(),
	})

	if err := f.runOnce(ctx, srcs); err != nil {
		f.log.ErrorObj("initial feed pass failed", "error", err)
	}

	ticker := time.NewTicker(f.feedInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.log.InfoObj("feed loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := f.runOnce(ctx, srcs); err != nil {
				f.log.ErrorObj("scheduled feed pass failed", "error", err)
			}
		}
	}
}

func (f *Feeder) runOnce(ctx context.Context, srcs []sources.Source) error {
	start := time.Now()
	f.log.InfoObj("feed pass started", "feed_meta", map[string]any{
		"sources_count": len(srcs),
		"started_at":    start.UTC(),
	})
	if err := f.feedService.Run(ctx, srcs); err != nil {
		return err
	}
	f.log.InfoObj("feed pass completed", "feed_meta", map[string]any{
		"sources_count": len(srcs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases the store and publishers, logging any errors encountered.
func (f *Feeder) close() {
	if f.store != nil {
		if err := f.store.Close(); err != nil {
			f.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if f.fanout != nil {
		if err := f.fanout.Close(); err != nil {
			f.log.ErrorObj("publishers close failed", "error", err)
		}
	}
}
