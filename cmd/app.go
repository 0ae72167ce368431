package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/admin"
	"github.com/mediaindex/mediaindex-bot/channel"
	"github.com/mediaindex/mediaindex-bot/client/bot/handlers"
	"github.com/mediaindex/mediaindex-bot/common/cache"
	"github.com/mediaindex/mediaindex-bot/common/i18n"
	"github.com/mediaindex/mediaindex-bot/common/utils/netutil"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/logger"
	"github.com/mediaindex/mediaindex-bot/media"
	"github.com/mediaindex/mediaindex-bot/pkg/ratelimit"
	"github.com/mediaindex/mediaindex-bot/poster"
	"github.com/mediaindex/mediaindex-bot/search"
	"github.com/mediaindex/mediaindex-bot/stats"
	"github.com/spf13/cobra"
)

// loadConfig reads the configuration for cmd and returns a context
// carrying the root logger.
func loadConfig(cmd *cobra.Command) (context.Context, *config.Config, io.Closer, error) {
	root := cmd.Root()
	v := config.New()
	config.BindFlags(root, v)
	cfg, err := config.Load(v, config.GetConfigFile(root))
	if err != nil {
		return nil, nil, nil, err
	}
	l, closer, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	return log.WithContext(cmd.Context(), l), cfg, closer, nil
}

// app holds every component built from one configuration.
type app struct {
	cfg      *config.Config
	mongo    *database.Gateway
	cache    *cache.Cache
	admins   *admin.Registry
	channels *channel.Registry
	media    *media.Catalog
	stats    *stats.Recorder
	search   *search.Service
	posters  *poster.Service
	i18n     *i18n.Localizer
	limiter  *ratelimit.Limiter
}

// buildApp constructs the components. An unreachable document store is
// logged and the components run degraded until restart.
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	logger := log.FromContext(ctx)
	a := &app{cfg: cfg, mongo: database.NewGateway(cfg.MongoDB)}
	if err := a.mongo.Connect(ctx); err != nil {
		logger.Error("MongoDB unavailable, running degraded", "error", err)
	} else if err := a.mongo.CreateIndexes(ctx); err != nil {
		logger.Warn("Failed to create indexes", "error", err)
	}

	a.cache = cache.New(ctx, cfg.Redis, cfg.Cache)
	a.admins = admin.NewRegistry(a.mongo.Collection(database.UsersCollection), cfg.SuperAdminID)
	a.channels = channel.NewRegistry(a.mongo.Collection(database.ChannelsCollection))
	a.media = media.NewCatalog(a.mongo.Collection(database.MediaFilesCollection))
	a.stats = stats.NewRecorder(a.mongo.Collection(database.BotStatsCollection))
	a.limiter = ratelimit.New(cfg.RateLimit)

	httpClient, err := netutil.NewHTTPClient(poster.RequestTimeout, cfg.Unsplash.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid unsplash proxy: %w", err)
	}
	a.posters = poster.New(cfg.Unsplash, a.cache, poster.WithHTTPClient(httpClient))

	if a.search, err = search.New(ctx, cfg, a.mongo); err != nil {
		return nil, err
	}
	if a.i18n, err = i18n.New(cfg.Lang); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) handlerDeps() *handlers.Deps {
	return &handlers.Deps{
		Config:   a.cfg,
		Admins:   a.admins,
		Channels: a.channels,
		Search:   a.search,
		Posters:  a.posters,
		Media:    a.media,
		Stats:    a.stats,
		Cache:    a.cache,
		I18n:     a.i18n,
		Limiter:  a.limiter,
	}
}

func (a *app) Close(ctx context.Context) {
	logger := log.FromContext(ctx)
	if err := a.search.Close(); err != nil {
		logger.Warn("Failed to close search backend", "error", err)
	}
	if err := a.cache.Close(); err != nil {
		logger.Warn("Failed to close cache", "error", err)
	}
	if err := a.mongo.Disconnect(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("Failed to disconnect from MongoDB", "error", err)
	}
}
