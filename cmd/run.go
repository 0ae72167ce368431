package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/api"
	"github.com/mediaindex/mediaindex-bot/client/bot"
	"github.com/mediaindex/mediaindex-bot/client/bot/handlers"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func Run(cmd *cobra.Command, _ []string) error {
	ctx, cfg, closer, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger := log.FromContext(ctx)
	logger.Info("Starting MediaIndex bot", "version", config.Version, "commit", config.GitCommit)

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close(ctx)
	if err := a.admins.InitializeSuperAdmin(ctx); err != nil {
		logger.Warn("Failed to store the super admin", "error", err)
	}

	client, err := bot.Init(ctx, cfg, handlers.New(a.handlerDeps()))
	if err != nil {
		return err
	}

	eg, gctx := errgroup.WithContext(ctx)
	if cfg.Prometheus.Enabled {
		ops := api.New(a.mongo, a.cache, a.search, a.posters)
		eg.Go(func() error { return ops.Serve(gctx, cfg.Prometheus.Port) })
	}
	eg.Go(func() error {
		<-gctx.Done()
		client.Stop()
		return nil
	})
	eg.Go(func() error {
		return client.Idle()
	})
	err = eg.Wait()
	logger.Info("Bye")
	return err
}
