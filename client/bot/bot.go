// Package bot builds the Telegram bot client and wires the update
// handlers into its dispatcher.
package bot

import (
	"context"

	"github.com/celestix/gotgproto"
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/celestix/gotgproto/sessionMaker"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/mediaindex/mediaindex-bot/client/bot/handlers"
	"github.com/mediaindex/mediaindex-bot/client/middleware"
	"github.com/mediaindex/mediaindex-bot/common/utils/tgutil"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/database"
)

// Init logs the bot in, publishes its command list and registers h on
// the dispatcher. The client runs until ctx is done.
func Init(ctx context.Context, cfg *config.Config, h *handlers.Handler) (*gotgproto.Client, error) {
	logger := log.FromContext(ctx).WithPrefix("bot")
	logger.Info("Initializing bot...")

	resolver, err := tgutil.NewProxyResolver(cfg.Telegram.ProxyURL)
	if err != nil {
		return nil, err
	}
	client, err := gotgproto.NewClient(
		cfg.Telegram.AppID,
		cfg.Telegram.AppHash,
		gotgproto.ClientTypeBot(cfg.Bot.Token),
		&gotgproto.ClientOpts{
			Session:          sessionMaker.SqlSession(database.GetDialect(cfg.Telegram.Session)),
			DisableCopyright: true,
			Middlewares:      middleware.NewDefaultMiddlewares(cfg.Telegram.RpcRetry),
			Resolver:         resolver,
			Context:          ctx,
			MaxRetries:       cfg.Telegram.RpcRetry,
			ErrorHandler: func(ctx *ext.Context, u *ext.Update, s string) error {
				log.FromContext(ctx).WithPrefix("bot").Errorf("Unhandled error: %s", s)
				return dispatcher.EndGroups
			},
		},
	)
	if err != nil {
		return nil, err
	}

	commands := make([]tg.BotCommand, 0, len(handlers.CommandHandlers))
	for _, info := range handlers.CommandHandlers {
		commands = append(commands, tg.BotCommand{Command: info.Cmd, Description: h.I18n.T(info.Desc)})
	}
	if _, err := client.API().BotsSetBotCommands(ctx, &tg.BotsSetBotCommandsRequest{
		Scope:    &tg.BotCommandScopeDefault{},
		Commands: commands,
	}); err != nil {
		logger.Warn("Failed to set bot commands", "error", err)
	}

	h.Register(client.Dispatcher)
	logger.Info("Bot initialized", "username", client.Self.Username)
	return client, nil
}
