package handlers

import (
	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/dispatcher/handlers"
	"github.com/celestix/gotgproto/dispatcher/handlers/filters"
	"github.com/celestix/gotgproto/ext"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/pkg/tcbdata"
)

type DescCommandHandler struct {
	Cmd       string
	Desc      i18nk.Key
	AdminOnly bool
	handler   func(h *Handler, ctx *ext.Context, u *ext.Update) error
}

var CommandHandlers = []DescCommandHandler{
	{"start", i18nk.CmdStart, false, (*Handler).handleStartCmd},
	{"intro", i18nk.CmdIntro, false, (*Handler).handleStartCmd},
	{"help", i18nk.CmdHelp, false, (*Handler).handleHelpCmd},
	{"search", i18nk.CmdSearch, false, (*Handler).handleSearchCmd},
	{"channel", i18nk.CmdChannel, true, (*Handler).handleChannelCmd},
	{"admin", i18nk.CmdAdmin, true, (*Handler).handleAdminCmd},
	{"stats", i18nk.CmdStats, true, (*Handler).handleStatsCmd},
	{"unindex", i18nk.CmdUnindex, true, (*Handler).handleUnindexCmd},
}

func (h *Handler) Register(disp dispatcher.Dispatcher) {
	disp.AddHandler(handlers.NewMessage(filters.Message.ChatType(filters.ChatTypeChannel), h.handleChannelPost))
	disp.AddHandler(handlers.NewMessage(filters.Message.ChatType(filters.ChatTypeChat), func(ctx *ext.Context, u *ext.Update) error {
		return dispatcher.EndGroups
	}))
	disp.AddHandler(handlers.NewMessage(filters.Message.All, h.checkRateLimit))
	for _, info := range CommandHandlers {
		fn := info.handler
		next := func(ctx *ext.Context, u *ext.Update) error { return fn(h, ctx, u) }
		if info.AdminOnly {
			next = h.requireAdmin(next)
		}
		disp.AddHandler(handlers.NewCommand(info.Cmd, h.withRequestLog(info.Cmd, next)))
	}
	for _, t := range tcbdata.Types {
		disp.AddHandler(handlers.NewCallbackQuery(filters.CallbackQuery.Prefix(t), h.withRequestLog(t, h.handleCallback)))
	}
}
