package handlers

import (
	"errors"
	"time"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/client/bot/handlers/utils/msgelem"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/pkg/metrics"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"github.com/mediaindex/mediaindex-bot/stats"
	"github.com/rs/xid"
)

type handlerFunc = func(ctx *ext.Context, u *ext.Update) error

func userID(u *ext.Update) int64 {
	if u.CallbackQuery != nil {
		return u.CallbackQuery.UserID
	}
	if user := u.EffectiveUser(); user != nil {
		return user.GetID()
	}
	return 0
}

func (h *Handler) checkRateLimit(ctx *ext.Context, u *ext.Update) error {
	id := userID(u)
	if id == 0 || h.Admins.IsSuperAdmin(id) {
		return dispatcher.ContinueGroups
	}
	if h.Limiter.Allow(id) {
		return dispatcher.ContinueGroups
	}
	metrics.RateLimited.Inc()
	log.FromContext(ctx).WithPrefix("bot").Debug("Rate limited", "user", id)
	ctx.Reply(u, ext.ReplyTextString(h.I18n.T(i18nk.ErrorRateLimit)), nil)
	return dispatcher.EndGroups
}

func (h *Handler) requireAdmin(next handlerFunc) handlerFunc {
	return func(ctx *ext.Context, u *ext.Update) error {
		id := userID(u)
		ok, err := h.Admins.CanUseAdminCommands(ctx, id)
		if err != nil {
			log.FromContext(ctx).WithPrefix("bot").Error("Failed to check admin rights", "user", id, "error", err)
		}
		if !ok {
			ctx.Reply(u, ext.ReplyTextString(h.I18n.T(i18nk.ErrorPermission)), nil)
			return dispatcher.EndGroups
		}
		return next(ctx, u)
	}
}

// withRequestLog tags every handled update with a request id, counts it
// and records a command stat. Unhandled errors get an apology reply.
func (h *Handler) withRequestLog(name string, next handlerFunc) handlerFunc {
	return func(ctx *ext.Context, u *ext.Update) error {
		id := userID(u)
		logger := log.FromContext(ctx).WithPrefix("bot").With("req", xid.New().String(), "cmd", name, "user", id)
		start := time.Now()
		metrics.Commands.WithLabelValues(name).Inc()
		h.Stats.Record(ctx, stats.TypeCommand, id, map[string]any{"command": name})

		parent := ctx.Context
		ctx.Context = log.WithContext(parent, logger)
		err := next(ctx, u)
		ctx.Context = parent
		if err == nil || errors.Is(err, dispatcher.EndGroups) || errors.Is(err, dispatcher.ContinueGroups) {
			logger.Debug("Handled", "took", time.Since(start))
			return dispatcher.EndGroups
		}
		logger.Error("Handler failed", "error", err, "took", time.Since(start))
		key := i18nk.ErrorGeneral
		if errors.Is(err, reason.ErrUnavailable) {
			key = i18nk.ErrorUnavailable
		}
		if u.CallbackQuery != nil {
			ctx.AnswerCallback(msgelem.AlertCallbackAnswer(u.CallbackQuery.QueryID, h.I18n.T(key)))
			return dispatcher.EndGroups
		}
		ctx.Reply(u, ext.ReplyTextString(h.I18n.T(key)), nil)
		return dispatcher.EndGroups
	}
}
