package handlers

import (
	"context"
	"time"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/mediaindex/mediaindex-bot/client/bot/handlers/utils/msgelem"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/config"
)

// WelcomeLifetime is how long a welcome message stays in the chat.
const WelcomeLifetime = time.Hour

type welcome struct {
	text   string
	markup *tg.ReplyInlineMarkup
}

func firstName(u *ext.Update) string {
	if user := u.EffectiveUser(); user != nil && user.FirstName != "" {
		return user.FirstName
	}
	return "there"
}

// buildWelcome picks the welcome variant for the user. Admins see the
// setup guide until the first channel is connected.
func (h *Handler) buildWelcome(ctx context.Context, id int64, name string) welcome {
	isAdmin, err := h.Admins.CanUseAdminCommands(ctx, id)
	if err != nil {
		log.FromContext(ctx).WithPrefix("bot").Warn("Failed to check admin rights", "user", id, "error", err)
	}
	if !isAdmin {
		return welcome{
			text:   h.I18n.T(i18nk.WelcomeUser, map[string]any{"Name": name}),
			markup: msgelem.BuildWelcomeKeyboard(h.I18n, false, h.Config.SupportLink, h.Config.GroupLink),
		}
	}
	markup := msgelem.BuildWelcomeKeyboard(h.I18n, true, "", "")
	channels, err := h.Channels.ActiveCount(ctx)
	if err != nil || channels == 0 {
		return welcome{text: h.I18n.T(i18nk.WelcomeAdminFirst, map[string]any{"Name": name}), markup: markup}
	}
	files, err := h.Media.Count(ctx)
	if err != nil {
		log.FromContext(ctx).WithPrefix("bot").Warn("Failed to count media", "error", err)
	}
	return welcome{
		text: h.I18n.T(i18nk.WelcomeAdminReturning, map[string]any{
			"Name":     name,
			"Channels": channels,
			"Media":    files,
			"Engine":   h.Search.Engine(),
		}),
		markup: markup,
	}
}

func (h *Handler) handleStartCmd(ctx *ext.Context, u *ext.Update) error {
	logger := log.FromContext(ctx).WithPrefix("bot")
	w := h.buildWelcome(ctx, userID(u), firstName(u))
	chatID := u.EffectiveChat().GetID()

	p := h.Posters.PosterWithFallback(ctx)
	msg, err := ctx.SendMedia(chatID, &tg.MessagesSendMediaRequest{
		Media:       &tg.InputMediaPhotoExternal{URL: p.URL},
		Message:     w.text,
		ReplyMarkup: w.markup,
	})
	if err != nil {
		logger.Warn("Failed to send welcome poster, sending text", "error", err)
		msg, err = ctx.Reply(u, ext.ReplyTextString(w.text), &ext.ReplyOpts{Markup: w.markup})
		if err != nil {
			return err
		}
	}
	h.deleteAfter(ctx, chatID, msg.ID, WelcomeLifetime)
	return dispatcher.EndGroups
}

// deleteAfter removes a message once d has passed, unless the client
// shuts down first.
func (h *Handler) deleteAfter(ctx *ext.Context, chatID int64, msgID int, d time.Duration) {
	go func() {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if err := ctx.DeleteMessages(chatID, []int{msgID}); err != nil {
			log.FromContext(ctx).WithPrefix("bot").Debug("Failed to delete expired message", "chat", chatID, "msg", msgID, "error", err)
		}
	}()
}

func (h *Handler) helpText() string {
	commit := config.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return h.I18n.T(i18nk.HelpText, map[string]any{"Version": config.Version, "Commit": commit})
}

func (h *Handler) handleHelpCmd(ctx *ext.Context, u *ext.Update) error {
	ctx.Reply(u, ext.ReplyTextString(h.helpText()), nil)
	return dispatcher.EndGroups
}
