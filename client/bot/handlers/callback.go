package handlers

import (
	"context"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/mediaindex/mediaindex-bot/client/bot/handlers/utils/msgelem"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/pkg/tcbdata"
)

var adminCallbacks = map[string]bool{
	tcbdata.TypeAdminPanel:     true,
	tcbdata.TypeBotStats:       true,
	tcbdata.TypeManageChannels: true,
	tcbdata.TypeManageUsers:    true,
}

func (h *Handler) adminPanelText(ctx context.Context) string {
	channels, err := h.Channels.ActiveCount(ctx)
	if err != nil {
		log.FromContext(ctx).WithPrefix("bot").Warn("Failed to count channels", "error", err)
	}
	files, err := h.Media.Count(ctx)
	if err != nil {
		log.FromContext(ctx).WithPrefix("bot").Warn("Failed to count media", "error", err)
	}
	return h.I18n.T(i18nk.AdminPanel, map[string]any{
		"Channels": channels,
		"Media":    files,
		"Engine":   h.Search.Engine(),
		"Cache":    h.Cache.Mode(),
	})
}

// callbackPage renders the page a button leads to.
func (h *Handler) callbackPage(ctx context.Context, data string, id int64, name string) (string, *tg.ReplyInlineMarkup, error) {
	back := msgelem.BuildBackKeyboard(h.I18n)
	switch data {
	case tcbdata.TypeHelpTutorial:
		return h.helpText(), back, nil
	case tcbdata.TypeSearchTips:
		return h.I18n.T(i18nk.SearchTips), back, nil
	case tcbdata.TypeAdminPanel:
		return h.adminPanelText(ctx), back, nil
	case tcbdata.TypeBotStats:
		text, err := h.statsText(ctx)
		return text, back, err
	case tcbdata.TypeManageChannels:
		return h.I18n.T(i18nk.ManageChannels), back, nil
	case tcbdata.TypeManageUsers:
		return h.I18n.T(i18nk.ManageUsers), back, nil
	}
	w := h.buildWelcome(ctx, id, name)
	return w.text, w.markup, nil
}

func (h *Handler) handleCallback(ctx *ext.Context, u *ext.Update) error {
	cq := u.CallbackQuery
	data := string(cq.Data)
	if adminCallbacks[data] {
		ok, err := h.Admins.CanUseAdminCommands(ctx, cq.UserID)
		if err != nil {
			log.FromContext(ctx).WithPrefix("bot").Error("Failed to check admin rights", "user", cq.UserID, "error", err)
		}
		if !ok {
			ctx.AnswerCallback(msgelem.AlertCallbackAnswer(cq.QueryID, h.I18n.T(i18nk.ErrorPermission)))
			return dispatcher.EndGroups
		}
	}
	text, markup, err := h.callbackPage(ctx, data, cq.UserID, firstName(u))
	if err != nil {
		return err
	}
	if _, err := ctx.EditMessage(u.EffectiveChat().GetID(), &tg.MessagesEditMessageRequest{
		ID:          cq.GetMsgID(),
		Message:     text,
		ReplyMarkup: markup,
	}); err != nil {
		log.FromContext(ctx).WithPrefix("bot").Warn("Failed to edit message", "error", err)
	}
	ctx.AnswerCallback(msgelem.EmptyCallbackAnswer(cq.QueryID))
	return dispatcher.EndGroups
}
