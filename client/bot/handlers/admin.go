package handlers

import (
	"errors"
	"strconv"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
)

func (h *Handler) handleAdminCmd(ctx *ext.Context, u *ext.Update) error {
	args := commandArgs(u.EffectiveMessage.Text)
	if len(args) == 0 {
		return h.reply(ctx, u, i18nk.AdminUsage)
	}
	if args[0] == "list" {
		admins, err := h.Admins.ListAdmins(ctx)
		if err != nil {
			return err
		}
		ctx.Reply(u, ext.ReplyTextString(formatAdminList(h.I18n, admins)), nil)
		return dispatcher.EndGroups
	}
	if len(args) < 2 {
		return h.reply(ctx, u, i18nk.AdminUsage)
	}
	target, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || target <= 0 {
		return h.reply(ctx, u, i18nk.AdminInvalidUserID, map[string]any{"Value": args[1]})
	}
	actor := userID(u)
	data := map[string]any{"UserID": target}

	switch args[0] {
	case "promote":
		level := parseLevel(args[2:])
		if err := h.Admins.Promote(ctx, target, actor, level); err != nil {
			if errors.Is(err, reason.ErrForbidden) {
				return h.reply(ctx, u, i18nk.AdminSuperOnly)
			}
			return err
		}
		data["Level"] = level
		return h.reply(ctx, u, i18nk.AdminPromoted, data)
	case "demote":
		err := h.Admins.Demote(ctx, target, actor)
		switch {
		case errors.Is(err, reason.ErrForbidden):
			return h.reply(ctx, u, i18nk.AdminSuperOnly)
		case errors.Is(err, reason.ErrNotFound):
			return h.reply(ctx, u, i18nk.AdminNotAdmin, data)
		case err != nil:
			return err
		}
		return h.reply(ctx, u, i18nk.AdminDemoted, data)
	}
	return h.reply(ctx, u, i18nk.AdminUsage)
}
