package handlers

import (
	"errors"
	"strconv"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/mediaindex/mediaindex-bot/channel"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/common/utils/tgutil"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
)

func (h *Handler) reply(ctx *ext.Context, u *ext.Update, key i18nk.Key, data ...map[string]any) error {
	ctx.Reply(u, ext.ReplyTextString(h.I18n.T(key, data...)), nil)
	return dispatcher.EndGroups
}

func parseChannelID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return tgutil.NormalizeChannelID(id), true
}

func (h *Handler) handleChannelCmd(ctx *ext.Context, u *ext.Update) error {
	args := commandArgs(u.EffectiveMessage.Text)
	if len(args) == 0 {
		return h.reply(ctx, u, i18nk.ChannelUsage)
	}
	actor := userID(u)
	sub, rest := args[0], args[1:]

	if sub == "list" {
		all := len(rest) > 0 && rest[0] == "all"
		channels, err := h.Channels.AllChannels(ctx, all)
		if err != nil {
			return err
		}
		ctx.Reply(u, ext.ReplyTextString(formatChannelList(h.I18n, channels)), nil)
		return dispatcher.EndGroups
	}
	if len(rest) == 0 {
		return h.reply(ctx, u, i18nk.ChannelUsage)
	}

	if sub == "add" {
		id, username, err := tgutil.ParseChatID(ctx, rest[0])
		if err != nil {
			return h.reply(ctx, u, i18nk.ChannelResolveFailed, map[string]any{"Channel": rest[0], "Error": err.Error()})
		}
		res, err := h.Channels.Add(ctx, id, username, username, actor)
		if err != nil {
			return err
		}
		data := map[string]any{"Channel": displayChannel(id, username)}
		switch res {
		case channel.Reactivated:
			return h.reply(ctx, u, i18nk.ChannelReactivated, data)
		case channel.AlreadyActive:
			return h.reply(ctx, u, i18nk.ChannelAlreadyActive, data)
		}
		return h.reply(ctx, u, i18nk.ChannelAdded, data)
	}

	id, ok := parseChannelID(rest[0])
	if !ok {
		return h.reply(ctx, u, i18nk.ChannelUsage)
	}
	data := map[string]any{"Channel": id}
	notFound := func(err error) error {
		if errors.Is(err, reason.ErrNotFound) {
			return h.reply(ctx, u, i18nk.ChannelNotFound, data)
		}
		return err
	}

	switch sub {
	case "remove":
		if err := h.Channels.Remove(ctx, id, actor); err != nil {
			return notFound(err)
		}
		return h.reply(ctx, u, i18nk.ChannelRemoved, data)
	case "info":
		ch, err := h.Channels.Info(ctx, id)
		if err != nil {
			return notFound(err)
		}
		ctx.Reply(u, ext.ReplyTextString(formatChannelInfo(h.I18n, ch)), nil)
		return dispatcher.EndGroups
	case "monitor":
		if len(rest) < 2 {
			return h.reply(ctx, u, i18nk.ChannelMonitorUsage)
		}
		enabled, ok := parseOnOff(rest[1])
		if !ok {
			return h.reply(ctx, u, i18nk.ChannelMonitorUsage)
		}
		if err := h.Channels.ToggleMonitoring(ctx, id, enabled, actor); err != nil {
			return notFound(err)
		}
		if enabled {
			return h.reply(ctx, u, i18nk.ChannelMonitorOn, data)
		}
		return h.reply(ctx, u, i18nk.ChannelMonitorOff, data)
	case "settings":
		if len(rest) < 2 {
			return h.reply(ctx, u, i18nk.ChannelSettingsUsage)
		}
		patch, err := channel.ParseSettings(rest[1:])
		if err != nil {
			return h.reply(ctx, u, i18nk.ChannelSettingsInvalid, map[string]any{"Error": err.Error()})
		}
		if err := h.Channels.UpdateSettings(ctx, id, patch, actor); err != nil {
			if errors.Is(err, reason.ErrInvalid) {
				return h.reply(ctx, u, i18nk.ChannelSettingsInvalid, map[string]any{"Error": err.Error()})
			}
			return notFound(err)
		}
		return h.reply(ctx, u, i18nk.ChannelSettingsUpdated, data)
	}
	return h.reply(ctx, u, i18nk.ChannelUsage)
}
