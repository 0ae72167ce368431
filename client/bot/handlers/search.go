package handlers

import (
	"strings"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/stats"
)

func (h *Handler) handleSearchCmd(ctx *ext.Context, u *ext.Update) error {
	query := strings.Join(commandArgs(u.EffectiveMessage.Text), " ")
	if query == "" {
		ctx.Reply(u, ext.ReplyTextString(h.I18n.T(i18nk.SearchUsage)), nil)
		return dispatcher.EndGroups
	}
	id := userID(u)
	results, err := h.Search.Search(ctx, query, h.Config.Search.ResultsLimit)
	if err != nil {
		log.FromContext(ctx).WithPrefix("bot").Error("Search failed", "query", query, "error", err)
		ctx.Reply(u, ext.ReplyTextString(h.I18n.T(i18nk.ErrorSearch)), nil)
		return dispatcher.EndGroups
	}
	h.Stats.Record(ctx, stats.TypeSearch, id, map[string]any{"query": query, "results": len(results)})
	ctx.Reply(u, ext.ReplyTextString(formatSearchResults(h.I18n, query, results)), nil)
	return dispatcher.EndGroups
}
