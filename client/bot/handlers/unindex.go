package handlers

import (
	"errors"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
)

const recentFilesShown = 10

// handleUnindexCmd lists the newest catalog entries, or removes the
// given file from the catalog and the search index.
func (h *Handler) handleUnindexCmd(ctx *ext.Context, u *ext.Update) error {
	args := commandArgs(u.EffectiveMessage.Text)
	if len(args) == 0 {
		files, err := h.Media.Recent(ctx, recentFilesShown)
		if err != nil {
			return err
		}
		ctx.Reply(u, ext.ReplyTextString(formatRecentFiles(h.I18n, files)), nil)
		return dispatcher.EndGroups
	}
	fileID := args[0]
	data := map[string]any{"ID": fileID}
	catalogErr := h.Media.Delete(ctx, fileID)
	if catalogErr != nil && !errors.Is(catalogErr, reason.ErrNotFound) {
		return catalogErr
	}
	searchErr := h.Search.DeleteMedia(ctx, fileID)
	if searchErr != nil && !errors.Is(searchErr, reason.ErrNotFound) {
		return searchErr
	}
	if catalogErr != nil && searchErr != nil {
		return h.reply(ctx, u, i18nk.UnindexNotFound, data)
	}
	log.FromContext(ctx).WithPrefix("bot").Info("File unindexed", "file_id", fileID, "by", userID(u))
	return h.reply(ctx, u, i18nk.UnindexDone, data)
}
