package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/charmbracelet/log"
	"github.com/gotd/td/tg"
	"github.com/mediaindex/mediaindex-bot/common/utils/strutil"
	"github.com/mediaindex/mediaindex-bot/common/utils/tgutil"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/media"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"github.com/mediaindex/mediaindex-bot/stats"
)

// post is the part of a channel message the indexer looks at.
type post struct {
	ChannelID int64
	MessageID int
	Media     tg.MessageMediaClass
	Caption   string
}

func indexMetadata(ch *database.Channel, f database.MediaFile) map[string]any {
	meta := map[string]any{
		"channel_id": f.ChannelID,
		"message_id": f.MessageID,
		"file_size":  f.FileSize,
	}
	if name := ch.Name; name != "" {
		meta["channel_name"] = name
	} else if ch.Username != "" {
		meta["channel_name"] = ch.Username
	}
	if f.MimeType != "" {
		meta["mime_type"] = f.MimeType
	}
	if f.Caption != "" {
		meta["description"] = f.Caption
	}
	if tags := strutil.ExtractTags(f.Caption); len(tags) > 0 {
		meta["tags"] = tags
	}
	return meta
}

// indexPost catalogs and indexes the media of a monitored channel post.
// It returns false when the post is skipped.
func (h *Handler) indexPost(ctx context.Context, p post) (bool, error) {
	logger := log.FromContext(ctx).WithPrefix("indexer").With("channel_id", p.ChannelID, "msg", p.MessageID)
	if p.Media == nil {
		return false, nil
	}
	monitored, err := h.Channels.IsMonitored(ctx, p.ChannelID)
	if err != nil || !monitored {
		return false, err
	}
	ch, err := h.Channels.Info(ctx, p.ChannelID)
	if err != nil {
		return false, err
	}
	if !ch.AutoIndex {
		logger.Debug("Auto index disabled")
		return false, nil
	}
	info, ok := tgutil.GetMediaInfo(p.Media)
	if !ok {
		return false, nil
	}
	f := media.NewFile(p.ChannelID, p.MessageID, info, p.Caption, time.Now().UTC())
	if err := media.Admit(ch.ChannelSettings, h.Config.Media, f); err != nil {
		logger.Info("Skipping file", "file", f.FileName, "reason", err)
		return false, nil
	}
	if !ch.AllowDuplicates {
		dup, err := h.Media.HasDuplicate(ctx, p.ChannelID, f.FileUniqueID)
		if err != nil {
			return false, err
		}
		if dup {
			logger.Info("Skipping file", "file", f.FileName, "reason", media.ErrDuplicate)
			return false, nil
		}
	}
	if err := h.Media.Save(ctx, f); err != nil {
		return false, err
	}
	if err := h.Search.IndexMediaFile(ctx, f.FileID, f.FileName, f.FileType, indexMetadata(ch, f)); err != nil {
		return false, err
	}
	logger.Info("Indexed file", "file", f.FileName, "type", f.FileType, "size", f.FileSize)
	return true, nil
}

func (h *Handler) handleChannelPost(ctx *ext.Context, u *ext.Update) error {
	msg := u.EffectiveMessage
	if msg == nil || msg.Message == nil {
		return dispatcher.EndGroups
	}
	p := post{
		ChannelID: tgutil.NormalizeChannelID(u.EffectiveChat().GetID()),
		MessageID: msg.ID,
		Media:     msg.Media,
		Caption:   msg.Message.Message,
	}
	indexed, err := h.indexPost(ctx, p)
	if err != nil && !errors.Is(err, reason.ErrNotFound) {
		log.FromContext(ctx).WithPrefix("indexer").Error("Failed to index channel post", "channel_id", p.ChannelID, "msg", p.MessageID, "error", err)
	}
	if indexed {
		h.Stats.Record(ctx, stats.TypeIndex, 0, map[string]any{"channel_id": p.ChannelID, "file_id": media.FileID(p.ChannelID, p.MessageID)})
	}
	return dispatcher.EndGroups
}
