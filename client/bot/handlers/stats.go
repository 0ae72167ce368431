package handlers

import (
	"context"
	"time"

	"github.com/celestix/gotgproto/dispatcher"
	"github.com/celestix/gotgproto/ext"
	"github.com/mediaindex/mediaindex-bot/channel"
	"github.com/mediaindex/mediaindex-bot/common/i18n/i18nk"
	"github.com/mediaindex/mediaindex-bot/stats"
	"golang.org/x/sync/errgroup"
)

type botStats struct {
	channels  channel.Stats
	monitored int64
	media     int64
	admins    int
	usage     map[string]int64
}

// collectStats gathers the figures shown on the stats page concurrently.
func (h *Handler) collectStats(ctx context.Context) (botStats, error) {
	var st botStats
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		st.channels, err = h.Channels.Stats(gctx)
		return err
	})
	eg.Go(func() (err error) {
		st.monitored, err = h.Channels.MonitoredCount(gctx)
		return err
	})
	eg.Go(func() (err error) {
		st.media, err = h.Media.Count(gctx)
		return err
	})
	eg.Go(func() error {
		admins, err := h.Admins.ListAdmins(gctx)
		st.admins = len(admins)
		return err
	})
	eg.Go(func() (err error) {
		st.usage, err = h.Stats.Summary(gctx, time.Now().Add(-24*time.Hour))
		return err
	})
	return st, eg.Wait()
}

func (h *Handler) statsText(ctx context.Context) (string, error) {
	st, err := h.collectStats(ctx)
	if err != nil {
		return "", err
	}
	return h.I18n.T(i18nk.StatsText, map[string]any{
		"Active":    st.channels.Active,
		"Total":     st.channels.Total,
		"Monitored": st.monitored,
		"Media":     st.media,
		"Admins":    st.admins,
		"Engine":    h.Search.Engine(),
		"Cache":     h.Cache.Mode(),
		"Searches":  st.usage[stats.TypeSearch],
		"Indexed":   st.usage[stats.TypeIndex],
		"Commands":  st.usage[stats.TypeCommand],
	}), nil
}

func (h *Handler) handleStatsCmd(ctx *ext.Context, u *ext.Update) error {
	text, err := h.statsText(ctx)
	if err != nil {
		return err
	}
	ctx.Reply(u, ext.ReplyTextString(text), nil)
	return dispatcher.EndGroups
}
