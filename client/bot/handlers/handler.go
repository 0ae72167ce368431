package handlers

import (
	"github.com/mediaindex/mediaindex-bot/admin"
	"github.com/mediaindex/mediaindex-bot/channel"
	"github.com/mediaindex/mediaindex-bot/common/cache"
	"github.com/mediaindex/mediaindex-bot/common/i18n"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/media"
	"github.com/mediaindex/mediaindex-bot/pkg/ratelimit"
	"github.com/mediaindex/mediaindex-bot/poster"
	"github.com/mediaindex/mediaindex-bot/search"
	"github.com/mediaindex/mediaindex-bot/stats"
)

// Deps are the components the handlers work with.
type Deps struct {
	Config   *config.Config
	Admins   *admin.Registry
	Channels *channel.Registry
	Search   *search.Service
	Posters  *poster.Service
	Media    *media.Catalog
	Stats    *stats.Recorder
	Cache    *cache.Cache
	I18n     *i18n.Localizer
	Limiter  *ratelimit.Limiter
}

type Handler struct {
	*Deps
}

func New(deps *Deps) *Handler {
	return &Handler{Deps: deps}
}
