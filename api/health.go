package api

import (
	"encoding/json"
	"net/http"

	"github.com/mediaindex/mediaindex-bot/common/cache"
	"github.com/mediaindex/mediaindex-bot/search"
)

type Health struct {
	Status           string        `json:"status"`
	MongoConnected   bool          `json:"mongo_connected"`
	Cache            cache.Mode    `json:"cache"`
	Search           search.Status `json:"search"`
	PosterConfigured bool          `json:"poster_configured"`
}

// Health reports "degraded" while the document store is unreachable.
func (s *Server) Health(r *http.Request) Health {
	h := Health{
		Status:           "ok",
		MongoConnected:   s.mongo.Connected(),
		Cache:            s.cache.Mode(),
		Search:           s.search.Status(),
		PosterConfigured: s.posters.Status(r.Context()).Configured,
	}
	if !h.MongoConnected {
		h.Status = "degraded"
	}
	return h
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.Health(r)
	w.Header().Set("Content-Type", "application/json")
	if h.Status != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(h)
}
