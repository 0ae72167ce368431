// Package search indexes catalogued media and answers text queries through
// one of several engines chosen at startup.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/common/cache"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/searchengine"
	"github.com/mediaindex/mediaindex-bot/pkg/metrics"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
)

const DefaultResultsLimit = 50

type Status struct {
	Requested searchengine.Engine `json:"requested"`
	Active    searchengine.Engine `json:"active"`
	Fallback  bool                `json:"fallback"`
}

type Service struct {
	backend Backend
	status  Status
	limit   int
	memo    *cache.Memo[[]Result]
	// gen moves on every index change and is part of the memo key, so
	// results read before a change are never served after it.
	gen atomic.Uint64
}

// New resolves the configured engine once. Engines that cannot start fall
// back to the document store text index.
func New(ctx context.Context, cfg *config.Config, gw *database.Gateway) (*Service, error) {
	logger := log.FromContext(ctx).WithPrefix("search")
	requested, ok := searchengine.Resolve(cfg.Search.Engine)
	if !ok {
		logger.Warn("Unknown search engine, using mongodb_text", "engine", cfg.Search.Engine)
	}

	var backend Backend
	active := requested
	switch requested {
	case searchengine.Elasticsearch:
		if !cfg.Elasticsearch.Enabled {
			logger.Warn("Elasticsearch selected but not enabled, falling back to mongodb_text")
			break
		}
		es, err := newElastic(ctx, cfg.Elasticsearch, nil)
		if err != nil {
			logger.Warn("Elasticsearch unavailable, falling back to mongodb_text", "error", err)
			break
		}
		backend = es
	case searchengine.Fileindex:
		fi, err := newFileIndex(ctx, cfg.Search.IndexPath)
		if err != nil {
			logger.Warn("File index unavailable, falling back to mongodb_text", "path", cfg.Search.IndexPath, "error", err)
			break
		}
		backend = fi
	}
	if backend == nil {
		active = searchengine.MongodbText
		backend = newMongoText(gw.Collection(database.SearchIndexCollection))
	}
	logger.Info("Search engine selected", "engine", active)

	svc, err := NewWithBackend(active, backend, cfg.Search.ResultsLimit, cfg.Search.CacheDuration())
	if err != nil {
		backend.Close()
		return nil, err
	}
	svc.status.Requested = requested
	svc.status.Fallback = !ok || active != requested
	return svc, nil
}

// NewWithBackend wraps an already built backend.
func NewWithBackend(engine searchengine.Engine, backend Backend, limit int, ttl time.Duration) (*Service, error) {
	if limit <= 0 {
		limit = DefaultResultsLimit
	}
	memo, err := cache.NewMemo[[]Result](10000, 1000, ttl)
	if err != nil {
		return nil, err
	}
	return &Service{
		backend: backend,
		status:  Status{Requested: engine, Active: engine},
		limit:   limit,
		memo:    memo,
	}, nil
}

func (s *Service) Status() Status {
	return s.status
}

func (s *Service) Engine() searchengine.Engine {
	return s.status.Active
}

// BuildContent joins the searchable parts of a media file, skipping empty
// ones: name, type, description, tags, channel name.
func BuildContent(fileName, fileType string, metadata map[string]any) string {
	parts := []string{fileName, fileType}
	if d, ok := metadata["description"].(string); ok {
		parts = append(parts, d)
	}
	switch tags := metadata["tags"].(type) {
	case []string:
		parts = append(parts, strings.Join(tags, " "))
	case []any:
		for _, t := range tags {
			parts = append(parts, fmt.Sprint(t))
		}
	case string:
		parts = append(parts, tags)
	}
	if c, ok := metadata["channel_name"].(string); ok {
		parts = append(parts, c)
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func (s *Service) IndexMediaFile(ctx context.Context, fileID, fileName, fileType string, metadata map[string]any) error {
	engine := string(s.status.Active)
	content := BuildContent(fileName, fileType, metadata)
	if err := s.backend.IndexDocument(ctx, fileID, fileName, content, metadata); err != nil {
		metrics.IndexedDocuments.WithLabelValues(engine, "error").Inc()
		log.FromContext(ctx).WithPrefix("search").Error("Failed to index media file", "file_id", fileID, "error", err)
		return err
	}
	s.invalidate()
	metrics.IndexedDocuments.WithLabelValues(engine, "ok").Inc()
	return nil
}

// Search runs query against the active engine. limit <= 0 uses the
// configured default.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}
	if limit <= 0 {
		limit = s.limit
	}
	engine := string(s.status.Active)
	key := fmt.Sprintf("%d|%s|%d|%s", s.gen.Load(), engine, limit, strings.ToLower(query))
	if hit, ok := s.memo.Get(key); ok {
		metrics.SearchQueries.WithLabelValues(engine, "cached").Inc()
		return hit, nil
	}

	start := time.Now()
	results, err := s.backend.Search(ctx, query, limit)
	metrics.SearchDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchQueries.WithLabelValues(engine, "error").Inc()
		log.FromContext(ctx).WithPrefix("search").Error("Search failed", "query", query, "error", err)
		return nil, err
	}
	metrics.SearchQueries.WithLabelValues(engine, "ok").Inc()
	if err := s.memo.Set(key, results, 1); err != nil {
		log.FromContext(ctx).WithPrefix("search").Debug("Failed to memoise results", "error", err)
	}
	return results, nil
}

func (s *Service) DeleteMedia(ctx context.Context, fileID string) error {
	err := s.backend.DeleteDocument(ctx, fileID)
	if err != nil && !errors.Is(err, reason.ErrNotFound) {
		log.FromContext(ctx).WithPrefix("search").Error("Failed to delete media file", "file_id", fileID, "error", err)
		return err
	}
	s.invalidate()
	return err
}

func (s *Service) invalidate() {
	s.gen.Add(1)
	s.memo.Clear()
}

func (s *Service) Close() error {
	s.memo.Close()
	return s.backend.Close()
}
