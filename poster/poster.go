// Package poster fetches a random movie themed photo for welcome messages.
package poster

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/common/cache"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/pkg/metrics"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"
	CacheKey       = "random_movie_poster"
	CacheTTL       = 24 * time.Hour
	RequestTimeout = 10 * time.Second
)

var searchTerms = []string{
	"movie poster", "cinema", "film", "movie theater",
	"hollywood", "movie reel", "film strip", "blockbuster",
	"movie night", "entertainment", "drama", "action movie",
}

type Poster struct {
	URL             string    `json:"url"`
	ThumbURL        string    `json:"thumb_url"`
	Description     string    `json:"description"`
	Photographer    string    `json:"photographer"`
	PhotographerURL string    `json:"photographer_url"`
	SourceURL       string    `json:"source_url"`
	FetchedAt       time.Time `json:"fetched_at,omitzero"`
}

// Fallback is shown when no poster can be fetched.
var Fallback = Poster{
	URL:             "https://images.unsplash.com/photo-1489599904472-af35ff2c7c3f?w=400",
	ThumbURL:        "https://images.unsplash.com/photo-1489599904472-af35ff2c7c3f?w=200",
	Description:     "Movie theater with red seats",
	Photographer:    "Unsplash",
	PhotographerURL: "https://unsplash.com",
	SourceURL:       "https://unsplash.com/photos/movie-theater",
}

type Status struct {
	Configured bool          `json:"configured"`
	Cached     bool          `json:"cached"`
	Age        time.Duration `json:"age"`
}

type Service struct {
	accessKey string
	baseURL   string
	client    *http.Client
	kv        *cache.Cache
	now       func() time.Time
	pick      func(n int) int

	mu sync.Mutex
}

type Option func(*Service)

func WithBaseURL(u string) Option {
	return func(s *Service) { s.baseURL = u }
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.client = c }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(cfg config.UnsplashConfig, kv *cache.Cache, opts ...Option) *Service {
	s := &Service{
		accessKey: cfg.AccessKey,
		baseURL:   DefaultBaseURL,
		client:    &http.Client{Timeout: RequestTimeout},
		kv:        kv,
		now:       time.Now,
		pick:      rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) logger(ctx context.Context) *log.Logger {
	return log.FromContext(ctx).WithPrefix("poster")
}

// RandomPoster returns the cached poster or fetches a new one. Nothing is
// cached when the fetch fails.
func (s *Service) RandomPoster(ctx context.Context) (*Poster, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cached Poster
	if s.kv.GetJSON(ctx, CacheKey, &cached) {
		metrics.PosterFetches.WithLabelValues("cache").Inc()
		s.logger(ctx).Debug("Using cached poster")
		return &cached, nil
	}
	if s.accessKey == "" {
		return nil, reason.New(reason.Unavailable, "poster.fetch")
	}
	p, err := s.fetch(ctx)
	if err != nil {
		metrics.PosterFetches.WithLabelValues("error").Inc()
		s.logger(ctx).Error("Failed to fetch poster", "error", err)
		return nil, err
	}
	metrics.PosterFetches.WithLabelValues("api").Inc()
	p.FetchedAt = s.now().UTC()
	if !s.kv.SetJSON(ctx, CacheKey, p, CacheTTL) {
		s.logger(ctx).Warn("Failed to cache poster")
	}
	s.logger(ctx).Info("Fetched new poster", "photographer", p.Photographer)
	return p, nil
}

type unsplashPhoto struct {
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
	Links struct {
		HTML string `json:"html"`
	} `json:"links"`
}

func (s *Service) fetch(ctx context.Context) (*Poster, error) {
	q := url.Values{}
	q.Set("client_id", s.accessKey)
	q.Set("query", searchTerms[s.pick(len(searchTerms))])
	q.Set("orientation", "portrait")
	q.Set("content_filter", "high")
	q.Set("count", strconv.Itoa(1))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/photos/random?"+q.Encode(), nil)
	if err != nil {
		return nil, reason.Wrap(reason.Internal, "poster.fetch", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, reason.Wrap(reason.Unavailable, "poster.fetch", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, reason.Wrap(reason.Unavailable, "poster.fetch", fmt.Errorf("unsplash returned %s", resp.Status))
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, reason.Wrap(reason.Internal, "poster.fetch", err)
	}
	var photo unsplashPhoto
	if len(raw) > 0 && raw[0] == '[' {
		var photos []unsplashPhoto
		if err := json.Unmarshal(raw, &photos); err != nil {
			return nil, reason.Wrap(reason.Internal, "poster.fetch", err)
		}
		if len(photos) == 0 {
			return nil, reason.Wrap(reason.NotFound, "poster.fetch", fmt.Errorf("unsplash returned no photos"))
		}
		photo = photos[0]
	} else if err := json.Unmarshal(raw, &photo); err != nil {
		return nil, reason.Wrap(reason.Internal, "poster.fetch", err)
	}
	if photo.URLs.Regular == "" {
		return nil, reason.Wrap(reason.Internal, "poster.fetch", fmt.Errorf("photo has no url"))
	}

	desc := photo.AltDescription
	if desc == "" {
		desc = "Movie poster"
	}
	return &Poster{
		URL:             photo.URLs.Regular,
		ThumbURL:        photo.URLs.Thumb,
		Description:     desc,
		Photographer:    photo.User.Name,
		PhotographerURL: photo.User.Links.HTML,
		SourceURL:       photo.Links.HTML,
	}, nil
}

// PosterWithFallback never fails.
func (s *Service) PosterWithFallback(ctx context.Context) Poster {
	p, err := s.RandomPoster(ctx)
	if err != nil || p == nil {
		metrics.PosterFetches.WithLabelValues("fallback").Inc()
		return Fallback
	}
	return *p
}

func (s *Service) ClearCache(ctx context.Context) {
	s.kv.Delete(ctx, CacheKey)
	s.logger(ctx).Info("Poster cache cleared")
}

func (s *Service) Status(ctx context.Context) Status {
	st := Status{Configured: s.accessKey != ""}
	var cached Poster
	if s.kv.GetJSON(ctx, CacheKey, &cached) {
		st.Cached = true
		if !cached.FetchedAt.IsZero() {
			st.Age = s.now().Sub(cached.FetchedAt)
		}
	}
	return st
}
