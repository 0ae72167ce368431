package search

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/searchengine"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
)

type fakeBackend struct {
	searches int
	indexed  map[string]string
}

func (f *fakeBackend) IndexDocument(_ context.Context, fileID, title, content string, _ map[string]any) error {
	if f.indexed == nil {
		f.indexed = make(map[string]string)
	}
	f.indexed[fileID] = content
	return nil
}

func (f *fakeBackend) Search(_ context.Context, query string, limit int) ([]Result, error) {
	f.searches++
	out := make([]Result, 0)
	for id := range f.indexed {
		out = append(out, Result{FileID: id})
	}
	return out, nil
}

func (f *fakeBackend) DeleteDocument(_ context.Context, fileID string) error {
	if _, ok := f.indexed[fileID]; !ok {
		return reason.New(reason.NotFound, "fake.delete")
	}
	delete(f.indexed, fileID)
	return nil
}

func (f *fakeBackend) Close() error { return nil }

func TestBuildContent(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     string
	}{
		{"name and type only", nil, "Heat.mkv video"},
		{"all parts", map[string]any{
			"description":  "crime thriller",
			"tags":         []string{"crime", "1995"},
			"channel_name": "Classics",
		}, "Heat.mkv video crime thriller crime 1995 Classics"},
		{"empty parts skipped", map[string]any{
			"description":  "  ",
			"tags":         []any{"mann"},
			"channel_name": "",
		}, "Heat.mkv video mann"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildContent("Heat.mkv", "video", tt.metadata); got != tt.want {
				t.Fatalf("BuildContent = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceMemoisesUntilIndexChanges(t *testing.T) {
	ctx := testContext()
	fb := &fakeBackend{}
	svc, err := NewWithBackend(searchengine.MongodbText, fb, 0, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	if err := svc.IndexMediaFile(ctx, "1_1", "Heat.mkv", "video", nil); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if _, err := svc.Search(ctx, "heat", 0); err != nil {
			t.Fatal(err)
		}
	}
	if fb.searches != 1 {
		t.Fatalf("backend searched %d times, want 1", fb.searches)
	}

	if err := svc.IndexMediaFile(ctx, "1_2", "Ronin.mkv", "video", nil); err != nil {
		t.Fatal(err)
	}
	res, err := svc.Search(ctx, "heat", 0)
	if err != nil {
		t.Fatal(err)
	}
	if fb.searches != 2 || len(res) != 2 {
		t.Fatalf("searches = %d, results = %d", fb.searches, len(res))
	}
}

// pausingBackend holds its first search after reading results until
// release is closed.
type pausingBackend struct {
	fakeBackend
	entered chan struct{}
	release chan struct{}
	paused  bool
}

func (p *pausingBackend) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	res, err := p.fakeBackend.Search(ctx, query, limit)
	if !p.paused {
		p.paused = true
		close(p.entered)
		<-p.release
	}
	return res, err
}

func TestServiceSearchDuringIndexNotMemoised(t *testing.T) {
	ctx := testContext()
	pb := &pausingBackend{entered: make(chan struct{}), release: make(chan struct{})}
	svc, err := NewWithBackend(searchengine.MongodbText, pb, 0, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	done := make(chan []Result, 1)
	go func() {
		res, err := svc.Search(ctx, "heat", 0)
		if err != nil {
			t.Error(err)
		}
		done <- res
	}()
	<-pb.entered
	if err := svc.IndexMediaFile(ctx, "1_1", "Heat.mkv", "video", nil); err != nil {
		t.Fatal(err)
	}
	close(pb.release)
	if first := <-done; len(first) != 0 {
		t.Fatalf("in-flight search = %d results, want 0", len(first))
	}

	res, err := svc.Search(ctx, "heat", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || pb.searches != 2 {
		t.Fatalf("after index, results = %d, backend searches = %d, want 1 and 2", len(res), pb.searches)
	}
}

func TestServiceBlankQuery(t *testing.T) {
	fb := &fakeBackend{}
	svc, err := NewWithBackend(searchengine.MongodbText, fb, 10, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	res, err := svc.Search(testContext(), "   ", 0)
	if err != nil || len(res) != 0 || fb.searches != 0 {
		t.Fatalf("Search(blank) = %v, %v (searches %d)", res, err, fb.searches)
	}
}

func TestServiceDeleteMedia(t *testing.T) {
	ctx := testContext()
	svc, err := NewWithBackend(searchengine.MongodbText, &fakeBackend{}, 10, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.IndexMediaFile(ctx, "1_1", "Heat.mkv", "video", nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteMedia(ctx, "1_1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteMedia(ctx, "1_1"); !errors.Is(err, reason.ErrNotFound) {
		t.Fatalf("second delete = %v, want not found", err)
	}
}

func TestNewResolvesEngine(t *testing.T) {
	ctx := testContext()
	gw := database.NewGateway(config.MongoConfig{URI: "mongodb://localhost:27017/media_bot"})

	tests := []struct {
		name         string
		engine       string
		esEnabled    bool
		wantActive   searchengine.Engine
		wantFallback bool
	}{
		{"default", "", false, searchengine.MongodbText, false},
		{"unknown name", "lucene", false, searchengine.MongodbText, true},
		{"elasticsearch disabled", "elasticsearch", false, searchengine.MongodbText, true},
		{"elasticsearch unreachable", "elasticsearch", true, searchengine.MongodbText, true},
		{"legacy whoosh name", "whoosh", false, searchengine.Fileindex, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				Search: config.SearchConfig{
					Engine:       tt.engine,
					ResultsLimit: 50,
					IndexPath:    filepath.Join(t.TempDir(), "index.db"),
				},
				Elasticsearch: config.ElasticsearchConfig{
					Enabled: tt.esEnabled,
					URL:     "http://127.0.0.1:1",
					Index:   "media_files",
				},
			}
			svc, err := New(ctx, cfg, gw)
			if err != nil {
				t.Fatal(err)
			}
			defer svc.Close()
			st := svc.Status()
			if st.Active != tt.wantActive || st.Fallback != tt.wantFallback {
				t.Fatalf("Status = %+v", st)
			}
		})
	}
}
