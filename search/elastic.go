package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
)

const elasticMapping = `{
	"mappings": {
		"properties": {
			"file_id": {"type": "keyword"},
			"title": {"type": "text"},
			"content": {"type": "text"},
			"metadata": {"type": "object", "enabled": false},
			"indexed_at": {"type": "date"}
		}
	}
}`

type elasticBackend struct {
	client *elasticsearch.Client
	index  string
}

func newElastic(ctx context.Context, cfg config.ElasticsearchConfig, transport http.RoundTripper) (*elasticBackend, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    []string{cfg.Address()},
		Username:     cfg.Username,
		Password:     cfg.Password,
		Transport:    transport,
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	e := &elasticBackend{client: client, index: cfg.Index}
	if err := e.ping(ctx); err != nil {
		return nil, err
	}
	if err := e.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure index: %w", err)
	}
	return e, nil
}

func (e *elasticBackend) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping: %s", res.Status())
	}
	return nil
}

func (e *elasticBackend) ensureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = e.client.Indices.Create(
		e.index,
		e.client.Indices.Create.WithBody(strings.NewReader(elasticMapping)),
		e.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.Status())
	}
	return nil
}

func (e *elasticBackend) IndexDocument(ctx context.Context, fileID, title, content string, metadata map[string]any) error {
	data, err := json.Marshal(map[string]any{
		"file_id":    fileID,
		"title":      title,
		"content":    content,
		"metadata":   metadata,
		"indexed_at": time.Now().UTC(),
	})
	if err != nil {
		return reason.Wrap(reason.Invalid, "search.index", err)
	}
	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: fileID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return reason.Wrap(reason.Unavailable, "search.index", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return reason.Wrap(reason.Internal, "search.index", fmt.Errorf("index document: %s", res.Status()))
	}
	return nil
}

func (e *elasticBackend) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	data, err := json.Marshal(map[string]any{
		"size": limit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^3", "content"},
				"fuzziness": "AUTO",
			},
		},
	})
	if err != nil {
		return nil, reason.Wrap(reason.Invalid, "search.query", err)
	}
	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, reason.Wrap(reason.Unavailable, "search.query", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, reason.Wrap(reason.Internal, "search.query", fmt.Errorf("search: %s", res.Status()))
	}

	var body struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Score  float64 `json:"_score"`
				Source struct {
					FileID   string         `json:"file_id"`
					Title    string         `json:"title"`
					Content  string         `json:"content"`
					Metadata map[string]any `json:"metadata"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, reason.Wrap(reason.Internal, "search.query", err)
	}
	results := make([]Result, 0, len(body.Hits.Hits))
	for _, h := range body.Hits.Hits {
		id := h.Source.FileID
		if id == "" {
			id = h.ID
		}
		results = append(results, Result{
			FileID:   id,
			Title:    h.Source.Title,
			Content:  h.Source.Content,
			Metadata: h.Source.Metadata,
			Score:    h.Score,
		})
	}
	return results, nil
}

func (e *elasticBackend) DeleteDocument(ctx context.Context, fileID string) error {
	req := esapi.DeleteRequest{
		Index:      e.index,
		DocumentID: fileID,
		Refresh:    "true",
	}
	res, err := req.Do(ctx, e.client)
	if err != nil {
		return reason.Wrap(reason.Unavailable, "search.delete", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return reason.New(reason.NotFound, "search.delete")
	}
	if res.IsError() {
		return reason.Wrap(reason.Internal, "search.delete", fmt.Errorf("delete document: %s", res.Status()))
	}
	return nil
}

func (e *elasticBackend) Close() error { return nil }
