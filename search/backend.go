package search

import (
	"context"
	"strings"
	"unicode"

	"github.com/duke-git/lancet/v2/slice"
)

type Result struct {
	FileID   string         `json:"file_id"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Score    float64        `json:"score"`
}

// Backend is implemented by each search engine. DeleteDocument reports
// reason.ErrNotFound when the document was not indexed.
type Backend interface {
	IndexDocument(ctx context.Context, fileID, title, content string, metadata map[string]any) error
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	DeleteDocument(ctx context.Context, fileID string) error
	Close() error
}

// terms splits text into distinct lower case words.
func terms(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return slice.Unique(words)
}
