package search

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"gorm.io/gorm"
)

const ftsSchema = `CREATE VIRTUAL TABLE IF NOT EXISTS documents USING fts5(
	file_id UNINDEXED,
	title,
	content,
	metadata UNINDEXED,
	tokenize = 'porter unicode61'
)`

// fileIndex is a local SQLite FTS5 index.
type fileIndex struct {
	db *gorm.DB
}

// newFileIndex opens the index at path. An existing directory gets an
// index.db file inside it.
func newFileIndex(ctx context.Context, path string) (*fileIndex, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, "index.db")
	}
	db, err := database.OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Exec(ftsSchema).Error; err != nil {
		if sqlDB, derr := db.DB(); derr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("failed to create fts table: %w", err)
	}
	return &fileIndex{db: db}, nil
}

func (f *fileIndex) IndexDocument(ctx context.Context, fileID, title, content string, metadata map[string]any) error {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return reason.Wrap(reason.Invalid, "search.index", err)
	}
	err = f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM documents WHERE file_id = ?", fileID).Error; err != nil {
			return err
		}
		return tx.Exec("INSERT INTO documents (file_id, title, content, metadata) VALUES (?, ?, ?, ?)",
			fileID, title, content, string(meta)).Error
	})
	if err != nil {
		return reason.Wrap(reason.Internal, "search.index", err)
	}
	return nil
}

// matchQuery quotes every term so user input cannot reach the FTS5 query
// grammar. Terms are ANDed.
func matchQuery(query string) string {
	words := terms(query)
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		quoted = append(quoted, `"`+strings.ReplaceAll(w, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}

type ftsRow struct {
	FileID   string
	Title    string
	Content  string
	Metadata string
	Score    float64
}

func (f *fileIndex) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	match := matchQuery(query)
	if match == "" {
		return []Result{}, nil
	}
	var rows []ftsRow
	err := f.db.WithContext(ctx).Raw(
		`SELECT file_id, title, content, metadata, -bm25(documents, 0.0, 3.0, 1.0, 0.0) AS score
		FROM documents WHERE documents MATCH ? ORDER BY score DESC LIMIT ?`,
		match, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, reason.Wrap(reason.Internal, "search.query", err)
	}
	results := make([]Result, 0, len(rows))
	for _, r := range rows {
		res := Result{FileID: r.FileID, Title: r.Title, Content: r.Content, Score: r.Score}
		if r.Metadata != "" && r.Metadata != "null" {
			if err := json.Unmarshal([]byte(r.Metadata), &res.Metadata); err != nil {
				log.FromContext(ctx).WithPrefix("search").Debug("Dropping unreadable metadata", "file_id", r.FileID, "error", err)
				res.Metadata = nil
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (f *fileIndex) DeleteDocument(ctx context.Context, fileID string) error {
	res := f.db.WithContext(ctx).Exec("DELETE FROM documents WHERE file_id = ?", fileID)
	if res.Error != nil {
		return reason.Wrap(reason.Internal, "search.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return reason.New(reason.NotFound, "search.delete")
	}
	return nil
}

func (f *fileIndex) Close() error {
	sqlDB, err := f.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
