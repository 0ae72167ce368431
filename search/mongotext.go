package search

import (
	"context"
	"strings"
	"time"

	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoText searches the search_index collection through its text index.
type mongoText struct {
	coll *mongo.Collection
	now  func() time.Time
}

func newMongoText(coll *mongo.Collection) *mongoText {
	return &mongoText{coll: coll, now: func() time.Time { return time.Now().UTC() }}
}

func (m *mongoText) IndexDocument(ctx context.Context, fileID, title, content string, metadata map[string]any) error {
	if m.coll == nil {
		return reason.New(reason.Unavailable, "search.index")
	}
	full := strings.TrimSpace(title + " " + content)
	doc := database.SearchDocument{
		FileID:      fileID,
		Title:       title,
		Content:     content,
		FullText:    full,
		SearchTerms: terms(full),
		Metadata:    metadata,
		IndexedAt:   m.now(),
	}
	_, err := m.coll.UpdateOne(ctx, bson.M{"file_id": fileID}, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return database.Classify("search.index", err)
}

func (m *mongoText) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if m.coll == nil {
		return nil, reason.New(reason.Unavailable, "search.query")
	}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(limit))
	cur, err := m.coll.Find(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
	if err != nil {
		return nil, database.Classify("search.query", err)
	}
	var docs []database.SearchDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, database.Classify("search.query", err)
	}
	results := make([]Result, 0, len(docs))
	for _, d := range docs {
		results = append(results, Result{
			FileID:   d.FileID,
			Title:    d.Title,
			Content:  d.Content,
			Metadata: d.Metadata,
			Score:    d.Score,
		})
	}
	return results, nil
}

func (m *mongoText) DeleteDocument(ctx context.Context, fileID string) error {
	if m.coll == nil {
		return reason.New(reason.Unavailable, "search.delete")
	}
	res, err := m.coll.DeleteMany(ctx, bson.M{"file_id": fileID})
	if err != nil {
		return database.Classify("search.delete", err)
	}
	if res.DeletedCount == 0 {
		return reason.New(reason.NotFound, "search.delete")
	}
	return nil
}

func (m *mongoText) Close() error { return nil }
