// Package stats records usage events in the bot_stats collection.
package stats

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	TypeCommand = "command"
	TypeSearch  = "search"
	TypeIndex   = "index"
)

type Recorder struct {
	stats *mongo.Collection
	now   func() time.Time
}

func NewRecorder(stats *mongo.Collection) *Recorder {
	return &Recorder{
		stats: stats,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Record stores one event. Failures are logged and otherwise ignored.
func (r *Recorder) Record(ctx context.Context, statType string, userID int64, data map[string]any) {
	if r.stats == nil {
		return
	}
	_, err := r.stats.InsertOne(ctx, database.BotStat{
		StatType:  statType,
		UserID:    userID,
		Timestamp: r.now(),
		Data:      data,
	})
	if err != nil {
		log.FromContext(ctx).WithPrefix("stats").Warn("Failed to record stat", "type", statType, "error", err)
	}
}

// Summary counts events per type recorded at or after since.
func (r *Recorder) Summary(ctx context.Context, since time.Time) (map[string]int64, error) {
	if r.stats == nil {
		return nil, reason.New(reason.Unavailable, "stats.summary")
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"timestamp": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{"_id": "$stat_type", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.stats.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, database.Classify("stats.summary", err)
	}
	var rows []struct {
		Type  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, database.Classify("stats.summary", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Type] = row.Count
	}
	return out, nil
}
