// Package media keeps the catalog of files posted to monitored channels.
package media

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/common/utils/tgutil"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FileID is the catalog key of a channel message.
func FileID(channelID int64, messageID int) string {
	return fmt.Sprintf("%d_%d", channelID, messageID)
}

// NewFile builds the catalog record for a channel post.
func NewFile(channelID int64, messageID int, info tgutil.MediaInfo, caption string, now time.Time) database.MediaFile {
	return database.MediaFile{
		FileID:       FileID(channelID, messageID),
		FileUniqueID: fmt.Sprintf("%d", info.DocumentID),
		ChannelID:    channelID,
		MessageID:    messageID,
		FileName:     info.Name,
		FileType:     info.Type.String(),
		MimeType:     info.MimeType,
		FileSize:     info.Size,
		Caption:      caption,
		CreatedAt:    now,
	}
}

type Catalog struct {
	files *mongo.Collection
}

func NewCatalog(files *mongo.Collection) *Catalog {
	return &Catalog{files: files}
}

func (c *Catalog) logger(ctx context.Context) *log.Logger {
	return log.FromContext(ctx).WithPrefix("media")
}

// Save upserts a record keyed by file_id.
func (c *Catalog) Save(ctx context.Context, f database.MediaFile) error {
	if c.files == nil {
		return reason.New(reason.Unavailable, "media.save")
	}
	_, err := c.files.UpdateOne(ctx,
		bson.M{"file_id": f.FileID},
		bson.M{"$set": f},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		err = database.Classify("media.save", err)
		c.logger(ctx).Error("Failed to save media file", "file_id", f.FileID, "error", err)
		return err
	}
	c.logger(ctx).Debug("Media file saved", "file_id", f.FileID, "name", f.FileName)
	return nil
}

// HasDuplicate reports whether the channel already holds a file with the
// same Telegram unique id.
func (c *Catalog) HasDuplicate(ctx context.Context, channelID int64, uniqueID string) (bool, error) {
	if c.files == nil {
		return false, reason.New(reason.Unavailable, "media.has_duplicate")
	}
	n, err := c.files.CountDocuments(ctx,
		bson.M{"channel_id": channelID, "file_unique_id": uniqueID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, database.Classify("media.has_duplicate", err)
	}
	return n > 0, nil
}

func (c *Catalog) Get(ctx context.Context, fileID string) (*database.MediaFile, error) {
	if c.files == nil {
		return nil, reason.New(reason.Unavailable, "media.get")
	}
	var f database.MediaFile
	if err := c.files.FindOne(ctx, bson.M{"file_id": fileID}).Decode(&f); err != nil {
		return nil, database.Classify("media.get", err)
	}
	return &f, nil
}

// Delete removes a record. The caller drops the search entry separately.
func (c *Catalog) Delete(ctx context.Context, fileID string) error {
	if c.files == nil {
		return reason.New(reason.Unavailable, "media.delete")
	}
	res, err := c.files.DeleteOne(ctx, bson.M{"file_id": fileID})
	if err != nil {
		return database.Classify("media.delete", err)
	}
	if res.DeletedCount == 0 {
		return reason.New(reason.NotFound, "media.delete")
	}
	c.logger(ctx).Info("Media file deleted", "file_id", fileID)
	return nil
}

func (c *Catalog) Count(ctx context.Context) (int64, error) {
	if c.files == nil {
		return 0, reason.New(reason.Unavailable, "media.count")
	}
	n, err := c.files.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, database.Classify("media.count", err)
	}
	return n, nil
}

// Recent lists the newest records, newest first.
func (c *Catalog) Recent(ctx context.Context, limit int64) ([]database.MediaFile, error) {
	if c.files == nil {
		return nil, reason.New(reason.Unavailable, "media.recent")
	}
	cur, err := c.files.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, database.Classify("media.recent", err)
	}
	files := make([]database.MediaFile, 0)
	if err := cur.All(ctx, &files); err != nil {
		return nil, database.Classify("media.recent", err)
	}
	return files, nil
}
