// Package channel manages the monitored channel roster. Removal is a soft
// delete and adding a removed channel again reactivates its record.
package channel

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/filetype"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMaxFileSize is the per channel size ceiling for new channels.
const DefaultMaxFileSize int64 = 2 << 30

func DefaultSettings() database.ChannelSettings {
	return database.ChannelSettings{
		AutoIndex:       true,
		AllowDuplicates: false,
		FileTypesAllowed: []string{
			filetype.Video.String(),
			filetype.Audio.String(),
			filetype.Document.String(),
			filetype.Photo.String(),
		},
		MaxFileSize: DefaultMaxFileSize,
	}
}

type AddResult int

const (
	Created AddResult = iota
	Reactivated
	AlreadyActive
)

func (r AddResult) String() string {
	switch r {
	case Created:
		return "created"
	case Reactivated:
		return "reactivated"
	case AlreadyActive:
		return "already_active"
	}
	return "unknown"
}

type Stats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type Registry struct {
	channels *mongo.Collection
	now      func() time.Time
}

func NewRegistry(channels *mongo.Collection) *Registry {
	return &Registry{
		channels: channels,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *Registry) logger(ctx context.Context) *log.Logger {
	return log.FromContext(ctx).WithPrefix("channel")
}

func (r *Registry) unavailable(op string) error {
	return reason.New(reason.Unavailable, op)
}

// Add registers a channel. A previously removed channel is reactivated in
// place and keeps the settings it had before removal.
func (r *Registry) Add(ctx context.Context, channelID int64, username, name string, addedBy int64) (AddResult, error) {
	if r.channels == nil {
		return 0, r.unavailable("channel.add")
	}
	logger := r.logger(ctx)
	existing, err := r.Info(ctx, channelID)
	switch {
	case err == nil && existing.IsActive:
		logger.Debug("Channel already active", "channel_id", channelID)
		return AlreadyActive, nil
	case err == nil:
		now := r.now()
		_, err := r.channels.UpdateOne(ctx, bson.M{"channel_id": channelID}, bson.M{"$set": bson.M{
			"is_active":      true,
			"is_monitored":   true,
			"updated_at":     now,
			"reactivated_by": addedBy,
			"reactivated_at": now,
		}})
		if err != nil {
			err = database.Classify("channel.add", err)
			logger.Error("Failed to reactivate channel", "channel_id", channelID, "error", err)
			return 0, err
		}
		logger.Info("Channel reactivated", "channel_id", channelID, "by", addedBy)
		return Reactivated, nil
	case !errors.Is(err, reason.ErrNotFound):
		return 0, err
	}

	now := r.now()
	doc := database.Channel{
		ChannelID:       channelID,
		Username:        username,
		Name:            name,
		IsActive:        true,
		IsMonitored:     true,
		AddedBy:         addedBy,
		ChannelSettings: DefaultSettings(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := r.channels.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// lost a race with a concurrent add
			return AlreadyActive, nil
		}
		err = database.Classify("channel.add", err)
		logger.Error("Failed to add channel", "channel_id", channelID, "error", err)
		return 0, err
	}
	logger.Info("Channel added", "channel_id", channelID, "username", username, "by", addedBy)
	return Created, nil
}

// Remove soft deletes an active channel. Removing an unknown or already
// inactive channel reports reason.ErrNotFound and leaves it untouched.
func (r *Registry) Remove(ctx context.Context, channelID, removedBy int64) error {
	if r.channels == nil {
		return r.unavailable("channel.remove")
	}
	now := r.now()
	res, err := r.channels.UpdateOne(ctx,
		bson.M{"channel_id": channelID, "is_active": true},
		bson.M{"$set": bson.M{
			"is_active":    false,
			"is_monitored": false,
			"removed_by":   removedBy,
			"removed_at":   now,
			"updated_at":   now,
		}})
	if err != nil {
		err = database.Classify("channel.remove", err)
		r.logger(ctx).Error("Failed to remove channel", "channel_id", channelID, "error", err)
		return err
	}
	if res.MatchedCount == 0 {
		r.logger(ctx).Warn("Channel not found or already inactive", "channel_id", channelID)
		return reason.New(reason.NotFound, "channel.remove")
	}
	r.logger(ctx).Info("Channel removed", "channel_id", channelID, "by", removedBy)
	return nil
}

func (r *Registry) list(ctx context.Context, op string, filter bson.M) ([]database.Channel, error) {
	if r.channels == nil {
		return nil, r.unavailable(op)
	}
	cur, err := r.channels.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		err = database.Classify(op, err)
		r.logger(ctx).Error("Failed to list channels", "error", err)
		return nil, err
	}
	channels := make([]database.Channel, 0)
	if err := cur.All(ctx, &channels); err != nil {
		return nil, database.Classify(op, err)
	}
	return channels, nil
}

// ActiveChannels lists channels that are active and monitored, oldest first.
func (r *Registry) ActiveChannels(ctx context.Context) ([]database.Channel, error) {
	return r.list(ctx, "channel.active", bson.M{"is_active": true, "is_monitored": true})
}

func (r *Registry) AllChannels(ctx context.Context, includeInactive bool) ([]database.Channel, error) {
	filter := bson.M{}
	if !includeInactive {
		filter["is_active"] = true
	}
	return r.list(ctx, "channel.all", filter)
}

func (r *Registry) Info(ctx context.Context, channelID int64) (*database.Channel, error) {
	if r.channels == nil {
		return nil, r.unavailable("channel.info")
	}
	var ch database.Channel
	if err := r.channels.FindOne(ctx, bson.M{"channel_id": channelID}).Decode(&ch); err != nil {
		err = database.Classify("channel.info", err)
		if !errors.Is(err, reason.ErrNotFound) {
			r.logger(ctx).Error("Failed to get channel", "channel_id", channelID, "error", err)
		}
		return nil, err
	}
	return &ch, nil
}

// UpdateSettings applies a validated patch to an active channel.
func (r *Registry) UpdateSettings(ctx context.Context, channelID int64, patch SettingsPatch, updatedBy int64) error {
	if err := patch.Validate(); err != nil {
		return reason.Wrap(reason.Invalid, "channel.update_settings", err)
	}
	if r.channels == nil {
		return r.unavailable("channel.update_settings")
	}
	set := patch.fields()
	set["updated_at"] = r.now()
	set["updated_by"] = updatedBy
	res, err := r.channels.UpdateOne(ctx, bson.M{"channel_id": channelID, "is_active": true}, bson.M{"$set": set})
	if err != nil {
		err = database.Classify("channel.update_settings", err)
		r.logger(ctx).Error("Failed to update channel settings", "channel_id", channelID, "error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return reason.New(reason.NotFound, "channel.update_settings")
	}
	r.logger(ctx).Info("Channel settings updated", "channel_id", channelID, "by", updatedBy)
	return nil
}

// IsMonitored is true only for channels that are both active and monitored.
func (r *Registry) IsMonitored(ctx context.Context, channelID int64) (bool, error) {
	if r.channels == nil {
		return false, r.unavailable("channel.is_monitored")
	}
	err := r.channels.FindOne(ctx, bson.M{"channel_id": channelID, "is_active": true, "is_monitored": true}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		err = database.Classify("channel.is_monitored", err)
		r.logger(ctx).Error("Failed to check channel monitoring", "channel_id", channelID, "error", err)
		return false, err
	}
	return true, nil
}

func (r *Registry) ToggleMonitoring(ctx context.Context, channelID int64, enabled bool, updatedBy int64) error {
	if r.channels == nil {
		return r.unavailable("channel.toggle_monitoring")
	}
	res, err := r.channels.UpdateOne(ctx,
		bson.M{"channel_id": channelID, "is_active": true},
		bson.M{"$set": bson.M{
			"is_monitored": enabled,
			"updated_at":   r.now(),
			"updated_by":   updatedBy,
		}})
	if err != nil {
		err = database.Classify("channel.toggle_monitoring", err)
		r.logger(ctx).Error("Failed to toggle monitoring", "channel_id", channelID, "error", err)
		return err
	}
	if res.MatchedCount == 0 {
		return reason.New(reason.NotFound, "channel.toggle_monitoring")
	}
	r.logger(ctx).Info("Channel monitoring toggled", "channel_id", channelID, "enabled", enabled)
	return nil
}

func (r *Registry) Stats(ctx context.Context) (Stats, error) {
	if r.channels == nil {
		return Stats{}, r.unavailable("channel.stats")
	}
	total, err := r.channels.CountDocuments(ctx, bson.M{})
	if err != nil {
		err = database.Classify("channel.stats", err)
		r.logger(ctx).Error("Failed to count channels", "error", err)
		return Stats{}, err
	}
	active, err := r.channels.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		err = database.Classify("channel.stats", err)
		r.logger(ctx).Error("Failed to count active channels", "error", err)
		return Stats{}, err
	}
	return Stats{Total: total, Active: active, Inactive: total - active}, nil
}

// MonitoredCount counts channels that are active and monitored.
func (r *Registry) MonitoredCount(ctx context.Context) (int64, error) {
	if r.channels == nil {
		return 0, r.unavailable("channel.monitored_count")
	}
	n, err := r.channels.CountDocuments(ctx, bson.M{"is_active": true, "is_monitored": true})
	if err != nil {
		return 0, database.Classify("channel.monitored_count", err)
	}
	return n, nil
}

// ActiveCount counts channels that have not been removed.
func (r *Registry) ActiveCount(ctx context.Context) (int64, error) {
	if r.channels == nil {
		return 0, r.unavailable("channel.active_count")
	}
	n, err := r.channels.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, database.Classify("channel.active_count", err)
	}
	return n, nil
}
