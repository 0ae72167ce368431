package database

import (
	"time"

	"github.com/mediaindex/mediaindex-bot/pkg/enums/adminlevel"
)

type User struct {
	UserID     int64            `bson:"user_id" json:"user_id"`
	Username   string           `bson:"username,omitempty" json:"username,omitempty"`
	FirstName  string           `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName   string           `bson:"last_name,omitempty" json:"last_name,omitempty"`
	IsAdmin    bool             `bson:"is_admin" json:"is_admin"`
	AdminLevel adminlevel.Level `bson:"admin_level" json:"admin_level"`
	PromotedBy int64            `bson:"promoted_by,omitempty" json:"promoted_by,omitempty"`
	PromotedAt *time.Time       `bson:"promoted_at,omitempty" json:"promoted_at,omitempty"`
	IsBanned   bool             `bson:"is_banned" json:"is_banned"`
	CreatedAt  time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `bson:"updated_at" json:"updated_at"`

	// Virtual marks the synthesised entry for a super admin without a
	// stored record.
	Virtual bool `bson:"-" json:"-"`
}

// ChannelSettings are stored inline on the channel document.
type ChannelSettings struct {
	AutoIndex        bool     `bson:"auto_index" json:"auto_index" mapstructure:"auto_index"`
	AllowDuplicates  bool     `bson:"allow_duplicates" json:"allow_duplicates" mapstructure:"allow_duplicates"`
	FileTypesAllowed []string `bson:"file_types_allowed" json:"file_types_allowed" mapstructure:"file_types_allowed"`
	MaxFileSize      int64    `bson:"max_file_size" json:"max_file_size" mapstructure:"max_file_size"`
}

type Channel struct {
	ChannelID   int64  `bson:"channel_id" json:"channel_id"`
	Username    string `bson:"channel_username,omitempty" json:"channel_username,omitempty"`
	Name        string `bson:"channel_name,omitempty" json:"channel_name,omitempty"`
	IsActive    bool   `bson:"is_active" json:"is_active"`
	IsMonitored bool   `bson:"is_monitored" json:"is_monitored"`
	AddedBy     int64  `bson:"added_by,omitempty" json:"added_by,omitempty"`

	ChannelSettings `bson:",inline"`

	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
	UpdatedBy     int64      `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	RemovedBy     int64      `bson:"removed_by,omitempty" json:"removed_by,omitempty"`
	RemovedAt     *time.Time `bson:"removed_at,omitempty" json:"removed_at,omitempty"`
	ReactivatedBy int64      `bson:"reactivated_by,omitempty" json:"reactivated_by,omitempty"`
	ReactivatedAt *time.Time `bson:"reactivated_at,omitempty" json:"reactivated_at,omitempty"`
}

type MediaFile struct {
	FileID       string    `bson:"file_id" json:"file_id"`
	FileUniqueID string    `bson:"file_unique_id,omitempty" json:"file_unique_id,omitempty"`
	ChannelID    int64     `bson:"channel_id" json:"channel_id"`
	MessageID    int       `bson:"message_id" json:"message_id"`
	FileName     string    `bson:"file_name" json:"file_name"`
	FileType     string    `bson:"file_type" json:"file_type"`
	MimeType     string    `bson:"mime_type,omitempty" json:"mime_type,omitempty"`
	FileSize     int64     `bson:"file_size" json:"file_size"`
	Caption      string    `bson:"caption,omitempty" json:"caption,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// SearchDocument is the record kept by the document store search backend.
type SearchDocument struct {
	FileID      string         `bson:"file_id" json:"file_id"`
	Title       string         `bson:"title" json:"title"`
	Content     string         `bson:"content" json:"content"`
	FullText    string         `bson:"full_text" json:"full_text"`
	SearchTerms []string       `bson:"search_terms" json:"search_terms"`
	Metadata    map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	IndexedAt   time.Time      `bson:"indexed_at" json:"indexed_at"`
	Score       float64        `bson:"score,omitempty" json:"score,omitempty"`
}

type BotStat struct {
	StatType  string         `bson:"stat_type" json:"stat_type"`
	UserID    int64          `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
}
