package database

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

func asc(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
}

func unique(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}, Options: options.Index().SetUnique(true)}
}

func text(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: "text"}}}
}

func compound(keys ...bson.E) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D(keys)}
}

func IndexPolicy() []IndexSpec {
	return []IndexSpec{
		{UsersCollection, []mongo.IndexModel{
			unique("user_id"),
			asc("username"),
			asc("is_admin"),
			asc("created_at"),
		}},
		{ChannelsCollection, []mongo.IndexModel{
			unique("channel_id"),
			asc("channel_username"),
			asc("is_active"),
			asc("is_monitored"),
			asc("added_by"),
			compound(bson.E{Key: "is_active", Value: 1}, bson.E{Key: "is_monitored", Value: 1}),
		}},
		{MediaFilesCollection, []mongo.IndexModel{
			unique("file_id"),
			asc("channel_id"),
			asc("file_type"),
			text("file_name"),
			asc("created_at"),
			compound(bson.E{Key: "channel_id", Value: 1}, bson.E{Key: "file_type", Value: 1}),
			compound(bson.E{Key: "channel_id", Value: 1}, bson.E{Key: "created_at", Value: -1}),
		}},
		{SearchIndexCollection, []mongo.IndexModel{
			asc("file_id"),
			asc("search_terms"),
			text("full_text"),
		}},
		{BotStatsCollection, []mongo.IndexModel{
			asc("stat_type"),
			asc("timestamp"),
			compound(bson.E{Key: "stat_type", Value: 1}, bson.E{Key: "timestamp", Value: -1}),
		}},
	}
}
