package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const DefaultDatabaseName = "media_bot"

const (
	UsersCollection       = "users"
	ChannelsCollection    = "channels"
	MediaFilesCollection  = "media_files"
	SearchIndexCollection = "search_index"
	BotStatsCollection    = "bot_stats"
)

// Collections lists every collection the bot relies on, in creation order.
var Collections = []string{
	UsersCollection,
	ChannelsCollection,
	MediaFilesCollection,
	SearchIndexCollection,
	BotStatsCollection,
}

const (
	serverSelectionTimeout = 5 * time.Second
	connectTimeout         = 10 * time.Second
	socketTimeout          = 20 * time.Second
	maxPoolSize            = 50
)

// Gateway owns the connection to the document store.
type Gateway struct {
	uri    string
	name   string
	client *mongo.Client
	db     *mongo.Database
}

func NewGateway(cfg config.MongoConfig) *Gateway {
	return &Gateway{uri: cfg.URI, name: DatabaseNameFromURI(cfg.URI)}
}

// NewGatewayFromDatabase wraps an already connected database handle.
func NewGatewayFromDatabase(db *mongo.Database) *Gateway {
	return &Gateway{name: db.Name(), client: db.Client(), db: db}
}

// DatabaseNameFromURI returns the database named by the path segment of a
// connection string, or DefaultDatabaseName when there is none.
func DatabaseNameFromURI(uri string) string {
	rest := uri
	if _, after, ok := strings.Cut(uri, "://"); ok {
		rest = after
	}
	_, path, ok := strings.Cut(rest, "/")
	if !ok {
		return DefaultDatabaseName
	}
	path, _, _ = strings.Cut(path, "?")
	if path == "" {
		return DefaultDatabaseName
	}
	return path
}

func clientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetConnectTimeout(connectTimeout).
		SetSocketTimeout(socketTimeout).
		SetMaxPoolSize(maxPoolSize).
		SetRetryWrites(true)
}

func (g *Gateway) Connect(ctx context.Context) error {
	logger := log.FromContext(ctx).WithPrefix("mongo")
	client, err := mongo.Connect(ctx, clientOptions(g.uri))
	if err != nil {
		return reason.Wrap(reason.Unavailable, "mongo.connect", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return reason.Wrap(reason.Unavailable, "mongo.connect", err)
	}
	g.client = client
	g.db = client.Database(g.name)
	logger.Info("Connected to MongoDB", "database", g.name)
	return nil
}

func (g *Gateway) Connected() bool {
	return g.db != nil
}

func (g *Gateway) DatabaseName() string {
	return g.name
}

// Collection returns the named collection, or nil when not connected.
func (g *Gateway) Collection(name string) *mongo.Collection {
	if g.db == nil {
		return nil
	}
	return g.db.Collection(name)
}

func (g *Gateway) CreateIndexes(ctx context.Context) error {
	if g.db == nil {
		return reason.New(reason.Unavailable, "mongo.create_indexes")
	}
	logger := log.FromContext(ctx).WithPrefix("mongo")
	for _, spec := range IndexPolicy() {
		if _, err := g.db.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models); err != nil {
			return Classify("mongo.create_indexes", fmt.Errorf("%s: %w", spec.Collection, err))
		}
		logger.Debug("Indexes ensured", "collection", spec.Collection, "count", len(spec.Models))
	}
	logger.Info("Database indexes created")
	return nil
}

type ConnectionStatus struct {
	Connected     bool     `json:"connected"`
	DatabaseName  string   `json:"database_name"`
	Collections   []string `json:"collections"`
	ServerVersion string   `json:"server_version,omitempty"`
	Error         string   `json:"error,omitempty"`
}

func (g *Gateway) TestConnection(ctx context.Context) ConnectionStatus {
	st := ConnectionStatus{DatabaseName: g.name, Collections: []string{}}
	if g.db == nil {
		st.Error = "not connected"
		return st
	}
	if err := g.client.Ping(ctx, readpref.Primary()); err != nil {
		st.Error = err.Error()
		return st
	}
	st.Connected = true
	names, err := g.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Collections = names
	var info struct {
		Version string `bson:"version"`
	}
	if err := g.db.RunCommand(ctx, bson.D{{Key: "buildInfo", Value: 1}}).Decode(&info); err == nil {
		st.ServerVersion = info.Version
	}
	return st
}

// InitializeDatabase creates the missing collections and then the indexes.
// Running it again is harmless.
func (g *Gateway) InitializeDatabase(ctx context.Context) error {
	if g.db == nil {
		return reason.New(reason.Unavailable, "mongo.initialize")
	}
	logger := log.FromContext(ctx).WithPrefix("mongo")
	existing, err := g.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return Classify("mongo.initialize", err)
	}
	have := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		have[name] = struct{}{}
	}
	for _, name := range Collections {
		if _, ok := have[name]; ok {
			continue
		}
		if err := g.db.CreateCollection(ctx, name); err != nil {
			return Classify("mongo.initialize", fmt.Errorf("create %s: %w", name, err))
		}
		logger.Info("Created collection", "name", name)
	}
	return g.CreateIndexes(ctx)
}

func (g *Gateway) Disconnect(ctx context.Context) error {
	if g.client == nil {
		return nil
	}
	err := g.client.Disconnect(ctx)
	g.client, g.db = nil, nil
	return err
}
