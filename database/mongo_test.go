package database

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/config"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testContext() context.Context {
	logger := log.NewWithOptions(nil, log.Options{ReportTimestamp: false})
	return log.WithContext(context.Background(), logger)
}

func TestDatabaseNameFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/catalog", "catalog"},
		{"mongodb://localhost:27017/catalog?retryWrites=true", "catalog"},
		{"mongodb+srv://user:pw@cluster0.example.net/movies?w=majority", "movies"},
		{"mongodb://a:27017,b:27017/replica?replicaSet=rs0", "replica"},
		{"mongodb://localhost:27017/", DefaultDatabaseName},
		{"mongodb://localhost:27017", DefaultDatabaseName},
		{"mongodb://localhost:27017/?authSource=admin", DefaultDatabaseName},
	}
	for _, tt := range tests {
		if got := DatabaseNameFromURI(tt.uri); got != tt.want {
			t.Errorf("DatabaseNameFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions("mongodb://localhost:27017/media_bot")
	if *opts.ServerSelectionTimeout != serverSelectionTimeout ||
		*opts.ConnectTimeout != connectTimeout ||
		*opts.SocketTimeout != socketTimeout {
		t.Fatal("unexpected timeouts")
	}
	if *opts.MaxPoolSize != maxPoolSize || !*opts.RetryWrites {
		t.Fatal("unexpected pool or retry settings")
	}
}

func TestIndexPolicy(t *testing.T) {
	uniques := map[string]string{}
	texts := map[string]string{}
	for _, spec := range IndexPolicy() {
		for _, m := range spec.Models {
			keys := m.Keys.(bson.D)
			if m.Options != nil && m.Options.Unique != nil && *m.Options.Unique {
				uniques[spec.Collection] = keys[0].Key
			}
			if keys[0].Value == "text" {
				texts[spec.Collection] = keys[0].Key
			}
		}
	}
	wantUnique := map[string]string{
		UsersCollection:      "user_id",
		ChannelsCollection:   "channel_id",
		MediaFilesCollection: "file_id",
	}
	for coll, field := range wantUnique {
		if uniques[coll] != field {
			t.Errorf("unique index on %s = %q, want %q", coll, uniques[coll], field)
		}
	}
	if len(uniques) != len(wantUnique) {
		t.Errorf("unexpected unique indexes: %v", uniques)
	}
	if texts[MediaFilesCollection] != "file_name" || texts[SearchIndexCollection] != "full_text" {
		t.Errorf("unexpected text indexes: %v", texts)
	}
}

func TestNotConnected(t *testing.T) {
	ctx := testContext()
	g := NewGateway(config.MongoConfig{URI: "mongodb://localhost:27017/catalog"})
	if g.Collection(UsersCollection) != nil {
		t.Fatal("Collection must be nil before Connect")
	}
	if err := g.InitializeDatabase(ctx); !errors.Is(err, reason.ErrUnavailable) {
		t.Fatalf("InitializeDatabase error = %v, want unavailable", err)
	}
	st := g.TestConnection(ctx)
	if st.Connected || st.DatabaseName != "catalog" || st.Error == "" {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestInitializeDatabase(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates missing collections then indexes", func(mt *mtest.T) {
		g := NewGatewayFromDatabase(mt.DB)
		ns := mt.DB.Name() + ".$cmd.listCollections"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "name", Value: UsersCollection}},
			bson.D{{Key: "name", Value: ChannelsCollection}},
		))
		// three missing collections, then one createIndexes per collection
		for i := 0; i < 3+len(IndexPolicy()); i++ {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		if err := g.InitializeDatabase(testContext()); err != nil {
			t.Fatalf("InitializeDatabase() error = %v", err)
		}
		var created, indexed int
		for _, ev := range mt.GetAllStartedEvents() {
			switch ev.CommandName {
			case "create":
				created++
			case "createIndexes":
				indexed++
			}
		}
		if created != 3 || indexed != len(IndexPolicy()) {
			t.Fatalf("created=%d indexed=%d", created, indexed)
		}
	})

	mt.Run("index failure is reported", func(mt *mtest.T) {
		g := NewGatewayFromDatabase(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 85, Name: "IndexOptionsConflict", Message: "conflict",
		}))
		if err := g.CreateIndexes(testContext()); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestTestConnection(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports collections and version", func(mt *mtest.T) {
		g := NewGatewayFromDatabase(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, mt.DB.Name()+".$cmd.listCollections", mtest.FirstBatch,
				bson.D{{Key: "name", Value: UsersCollection}},
			),
			mtest.CreateSuccessResponse(bson.E{Key: "version", Value: "7.0.2"}),
		)
		st := g.TestConnection(testContext())
		if !st.Connected || st.ServerVersion != "7.0.2" {
			t.Fatalf("unexpected status %+v", st)
		}
		if len(st.Collections) != 1 || st.Collections[0] != UsersCollection {
			t.Fatalf("collections = %v", st.Collections)
		}
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want reason.Reason
	}{
		{mongo.ErrNoDocuments, reason.NotFound},
		{mongo.ErrClientDisconnected, reason.Unavailable},
		{context.DeadlineExceeded, reason.Unavailable},
		{errors.New("boom"), reason.Internal},
	}
	for _, tt := range tests {
		if got := reason.Of(Classify("op", tt.err)); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
	if Classify("op", nil) != nil {
		t.Fatal("Classify(nil) must be nil")
	}
}
