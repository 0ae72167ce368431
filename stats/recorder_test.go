package stats

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testContext() context.Context {
	logger := log.NewWithOptions(nil, log.Options{ReportTimestamp: false})
	return log.WithContext(context.Background(), logger)
}

func TestRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts event", func(mt *mtest.T) {
		r := NewRecorder(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		r.Record(testContext(), TypeSearch, 7, map[string]any{"query": "heat"})
		doc := mt.GetStartedEvent().Command.Lookup("documents", "0").Document()
		if doc.Lookup("stat_type").StringValue() != TypeSearch || doc.Lookup("user_id").Int64() != 7 {
			t.Fatalf("unexpected document: %v", doc)
		}
	})

	mt.Run("failure is swallowed", func(mt *mtest.T) {
		r := NewRecorder(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 8000, Message: "boom"}))
		r.Record(testContext(), TypeCommand, 1, nil)
	})
}

func TestSummary(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("groups by type", func(mt *mtest.T) {
		r := NewRecorder(mt.Coll)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: TypeSearch}, {Key: "count", Value: int64(12)}},
			bson.D{{Key: "_id", Value: TypeIndex}, {Key: "count", Value: int64(3)}},
		))
		got, err := r.Summary(testContext(), time.Now().Add(-24*time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		if got[TypeSearch] != 12 || got[TypeIndex] != 3 || len(got) != 2 {
			t.Fatalf("Summary = %v", got)
		}
	})
}

func TestNilCollection(t *testing.T) {
	r := NewRecorder(nil)
	r.Record(testContext(), TypeCommand, 1, nil)
	if _, err := r.Summary(testContext(), time.Time{}); err == nil {
		t.Fatal("expected error")
	}
}
