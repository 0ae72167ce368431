package search

import (
	"errors"
	"testing"

	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoText(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("index writes full text and terms", func(mt *mtest.T) {
		b := newMongoText(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		if err := b.IndexDocument(testContext(), "1_1", "Heat.mkv", "Heat.mkv video", nil); err != nil {
			t.Fatal(err)
		}
		set := mt.GetStartedEvent().Command.Lookup("updates", "0", "u", "$set").Document()
		if got := set.Lookup("full_text").StringValue(); got != "Heat.mkv Heat.mkv video" {
			t.Fatalf("full_text = %q", got)
		}
		terms, _ := set.Lookup("search_terms").Array().Values()
		if len(terms) != 3 {
			t.Fatalf("search_terms = %v", terms)
		}
	})

	mt.Run("search uses the text index", func(mt *mtest.T) {
		b := newMongoText(mt.Coll)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "file_id", Value: "1_1"}, {Key: "title", Value: "Heat.mkv"}, {Key: "score", Value: 1.5}},
		))
		res, err := b.Search(testContext(), "heat", 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(res) != 1 || res[0].Score != 1.5 {
			t.Fatalf("Search = %+v", res)
		}
		filter := mt.GetStartedEvent().Command.Lookup("filter", "$text", "$search").StringValue()
		if filter != "heat" {
			t.Fatalf("$search = %q", filter)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		b := newMongoText(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		if err := b.DeleteDocument(testContext(), "nope"); !errors.Is(err, reason.ErrNotFound) {
			t.Fatalf("DeleteDocument = %v", err)
		}
	})
}
