package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/common/utils/tgutil"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/filetype"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func testContext() context.Context {
	logger := log.NewWithOptions(nil, log.Options{ReportTimestamp: false})
	return log.WithContext(context.Background(), logger)
}

func ns(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func TestNewFile(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	f := NewFile(1234, 56, tgutil.MediaInfo{
		DocumentID: 99, Name: "Heat.1995.mkv", Type: filetype.Video, MimeType: "video/x-matroska", Size: 42,
	}, "#crime", now)
	if f.FileID != "1234_56" || f.FileUniqueID != "99" || f.FileType != "video" || !f.CreatedAt.Equal(now) {
		t.Fatalf("unexpected file: %+v", f)
	}
}

func TestCatalog(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save upserts by file id", func(mt *mtest.T) {
		c := NewCatalog(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		if err := c.Save(testContext(), database.MediaFile{FileID: "1_2", FileName: "a.mkv"}); err != nil {
			t.Fatal(err)
		}
		ev := mt.GetStartedEvent()
		if !ev.Command.Lookup("updates", "0", "upsert").Boolean() {
			t.Fatal("expected upsert")
		}
		if got := ev.Command.Lookup("updates", "0", "q", "file_id").StringValue(); got != "1_2" {
			t.Fatalf("filter file_id = %q", got)
		}
	})

	mt.Run("duplicate lookup", func(mt *mtest.T) {
		c := NewCatalog(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))
		dup, err := c.HasDuplicate(testContext(), 1, "99")
		if err != nil || !dup {
			t.Fatalf("HasDuplicate = %v, %v", dup, err)
		}
	})

	mt.Run("get missing", func(mt *mtest.T) {
		c := NewCatalog(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		if _, err := c.Get(testContext(), "nope"); !errors.Is(err, reason.ErrNotFound) {
			t.Fatalf("Get = %v", err)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		c := NewCatalog(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		if err := c.Delete(testContext(), "nope"); !errors.Is(err, reason.ErrNotFound) {
			t.Fatalf("Delete = %v", err)
		}
	})

	mt.Run("delete existing", func(mt *mtest.T) {
		c := NewCatalog(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		if err := c.Delete(testContext(), "1_2"); err != nil {
			t.Fatal(err)
		}
	})

	mt.Run("recent", func(mt *mtest.T) {
		c := NewCatalog(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "file_id", Value: "1_3"}, {Key: "file_name", Value: "b.mkv"}},
			bson.D{{Key: "file_id", Value: "1_2"}, {Key: "file_name", Value: "a.mkv"}},
		))
		files, err := c.Recent(testContext(), 2)
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 2 || files[0].FileID != "1_3" {
			t.Fatalf("Recent = %+v", files)
		}
	})
}

func TestCatalogWithoutCollection(t *testing.T) {
	c := NewCatalog(nil)
	if _, err := c.Count(testContext()); !errors.Is(err, reason.ErrUnavailable) {
		t.Fatalf("Count = %v", err)
	}
}
