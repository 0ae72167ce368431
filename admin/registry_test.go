package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/adminlevel"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const superAdmin int64 = 1000

func testContext() context.Context {
	logger := log.NewWithOptions(nil, log.Options{ReportTimestamp: false})
	return log.WithContext(context.Background(), logger)
}

func ns(mt *mtest.T) string {
	return mt.DB.Name() + "." + mt.Coll.Name()
}

func updateResponse(n, modified int32, upserted bool) bson.D {
	resp := mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: modified},
	)
	if upserted {
		resp = append(resp, bson.E{Key: "upserted", Value: bson.A{
			bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}},
		}})
	}
	return resp
}

func TestIsSuperAdmin(t *testing.T) {
	r := NewRegistry(nil, superAdmin)
	for _, id := range []int64{-1, 0, 1, 999, 1001, 1 << 40} {
		if r.IsSuperAdmin(id) {
			t.Errorf("IsSuperAdmin(%d) = true", id)
		}
	}
	if !r.IsSuperAdmin(superAdmin) || !r.CanManageAdmins(superAdmin) {
		t.Fatal("the configured id must be the super admin")
	}
}

func TestSuperAdminWithoutStorage(t *testing.T) {
	ctx := testContext()
	r := NewRegistry(nil, superAdmin)
	if ok, err := r.IsAdmin(ctx, superAdmin); !ok || err != nil {
		t.Fatalf("IsAdmin(super) = %v, %v", ok, err)
	}
	if lvl, err := r.AdminLevel(ctx, superAdmin); lvl != adminlevel.SuperAdmin || err != nil {
		t.Fatalf("AdminLevel(super) = %v, %v", lvl, err)
	}
	if _, err := r.IsAdmin(ctx, 5); !errors.Is(err, reason.ErrUnavailable) {
		t.Fatalf("IsAdmin without storage error = %v, want unavailable", err)
	}
}

func TestIsAdmin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("admin flag", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "user_id", Value: int64(5)}, {Key: "is_admin", Value: true}}))
		if ok, err := r.IsAdmin(testContext(), 5); !ok || err != nil {
			t.Fatalf("IsAdmin = %v, %v", ok, err)
		}
	})

	mt.Run("admin level only", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "user_id", Value: int64(5)}, {Key: "is_admin", Value: false}, {Key: "admin_level", Value: "admin"}}))
		if ok, err := r.IsAdmin(testContext(), 5); !ok || err != nil {
			t.Fatalf("IsAdmin = %v, %v", ok, err)
		}
	})

	mt.Run("absent record", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		if ok, err := r.IsAdmin(testContext(), 5); ok || err != nil {
			t.Fatalf("IsAdmin = %v, %v", ok, err)
		}
	})

	mt.Run("stored level", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "user_id", Value: int64(5)}, {Key: "admin_level", Value: "admin"}}))
		if lvl, err := r.AdminLevel(testContext(), 5); lvl != adminlevel.Admin || err != nil {
			t.Fatalf("AdminLevel = %v, %v", lvl, err)
		}
	})

	mt.Run("absent level is user", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))
		if lvl, err := r.AdminLevel(testContext(), 5); lvl != adminlevel.User || err != nil {
			t.Fatalf("AdminLevel = %v, %v", lvl, err)
		}
	})
}

func TestPromote(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("non super admin actor touches nothing", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		for _, actor := range []int64{0, 5, superAdmin + 1} {
			err := r.Promote(testContext(), 7, actor, adminlevel.Admin)
			if !errors.Is(err, reason.ErrForbidden) {
				t.Fatalf("Promote by %d error = %v, want forbidden", actor, err)
			}
		}
		if ev := mt.GetStartedEvent(); ev != nil {
			t.Fatalf("unexpected command %s", ev.CommandName)
		}
	})

	mt.Run("super admin upserts", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(updateResponse(1, 0, true))
		if err := r.Promote(testContext(), 7, superAdmin, adminlevel.Admin); err != nil {
			t.Fatalf("Promote error = %v", err)
		}
		ev := mt.GetStartedEvent()
		if ev == nil || ev.CommandName != "update" {
			t.Fatalf("expected an update command, got %v", ev)
		}
		if up := ev.Command.Lookup("updates", "0", "upsert"); !up.Boolean() {
			t.Fatal("promotion must upsert")
		}
	})

	mt.Run("level is clamped", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(updateResponse(1, 1, false))
		if err := r.Promote(testContext(), 7, superAdmin, adminlevel.User); err != nil {
			t.Fatalf("Promote error = %v", err)
		}
		ev := mt.GetStartedEvent()
		level := ev.Command.Lookup("updates", "0", "u", "$set", "admin_level").StringValue()
		if level != string(adminlevel.Admin) {
			t.Fatalf("stored level = %q, want admin", level)
		}
	})

	mt.Run("storage error is surfaced", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad"}))
		if err := r.Promote(testContext(), 7, superAdmin, adminlevel.Admin); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestDemote(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("super admin cannot be demoted", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		for _, actor := range []int64{superAdmin, 5} {
			if err := r.Demote(testContext(), superAdmin, actor); !errors.Is(err, reason.ErrForbidden) {
				t.Fatalf("Demote(super) by %d error = %v", actor, err)
			}
		}
		if ev := mt.GetStartedEvent(); ev != nil {
			t.Fatalf("unexpected command %s", ev.CommandName)
		}
	})

	mt.Run("non super admin actor", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		if err := r.Demote(testContext(), 7, 8); !errors.Is(err, reason.ErrForbidden) {
			t.Fatalf("Demote error = %v", err)
		}
		if ev := mt.GetStartedEvent(); ev != nil {
			t.Fatalf("unexpected command %s", ev.CommandName)
		}
	})

	mt.Run("clears admin fields", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(updateResponse(1, 1, false))
		if err := r.Demote(testContext(), 7, superAdmin); err != nil {
			t.Fatalf("Demote error = %v", err)
		}
		ev := mt.GetStartedEvent()
		if _, err := ev.Command.LookupErr("updates", "0", "u", "$unset", "promoted_by"); err != nil {
			t.Fatal("demotion must unset promoted_by")
		}
	})

	mt.Run("nothing modified", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(updateResponse(0, 0, false))
		if err := r.Demote(testContext(), 7, superAdmin); !errors.Is(err, reason.ErrNotFound) {
			t.Fatalf("Demote error = %v, want not found", err)
		}
	})
}

func TestListAdmins(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("synthesises the super admin", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "user_id", Value: int64(7)}, {Key: "is_admin", Value: true}, {Key: "admin_level", Value: "admin"}}))
		admins, err := r.ListAdmins(testContext())
		if err != nil {
			t.Fatal(err)
		}
		if len(admins) != 2 || admins[0].UserID != superAdmin || !admins[0].Virtual {
			t.Fatalf("unexpected admins %+v", admins)
		}
		if admins[0].AdminLevel != adminlevel.SuperAdmin || admins[0].Username != "Super Admin" {
			t.Fatalf("unexpected virtual entry %+v", admins[0])
		}
	})

	mt.Run("stored super admin is not duplicated", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "user_id", Value: superAdmin}, {Key: "is_admin", Value: true}, {Key: "admin_level", Value: "super_admin"}},
			bson.D{{Key: "user_id", Value: int64(7)}, {Key: "is_admin", Value: true}}))
		admins, err := r.ListAdmins(testContext())
		if err != nil {
			t.Fatal(err)
		}
		if len(admins) != 2 || admins[0].Virtual {
			t.Fatalf("unexpected admins %+v", admins)
		}
	})
}

func TestInitializeSuperAdmin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts the configured id", func(mt *mtest.T) {
		r := NewRegistry(mt.Coll, superAdmin)
		mt.AddMockResponses(updateResponse(1, 0, true))
		if err := r.InitializeSuperAdmin(testContext()); err != nil {
			t.Fatal(err)
		}
		ev := mt.GetStartedEvent()
		if id := ev.Command.Lookup("updates", "0", "q", "user_id").Int64(); id != superAdmin {
			t.Fatalf("filter user_id = %d", id)
		}
		level := ev.Command.Lookup("updates", "0", "u", "$set", "admin_level").StringValue()
		if level != string(adminlevel.SuperAdmin) {
			t.Fatalf("level = %q", level)
		}
	})
}
