// Package admin answers privilege questions against the users collection
// and guards promotion and demotion behind the configured super admin.
package admin

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/pkg/enums/adminlevel"
	"github.com/mediaindex/mediaindex-bot/pkg/reason"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Registry struct {
	users        *mongo.Collection
	superAdminID int64
	now          func() time.Time
}

// NewRegistry builds a registry over the users collection. A nil
// collection makes every storage operation report reason.Unavailable.
func NewRegistry(users *mongo.Collection, superAdminID int64) *Registry {
	return &Registry{
		users:        users,
		superAdminID: superAdminID,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (r *Registry) SuperAdminID() int64 {
	return r.superAdminID
}

func (r *Registry) IsSuperAdmin(userID int64) bool {
	return userID == r.superAdminID
}

func (r *Registry) CanManageAdmins(userID int64) bool {
	return r.IsSuperAdmin(userID)
}

func (r *Registry) CanUseAdminCommands(ctx context.Context, userID int64) (bool, error) {
	return r.IsAdmin(ctx, userID)
}

func (r *Registry) find(ctx context.Context, op string, userID int64) (*database.User, error) {
	if r.users == nil {
		return nil, reason.New(reason.Unavailable, op)
	}
	var u database.User
	if err := r.users.FindOne(ctx, bson.M{"user_id": userID}).Decode(&u); err != nil {
		return nil, database.Classify(op, err)
	}
	return &u, nil
}

// IsAdmin is true for the super admin and for any stored user whose admin
// flag or level grants admin rights. An absent record is not an error.
func (r *Registry) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if r.IsSuperAdmin(userID) {
		return true, nil
	}
	u, err := r.find(ctx, "admin.is_admin", userID)
	if errors.Is(err, reason.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		log.FromContext(ctx).WithPrefix("admin").Error("Failed to check admin status", "user_id", userID, "error", err)
		return false, err
	}
	return u.IsAdmin || u.AdminLevel.Privileged(), nil
}

func (r *Registry) AdminLevel(ctx context.Context, userID int64) (adminlevel.Level, error) {
	if r.IsSuperAdmin(userID) {
		return adminlevel.SuperAdmin, nil
	}
	u, err := r.find(ctx, "admin.level", userID)
	if errors.Is(err, reason.ErrNotFound) {
		return adminlevel.User, nil
	}
	if err != nil {
		log.FromContext(ctx).WithPrefix("admin").Error("Failed to get admin level", "user_id", userID, "error", err)
		return adminlevel.User, err
	}
	if !u.AdminLevel.IsValid() {
		return adminlevel.User, nil
	}
	return u.AdminLevel, nil
}

// Promote grants admin rights to target. Only the super admin may promote;
// any other actor gets reason.ErrForbidden before storage is touched.
// Levels other than super_admin are clamped to admin.
func (r *Registry) Promote(ctx context.Context, targetID, actorID int64, level adminlevel.Level) error {
	logger := log.FromContext(ctx).WithPrefix("admin")
	if !r.IsSuperAdmin(actorID) {
		logger.Warn("Promotion refused, actor is not the super admin", "actor", actorID, "target", targetID)
		return reason.New(reason.Forbidden, "admin.promote")
	}
	if level != adminlevel.SuperAdmin {
		level = adminlevel.Admin
	}
	if r.users == nil {
		return reason.New(reason.Unavailable, "admin.promote")
	}
	now := r.now()
	update := bson.M{
		"$set": bson.M{
			"is_admin":    true,
			"admin_level": level,
			"promoted_by": actorID,
			"promoted_at": now,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
			"is_banned":  false,
		},
	}
	_, err := r.users.UpdateOne(ctx, bson.M{"user_id": targetID}, update, options.Update().SetUpsert(true))
	if err != nil {
		err = database.Classify("admin.promote", err)
		logger.Error("Failed to promote user", "target", targetID, "error", err)
		return err
	}
	logger.Info("User promoted", "target", targetID, "level", level, "actor", actorID)
	return nil
}

// Demote clears admin rights. The super admin cannot be demoted, and a
// demotion that modifies nothing reports reason.ErrNotFound.
func (r *Registry) Demote(ctx context.Context, targetID, actorID int64) error {
	logger := log.FromContext(ctx).WithPrefix("admin")
	if !r.IsSuperAdmin(actorID) {
		logger.Warn("Demotion refused, actor is not the super admin", "actor", actorID, "target", targetID)
		return reason.New(reason.Forbidden, "admin.demote")
	}
	if r.IsSuperAdmin(targetID) {
		logger.Warn("Refusing to demote the super admin")
		return reason.New(reason.Forbidden, "admin.demote")
	}
	if r.users == nil {
		return reason.New(reason.Unavailable, "admin.demote")
	}
	update := bson.M{
		"$set": bson.M{
			"is_admin":    false,
			"admin_level": adminlevel.User,
			"updated_at":  r.now(),
		},
		"$unset": bson.M{
			"promoted_by": "",
			"promoted_at": "",
		},
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"user_id": targetID}, update)
	if err != nil {
		err = database.Classify("admin.demote", err)
		logger.Error("Failed to demote user", "target", targetID, "error", err)
		return err
	}
	if res.ModifiedCount == 0 {
		return reason.New(reason.NotFound, "admin.demote")
	}
	logger.Info("User demoted", "target", targetID, "actor", actorID)
	return nil
}

func (r *Registry) virtualSuperAdmin() database.User {
	return database.User{
		UserID:     r.superAdminID,
		Username:   "Super Admin",
		IsAdmin:    true,
		AdminLevel: adminlevel.SuperAdmin,
		Virtual:    true,
	}
}

// ListAdmins returns every stored admin. The super admin is always part of
// the result, synthesised when it has no stored record.
func (r *Registry) ListAdmins(ctx context.Context) ([]database.User, error) {
	if r.users == nil {
		return nil, reason.New(reason.Unavailable, "admin.list")
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"is_admin": true},
		bson.M{"admin_level": bson.M{"$in": bson.A{adminlevel.Admin, adminlevel.SuperAdmin}}},
	}}
	cur, err := r.users.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		err = database.Classify("admin.list", err)
		log.FromContext(ctx).WithPrefix("admin").Error("Failed to list admins", "error", err)
		return nil, err
	}
	admins := make([]database.User, 0)
	if err := cur.All(ctx, &admins); err != nil {
		return nil, database.Classify("admin.list", err)
	}
	for _, a := range admins {
		if a.UserID == r.superAdminID {
			return admins, nil
		}
	}
	return append([]database.User{r.virtualSuperAdmin()}, admins...), nil
}

// InitializeSuperAdmin stores the configured super admin, creating the
// record on first run and refreshing its status afterwards.
func (r *Registry) InitializeSuperAdmin(ctx context.Context) error {
	logger := log.FromContext(ctx).WithPrefix("admin")
	if r.users == nil {
		return reason.New(reason.Unavailable, "admin.init_super_admin")
	}
	now := r.now()
	update := bson.M{
		"$set": bson.M{
			"is_admin":    true,
			"admin_level": adminlevel.SuperAdmin,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"username":   "Super Admin",
			"first_name": "Super",
			"last_name":  "Admin",
			"is_banned":  false,
			"created_at": now,
		},
	}
	res, err := r.users.UpdateOne(ctx, bson.M{"user_id": r.superAdminID}, update, options.Update().SetUpsert(true))
	if err != nil {
		err = database.Classify("admin.init_super_admin", err)
		logger.Error("Failed to initialize super admin", "error", err)
		return err
	}
	if res.UpsertedCount > 0 {
		logger.Info("Super admin created", "user_id", r.superAdminID)
	} else {
		logger.Debug("Super admin status refreshed", "user_id", r.superAdminID)
	}
	return nil
}
