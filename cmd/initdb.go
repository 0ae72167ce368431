package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/mediaindex/mediaindex-bot/admin"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/spf13/cobra"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the collections, indexes and the super admin record",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cfg, closer, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()
		gw := database.NewGateway(cfg.MongoDB)
		if err := gw.Connect(ctx); err != nil {
			return err
		}
		defer gw.Disconnect(ctx)
		if err := gw.InitializeDatabase(ctx); err != nil {
			return err
		}
		admins := admin.NewRegistry(gw.Collection(database.UsersCollection), cfg.SuperAdminID)
		if err := admins.InitializeSuperAdmin(ctx); err != nil {
			return err
		}
		log.FromContext(ctx).Info("Database initialized", "database", gw.DatabaseName(), "super_admin", cfg.SuperAdminID)
		return nil
	},
}
