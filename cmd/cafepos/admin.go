package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/service"
	mongodb "github.com/brewline/cafe-pos/internal/infrastructure/db/mongo"
	"github.com/brewline/cafe-pos/internal/server"
)

var adminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	Long: `Creates an account with the admin role. Self registration only ever
produces plain users, so the first admin has to come from here.

	cafepos create-admin --username owner --email owner@example.com --password s3cret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		outlets, _ := cmd.Flags().GetStringSlice("outlets")

		ctx := cmd.Context()
		stores, err := server.OpenStores(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = stores.Client.Disconnect(ctx) }()

		users := mongodb.NewUserRepository(stores.DB)
		auth := service.NewAuthService(users, service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL), nil, log)
		u, err := auth.CreateUser(ctx, username, email, password, domain.RoleAdmin, outlets)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.Username, u.ID)
		return nil
	},
}

var indexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		stores, err := server.OpenStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
		return stores.Client.Disconnect(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(adminCmd, indexesCmd)

	adminCmd.Flags().String("username", "", "admin username")
	adminCmd.Flags().String("email", "", "admin email")
	adminCmd.Flags().String("password", "", "admin password")
	adminCmd.Flags().StringSlice("outlets", nil, "outlet ids to assign")
	_ = adminCmd.MarkFlagRequired("username")
	_ = adminCmd.MarkFlagRequired("email")
	_ = adminCmd.MarkFlagRequired("password")
}
