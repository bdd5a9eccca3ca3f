package main

import (
	"context"
	"fmt"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/config"
	"github.com/madhava-poojari/community-portal-api/internal/logging"
	"github.com/madhava-poojari/community-portal-api/internal/server"
	"github.com/madhava-poojari/community-portal-api/internal/service"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Maintenance commands for the community portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newHashPasswordCmd(), newCreateAdminCmd(), newRequireResetCmd())
	return root
}

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 10, "bcrypt cost")
	return cmd
}

// withAccounts opens the configured store and runs fn with an account service
// over it.
func withAccounts(ctx context.Context, fn func(*service.AccountService) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := server.OpenStore(ctx, cfg, logger.Named("store"))
	if err != nil {
		return err
	}
	defer db.Close(context.Background())

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTokenTTL)
	svc, err := service.NewAccountService(db.Accounts, tokens, nil, nil, nil, logger,
		service.AccountServiceConfig{BcryptCost: cfg.BcryptCost, ClientURL: cfg.ClientURL})
	if err != nil {
		return err
	}
	return fn(svc)
}

func newCreateAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account if the email is not registered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			return withAccounts(ctx, func(svc *service.AccountService) error {
				a, created, err := svc.EnsureAdmin(ctx, email, password, name)
				if err != nil {
					return err
				}
				if !created {
					fmt.Fprintf(cmd.OutOrStdout(), "account %s already exists (%s)\n", a.Email, a.Role)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %s)\n", a.Email, a.ID)
				if a.MustResetPassword {
					fmt.Fprintln(cmd.OutOrStdout(), "no password given: use forgot-password to set one")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password; empty forces a reset on first login")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newRequireResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "require-reset",
		Short: "Force a password reset on every account without a password hash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			return withAccounts(ctx, func(svc *service.AccountService) error {
				n, err := svc.RequireResetForPasswordless(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d account(s) now require a password reset\n", n)
				return nil
			})
		},
	}
}
