package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"stem-inspires/models"
	"stem-inspires/repository"
)

var (
	adminEmail    string
	adminPassword string
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator, or reset the password of an existing one",
		Example: `  stemctl admin create --email admin@steminspires.org --password 's3cret'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(adminEmail) == "" || adminPassword == "" {
				return fmt.Errorf("--email and --password are required")
			}
			return withDB(func(ctx context.Context, db *mongo.Database) error {
				if err := repository.EnsureIndexes(ctx, db); err != nil {
					return err
				}
				return createAdmin(ctx, cmd, repository.NewAdminRepo(db))
			})
		},
	}
	create.Flags().StringVar(&adminEmail, "email", "", "administrator email")
	create.Flags().StringVar(&adminPassword, "password", "", "administrator password")

	cmd.AddCommand(create)
	return cmd
}

func createAdmin(ctx context.Context, cmd *cobra.Command, admins *repository.AdminRepo) error {
	admin, err := admins.FindByEmail(ctx, adminEmail)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		admin = &models.Admin{Email: adminEmail}
	case err != nil:
		return err
	}

	existed := !admin.ID.IsZero()
	admin.Password = adminPassword
	if err := admins.Save(ctx, admin); err != nil {
		return err
	}

	if existed {
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s: password reset\n", admin.Email)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "admin %s: created\n", admin.Email)
	}
	return nil
}
