package ctl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/talentdesk/internal/logging"
	"github.com/dmitrijs2005/talentdesk/internal/seed"
	"github.com/dmitrijs2005/talentdesk/internal/server/config"
	"github.com/dmitrijs2005/talentdesk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/talentdesk/internal/server/services"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// withStore opens the configured store, migrates it and hands it to fn.
func withStore(ctx context.Context, cfg *config.Config, o *options, fn func(db *sql.DB, m repomanager.RepositoryManager) error) error {
	db, m, err := o.openStore(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return fn(db, m)
}

func newMigrateCommand(cfg *config.Config, o *options, logger func() logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			err := withStore(ctx, cfg, o, func(*sql.DB, repomanager.RepositoryManager) error { return nil })
			if err != nil {
				return err
			}
			logger().Info(ctx, "migrations applied")
			fmt.Fprintln(o.out, "migrations applied")
			return nil
		},
	}
}

func newSeedCommand(cfg *config.Config, o *options, logger func() logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo referentes, talents and interactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withStore(ctx, cfg, o, func(db *sql.DB, m repomanager.RepositoryManager) error {
				res, err := seed.Run(ctx, db, m, o.now())
				if err != nil {
					return err
				}
				logger().Info(ctx, "seed complete",
					"referentes", len(res.Referentes), "talents", len(res.Talents), "interactions", len(res.Interactions))
				fmt.Fprintf(o.out, "seeded %d referentes, %d talents, %d interactions\n",
					len(res.Referentes), len(res.Talents), len(res.Interactions))
				return nil
			})
		},
	}
}

func newCreateUserCommand(cfg *config.Config, o *options, logger func() logging.Logger) *cobra.Command {
	var in services.CreateUserInput

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account; the password is prompted for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var err error
			if in.Email == "" {
				if in.Email, err = promptText(o.in, o.out, "Email"); err != nil {
					return err
				}
			}
			if term.IsTerminal(o.stdinFd) {
				in.Password, err = promptPassword(o.out, o.stdinFd)
			} else {
				in.Password, err = promptText(o.in, o.out, "Password")
			}
			if err != nil {
				return err
			}

			return withStore(ctx, cfg, o, func(db *sql.DB, m repomanager.RepositoryManager) error {
				u, err := services.NewUserService(db, m).Create(ctx, in)
				if err != nil {
					return err
				}
				logger().Info(ctx, "user created", "id", u.ID)
				fmt.Fprintf(o.out, "created user %s <%s>\n", u.ID, u.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	return cmd
}
