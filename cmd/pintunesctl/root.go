package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/ASHISH26940/pintunes-api/pkg/db/queries"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var databaseURL string

	rootCmd := &cobra.Command{
		Use:           "pintunesctl",
		Short:         "Operator tooling for the PinTunes API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return errors.New("database url required (--database-url or DATABASE_URL)")
			}
			log.SetLevel(log.WarnLevel)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (default $DATABASE_URL)")

	connect := func() (*sqlx.DB, error) {
		return db.Connect(databaseURL)
	}

	rootCmd.AddCommand(newMigrateCommand(connect))
	rootCmd.AddCommand(newPlaylistsCommand(connect))
	return rootCmd
}

func newMigrateCommand(connect func() (*sqlx.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connect()
			if err != nil {
				return err
			}
			defer db.Close(conn)

			if err := db.Migrate(cmd.Context(), conn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

func newPlaylistsCommand(connect func() (*sqlx.DB, error)) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List a user's playlists, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user %q: %w", userFlag, err)
			}

			conn, err := connect()
			if err != nil {
				return err
			}
			defer db.Close(conn)

			playlists, err := queries.NewPlaylistQueries(conn).FindPlaylistsByUserID(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if len(playlists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No playlists.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPlaylists(playlists))
			return nil
		},
	}
	cmd.Flags().StringVar(&userFlag, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
