package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

// Migrate applies the schema. Every statement is idempotent, so it is safe to
// run on each start-up.
func Migrate(ctx context.Context, conn *sqlx.DB) error {
	migrations := []string{
		createExtensions,
		createUsersTable,
		createPlaylistsTable,
		createPlaylistsUserCreatedIndex,
	}

	for i, migration := range migrations {
		log.Debugf("Running migration %d/%d", i+1, len(migrations))
		if _, err := conn.ExecContext(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Infof("Applied %d migrations.", len(migrations))
	return nil
}

const createExtensions = `CREATE EXTENSION IF NOT EXISTS pgcrypto;`

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const createPlaylistsTable = `
CREATE TABLE IF NOT EXISTS playlists (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  pinterest_board_url TEXT NOT NULL,
  mood_analysis JSONB NOT NULL DEFAULT '{}'::jsonb,
  created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
);
`

const createPlaylistsUserCreatedIndex = `
CREATE INDEX IF NOT EXISTS playlists_user_created_idx
  ON playlists (user_id, created_at DESC);
`
