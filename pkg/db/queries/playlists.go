package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

const playlistColumns = `id, user_id, name, description, pinterest_board_url, mood_analysis, created_at`

// PlaylistQueries reads and writes the playlists table. There is deliberately
// no update statement: playlists are immutable once created.
type PlaylistQueries struct {
	DB *sqlx.DB
}

func NewPlaylistQueries(conn *sqlx.DB) *PlaylistQueries {
	return &PlaylistQueries{DB: conn}
}

// CreatePlaylist inserts the playlist and fills in id and created_at from the store.
func (q *PlaylistQueries) CreatePlaylist(ctx context.Context, playlist *db.Playlist) (*db.Playlist, error) {
	query := `
		INSERT INTO playlists (user_id, name, description, pinterest_board_url, mood_analysis)
		VALUES (:user_id, :name, :description, :pinterest_board_url, :mood_analysis)
		RETURNING id, created_at`

	rows, err := sqlx.NamedQueryContext(ctx, q.DB, query, playlist)
	if err != nil {
		log.Errorf("Error creating playlist: %v", err)
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to create playlist: %w", err)
		}
		log.Error("No rows returned after playlist creation.")
		return nil, errors.New("no rows returned after playlist creation")
	}
	if err := rows.StructScan(playlist); err != nil {
		log.Errorf("Error scanning playlist after creation: %v", err)
		return nil, fmt.Errorf("error scanning playlist after creation: %w", err)
	}

	log.Infof("Playlist '%s' created for user ID: %s (ID: %s)", playlist.Name, playlist.UserID.String(), playlist.ID.String())
	return playlist, nil
}

// FindPlaylistByID returns nil, nil when the playlist does not exist.
func (q *PlaylistQueries) FindPlaylistByID(ctx context.Context, id uuid.UUID) (*db.Playlist, error) {
	playlist := &db.Playlist{}
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE id = $1`
	if err := q.DB.GetContext(ctx, playlist, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debugf("Playlist with ID '%s' not found.", id.String())
			return nil, nil
		}
		log.Errorf("Error finding playlist by ID '%s': %v", id.String(), err)
		return nil, fmt.Errorf("error finding playlist by ID: %w", err)
	}
	return playlist, nil
}

// FindPlaylistsByUserID lists a user's playlists, newest first.
func (q *PlaylistQueries) FindPlaylistsByUserID(ctx context.Context, userID uuid.UUID) ([]db.Playlist, error) {
	playlists := []db.Playlist{}
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE user_id = $1 ORDER BY created_at DESC`
	if err := q.DB.SelectContext(ctx, &playlists, query, userID); err != nil {
		log.Errorf("Error finding playlists for user ID '%s': %v", userID.String(), err)
		return nil, fmt.Errorf("error finding playlists by user ID: %w", err)
	}
	return playlists, nil
}
