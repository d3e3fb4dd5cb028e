package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type User struct {
	ID           uuid.UUID `db:"id"`            // primary key, auto-generated UUID
	Username     string    `db:"username"`      // display name
	Email        string    `db:"email"`         // unique email
	PasswordHash string    `db:"password_hash"` // bcrypt hash
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Playlist is a generated playlist. Rows are written once and never updated.
type Playlist struct {
	ID                uuid.UUID      `db:"id"`
	UserID            uuid.UUID      `db:"user_id"`
	Name              string         `db:"name"`
	Description       string         `db:"description"`
	PinterestBoardURL string         `db:"pinterest_board_url"`
	MoodAnalysis      types.JSONText `db:"mood_analysis"` // JSONB {"mood": ..., "songs": [...]}
	CreatedAt         time.Time      `db:"created_at"`
}

// MoodAnalysis is the decoded form of Playlist.MoodAnalysis.
type MoodAnalysis struct {
	Mood  string   `json:"mood"`
	Songs []string `json:"songs"`
}

// NewMoodAnalysisJSON encodes a mood analysis for storage. Songs is never null.
func NewMoodAnalysisJSON(mood string, songs []string) (types.JSONText, error) {
	if songs == nil {
		songs = []string{}
	}
	raw, err := json.Marshal(MoodAnalysis{Mood: mood, Songs: songs})
	if err != nil {
		return nil, err
	}
	return types.JSONText(raw), nil
}

// Mood decodes the stored mood analysis.
func (p *Playlist) Mood() (MoodAnalysis, error) {
	var analysis MoodAnalysis
	var err error
	if len(p.MoodAnalysis) > 0 {
		err = p.MoodAnalysis.Unmarshal(&analysis)
	}
	if analysis.Songs == nil {
		analysis.Songs = []string{}
	}
	return analysis, err
}
