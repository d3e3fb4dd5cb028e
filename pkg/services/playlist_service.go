package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/ASHISH26940/pintunes-api/pkg/llm"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// PlaylistStore persists playlists. Implemented by queries.PlaylistQueries.
type PlaylistStore interface {
	CreatePlaylist(ctx context.Context, playlist *db.Playlist) (*db.Playlist, error)
	FindPlaylistByID(ctx context.Context, id uuid.UUID) (*db.Playlist, error)
	FindPlaylistsByUserID(ctx context.Context, userID uuid.UUID) ([]db.Playlist, error)
}

// UserFinder resolves a user id to a stored account. Implemented by queries.UserQueries.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*db.User, error)
}

// PlaylistService turns Pinterest board URLs into stored playlists.
type PlaylistService struct {
	completer llm.Completer
	playlists PlaylistStore
	users     UserFinder
}

func NewPlaylistService(completer llm.Completer, playlists PlaylistStore, users UserFinder) *PlaylistService {
	return &PlaylistService{completer: completer, playlists: playlists, users: users}
}

// Generate asks the model for a playlist matching the board and stores it for
// userID. Every call creates a new record, even for a URL seen before.
func (s *PlaylistService) Generate(ctx context.Context, userID uuid.UUID, pinterestURL string) (*db.Playlist, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(pinterestURL) == "" {
		return nil, ErrValidation
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}
	if user == nil {
		log.Warnf("Generate: user %s from a valid token no longer exists.", userID.String())
		return nil, ErrUnauthorized
	}

	content, err := s.completer.Complete(ctx, curatorSystemPrompt, curatorUserPrompt(pinterestURL))
	if err != nil {
		return nil, classifyProviderError(err)
	}

	payload := parsePlaylistPayload(content)
	if payload.Degraded {
		log.Warnf("Generate: model reply for user %s held no playlist JSON, storing default playlist.", userID.String())
	}

	moodAnalysis, err := db.NewMoodAnalysisJSON(payload.Mood, payload.Songs)
	if err != nil {
		return nil, fmt.Errorf("%w: encode mood analysis: %v", ErrPersistence, err)
	}

	name := payload.PlaylistName
	if strings.TrimSpace(name) == "" {
		name = DefaultPlaylistName
	}

	playlist, err := s.playlists.CreatePlaylist(ctx, &db.Playlist{
		UserID:            userID,
		Name:              name,
		Description:       playlistDescription(payload.Description, payload.Songs),
		PinterestBoardURL: pinterestURL,
		MoodAnalysis:      moodAnalysis,
	})
	if err != nil {
		log.Errorf("Generate: failed to store playlist for user %s: %v", userID.String(), err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	log.WithFields(log.Fields{
		"user_id":     userID.String(),
		"playlist_id": playlist.ID.String(),
		"songs":       len(payload.Songs),
		"degraded":    payload.Degraded,
	}).Info("Playlist generated")
	return playlist, nil
}

// List returns the user's playlists, newest first.
func (s *PlaylistService) List(ctx context.Context, userID uuid.UUID) ([]db.Playlist, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return s.playlists.FindPlaylistsByUserID(ctx, userID)
}

// Get returns one playlist if it belongs to userID.
func (s *PlaylistService) Get(ctx context.Context, userID, playlistID uuid.UUID) (*db.Playlist, error) {
	playlist, err := s.playlists.FindPlaylistByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, ErrPlaylistNotFound
	}
	if playlist.UserID != userID {
		log.Warnf("Get: user %s attempted to read playlist %s owned by %s.", userID.String(), playlistID.String(), playlist.UserID.String())
		return nil, ErrForbidden
	}
	return playlist, nil
}

func playlistDescription(description string, songs []string) string {
	return fmt.Sprintf("%s\n\nSuggested tracks:\n%s", description, strings.Join(songs, "\n"))
}

func classifyProviderError(err error) error {
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusTooManyRequests:
			log.Warnf("Generate: AI provider rate limited the request: %v", err)
			return fmt.Errorf("%w: %v", ErrProviderRateLimited, err)
		case http.StatusPaymentRequired:
			log.Errorf("Generate: AI provider credits exhausted: %v", err)
			return fmt.Errorf("%w: %v", ErrProviderQuotaExhausted, err)
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	log.Errorf("Generate: AI provider call failed: %v", err)
	return fmt.Errorf("%w: %v", ErrProviderFailure, err)
}
