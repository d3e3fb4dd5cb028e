package handlers

import (
	"context"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/ASHISH26940/pintunes-api/pkg/services"
	"github.com/google/uuid"
)

// UserStore is the part of queries.UserQueries the auth handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, user *db.User) (*db.User, error)
	FindUserByEmail(ctx context.Context, email string) (*db.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// Handlers holds the dependencies shared by the HTTP handlers.
type Handlers struct {
	Playlists *services.PlaylistService
	Users     UserStore
	Tokens    *services.TokenService
}

func NewHandlers(playlists *services.PlaylistService, users UserStore, tokens *services.TokenService) *Handlers {
	return &Handlers{
		Playlists: playlists,
		Users:     users,
		Tokens:    tokens,
	}
}
