package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/google/uuid"
)

type fakeCompleter struct {
	content string
	err     error
	calls   int
	system  string
	user    string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.system, f.user = systemPrompt, userPrompt
	return f.content, f.err
}

type fakeUsers struct {
	users map[uuid.UUID]*db.User
	err   error
}

func newFakeUsers(ids ...uuid.UUID) *fakeUsers {
	f := &fakeUsers{users: map[uuid.UUID]*db.User{}}
	for _, id := range ids {
		f.users[id] = &db.User{ID: id, Email: id.String() + "@example.com"}
	}
	return f
}

func (f *fakeUsers) FindUserByID(_ context.Context, id uuid.UUID) (*db.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[id], nil
}

// fakeStore mimics the playlists table: store-assigned ids and strictly
// increasing created_at.
type fakeStore struct {
	mu        sync.Mutex
	rows      []db.Playlist
	createErr error
	creates   int
	clock     time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{clock: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeStore) CreatePlaylist(_ context.Context, playlist *db.Playlist) (*db.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.clock = f.clock.Add(time.Second)
	playlist.ID = uuid.New()
	playlist.CreatedAt = f.clock
	f.rows = append(f.rows, *playlist)
	return playlist, nil
}

func (f *fakeStore) FindPlaylistByID(_ context.Context, id uuid.UUID) (*db.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindPlaylistsByUserID(_ context.Context, userID uuid.UUID) ([]db.Playlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.Playlist{}
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
