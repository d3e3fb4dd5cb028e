package main

import (
	"strings"
	"testing"
	"time"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
)

func TestRenderPlaylists(t *testing.T) {
	mood, err := db.NewMoodAnalysisJSON("warm, nostalgic", []string{"Skinny Love - Bon Iver", "Holocene - Bon Iver"})
	if err != nil {
		t.Fatalf("encode mood: %v", err)
	}
	out := renderPlaylists([]db.Playlist{
		{
			Name:              "Cozy Autumn Vibes",
			PinterestBoardURL: "https://pinterest.com/alice/cozy-autumn",
			MoodAnalysis:      mood,
			CreatedAt:         time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC),
		},
		{Name: "Older", CreatedAt: time.Date(2025, 9, 1, 9, 30, 0, 0, time.UTC)},
	})

	for _, want := range []string{"Cozy Autumn Vibes", "warm, nostalgic", "2025-10-01T09:30:00Z", "https://pinterest.com/alice/cozy-autumn"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Cozy Autumn Vibes") > strings.Index(out, "Older") {
		t.Fatalf("expected input order preserved:\n%s", out)
	}
}

func TestPlaylistsCommandRejectsBadUser(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--database-url", "postgres://unused", "playlists", "--user", "nope"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid --user") {
		t.Fatalf("expected invalid user error, got %v", err)
	}
}
