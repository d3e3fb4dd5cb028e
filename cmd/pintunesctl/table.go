package main

import (
	"strconv"
	"time"

	"github.com/ASHISH26940/pintunes-api/pkg/db"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderPlaylists keeps the input order, which callers get newest first.
func renderPlaylists(playlists []db.Playlist) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Created", "Name", "Songs", "Mood", "Board"})

	for i := range playlists {
		p := &playlists[i]
		songs, mood := "?", ""
		if analysis, err := p.Mood(); err == nil {
			songs = strconv.Itoa(len(analysis.Songs))
			mood = analysis.Mood
		}
		tw.AppendRow(table.Row{
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.Name,
			songs,
			text.Trim(mood, 40),
			p.PinterestBoardURL,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
