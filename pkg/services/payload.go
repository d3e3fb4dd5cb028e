package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultPlaylistName        = "Your Aesthetic Playlist"
	DefaultPlaylistDescription = "A curated playlist inspired by your Pinterest board"
)

// playlistPayload is what the curator model is asked to return.
type playlistPayload struct {
	PlaylistName string
	Description  string
	Songs        []string
	Mood         string
	// Degraded is set when the reply held no decodable JSON object.
	Degraded bool
}

type rawPlaylistPayload struct {
	PlaylistName string            `json:"playlistName"`
	Description  string            `json:"description"`
	Songs        []json.RawMessage `json:"songs"`
	Mood         json.RawMessage   `json:"mood"`
}

// parsePlaylistPayload never fails: if no JSON object can be recovered from
// the reply, the result is a default shell whose mood is the raw reply.
func parsePlaylistPayload(content string) playlistPayload {
	for _, candidate := range jsonObjectCandidates(content) {
		if payload, ok := decodePlaylistPayload(candidate); ok {
			return payload
		}
	}
	return playlistPayload{
		PlaylistName: DefaultPlaylistName,
		Description:  DefaultPlaylistDescription,
		Songs:        []string{},
		Mood:         content,
		Degraded:     true,
	}
}

// maxBalancedCandidates bounds how many balanced spans are decoded per reply.
const maxBalancedCandidates = 32

// jsonObjectCandidates returns balanced {...} spans that open like a JSON
// object, in order of their opening brace, followed by the greedy span from
// the first '{' to the last '}'. Braces inside JSON string literals do not
// count towards balance.
func jsonObjectCandidates(text string) []string {
	spans := balancedObjectSpans(text)
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var candidates []string
	for _, span := range spans {
		if len(candidates) == maxBalancedCandidates {
			break
		}
		if opensObject(text, span[0]) {
			candidates = append(candidates, text[span[0]:span[1]+1])
		}
	}

	first, last := strings.IndexByte(text, '{'), strings.LastIndexByte(text, '}')
	if first >= 0 && last > first {
		greedy := text[first : last+1]
		if len(candidates) == 0 || candidates[0] != greedy {
			candidates = append(candidates, greedy)
		}
	}
	return candidates
}

// balancedObjectSpans pairs every '{' with its closing '}' in a single pass.
// Quotes only open a string inside an object, and a raw newline ends one,
// since JSON strings cannot contain it.
func balancedObjectSpans(text string) [][2]int {
	var (
		open  []int
		spans [][2]int
	)
	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"' || c == '\n':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = len(open) > 0
		case '{':
			open = append(open, i)
		case '}':
			if n := len(open); n > 0 {
				spans = append(spans, [2]int{open[n-1], i})
				open = open[:n-1]
			}
		}
	}
	return spans
}

// opensObject reports whether the brace at start is followed by a key or by
// the closing brace, which rules out template placeholders like {name}.
func opensObject(text string, start int) bool {
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '"', '}':
			return true
		default:
			return false
		}
	}
	return false
}

func decodePlaylistPayload(candidate string) (playlistPayload, bool) {
	var raw rawPlaylistPayload
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return playlistPayload{}, false
	}
	// Nested objects (a song entry, say) decode fine but are not the payload.
	if raw.PlaylistName == "" && raw.Description == "" && raw.Songs == nil && raw.Mood == nil {
		return playlistPayload{}, false
	}

	songs := make([]string, 0, len(raw.Songs))
	for _, entry := range raw.Songs {
		if song := songLine(entry); song != "" {
			songs = append(songs, song)
		}
	}

	return playlistPayload{
		PlaylistName: raw.PlaylistName,
		Description:  raw.Description,
		Songs:        songs,
		Mood:         textOrJSON(raw.Mood),
	}, true
}

// songLine accepts "Title - Artist" strings as well as {"title","artist"} objects.
func songLine(entry json.RawMessage) string {
	var line string
	if err := json.Unmarshal(entry, &line); err == nil {
		if strings.TrimSpace(line) == "" {
			return ""
		}
		return line
	}
	var song struct {
		Title  string `json:"title"`
		Name   string `json:"name"`
		Artist string `json:"artist"`
	}
	if err := json.Unmarshal(entry, &song); err != nil {
		return ""
	}
	title := strings.TrimSpace(song.Title)
	if title == "" {
		title = strings.TrimSpace(song.Name)
	}
	artist := strings.TrimSpace(song.Artist)
	switch {
	case title == "":
		return ""
	case artist == "":
		return title
	default:
		return fmt.Sprintf("%s - %s", title, artist)
	}
}

func textOrJSON(value json.RawMessage) string {
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return ""
	}
	var text string
	if err := json.Unmarshal(value, &text); err == nil {
		return text
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, value); err != nil {
		return string(value)
	}
	return compact.String()
}
