package services

import (
	"strings"
	"testing"
	"time"
)

func TestParsePlaylistPayload(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		wantName string
		wantSong []string
		wantMood string
		degraded bool
	}{
		{
			name:     "bare object",
			content:  `{"playlistName":"A","description":"d","songs":["s - a"],"mood":"m"}`,
			wantName: "A", wantSong: []string{"s - a"}, wantMood: "m",
		},
		{
			name:     "code fence and prose",
			content:  "Here it is:\n```json\n{\"playlistName\":\"B\",\"songs\":[\"x - y\"],\"mood\":\"dreamy\"}\n```\nEnjoy!",
			wantName: "B", wantSong: []string{"x - y"}, wantMood: "dreamy",
		},
		{
			name:     "braces inside strings",
			content:  `{"playlistName":"Curly } Braces {","songs":["{Intro} - Band"],"mood":"odd"}`,
			wantName: "Curly } Braces {", wantSong: []string{"{Intro} - Band"}, wantMood: "odd",
		},
		{
			name:     "unbalanced prose brace before object",
			content:  "Mood: {soft\n" + `{"playlistName":"C","songs":[],"mood":"soft"}`,
			wantName: "C", wantSong: []string{}, wantMood: "soft",
		},
		{
			name:     "placeholder before object",
			content:  "Template {name} filled: " + `{"playlistName":"D","songs":["a - b"],"mood":"x"}`,
			wantName: "D", wantSong: []string{"a - b"}, wantMood: "x",
		},
		{
			name:     "song objects",
			content:  `{"playlistName":"E","songs":[{"title":"Holocene","artist":"Bon Iver"},{"name":"Solo"}],"mood":"m"}`,
			wantName: "E", wantSong: []string{"Holocene - Bon Iver", "Solo"}, wantMood: "m",
		},
		{
			name:     "structured mood",
			content:  `{"playlistName":"F","songs":[],"mood":{"vibe":"calm"}}`,
			wantName: "F", wantSong: []string{}, wantMood: `{"vibe":"calm"}`,
		},
		{
			name:     "no braces",
			content:  "just words",
			wantName: DefaultPlaylistName, wantSong: []string{}, wantMood: "just words", degraded: true,
		},
		{
			name:     "broken json",
			content:  `{"playlistName": "G", "songs": ["a",]}`,
			wantName: DefaultPlaylistName, wantSong: []string{}, wantMood: `{"playlistName": "G", "songs": ["a",]}`, degraded: true,
		},
		{
			name:     "only nested song object survives",
			content:  `{"broken": [ {"title":"x","artist":"y"} ,]}`,
			wantName: DefaultPlaylistName, wantSong: []string{}, wantMood: `{"broken": [ {"title":"x","artist":"y"} ,]}`, degraded: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parsePlaylistPayload(tc.content)
			if got.Degraded != tc.degraded {
				t.Fatalf("expected degraded=%v, got %v", tc.degraded, got.Degraded)
			}
			if got.PlaylistName != tc.wantName {
				t.Fatalf("expected name %q, got %q", tc.wantName, got.PlaylistName)
			}
			if strings.Join(got.Songs, "|") != strings.Join(tc.wantSong, "|") || got.Songs == nil {
				t.Fatalf("expected songs %v, got %#v", tc.wantSong, got.Songs)
			}
			if got.Mood != tc.wantMood {
				t.Fatalf("expected mood %q, got %q", tc.wantMood, got.Mood)
			}
		})
	}
}

func TestJSONObjectCandidatesOrder(t *testing.T) {
	got := jsonObjectCandidates(`a {"x":1} b {"y":{"z":2}} c`)
	want := []string{`{"x":1}`, `{"y":{"z":2}}`, `{"z":2}`, `{"x":1} b {"y":{"z":2}}`}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected candidates:\n%v", got)
	}
}

func TestJSONObjectCandidatesSkipsPlaceholders(t *testing.T) {
	got := jsonObjectCandidates(`Use {name} and {{x}} then { "a":1 } {}`)
	want := []string{`{ "a":1 }`, `{}`, `{name} and {{x}} then { "a":1 } {}`}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected candidates:\n%v", got)
	}
}

func TestJSONObjectCandidatesAreBounded(t *testing.T) {
	content := strings.Repeat(`{"a":1} `, 200)
	got := jsonObjectCandidates(content)
	if len(got) != maxBalancedCandidates+1 {
		t.Fatalf("expected %d candidates, got %d", maxBalancedCandidates+1, len(got))
	}
}

func TestStrayQuoteInProseDoesNotHideObject(t *testing.T) {
	content := "Mood: {it's \"dreamy\n" + `{"playlistName":"H","songs":["a - b"],"mood":"dreamy"}`
	got := parsePlaylistPayload(content)
	if got.Degraded || got.PlaylistName != "H" {
		t.Fatalf("expected payload to be recovered, got %+v", got)
	}
}

func TestParsePlaylistPayloadLinearOnBraceFloods(t *testing.T) {
	const n = 100000
	inputs := map[string]string{
		"open braces":   strings.Repeat("{", n),
		"nested keys":   strings.Repeat(`{"a":`, n/5) + "1" + strings.Repeat("}", n/5),
		"nested empty":  strings.Repeat("{", n/2) + strings.Repeat("}", n/2),
		"many objects":  strings.Repeat(`{"x":1}`, n/7),
		"quoted braces": `{"mood":"` + strings.Repeat("{", n) + `"}`,
	}
	for name, content := range inputs {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			parsePlaylistPayload(content)
			if elapsed := time.Since(start); elapsed > 2*time.Second {
				t.Fatalf("parse took %s for %d bytes", elapsed, len(content))
			}
		})
	}
}
