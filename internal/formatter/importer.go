package formatter

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/desertthunder/tuber/internal/models"
)

// ParseText reads one "Artist - Track" pair per line.
//
// Blank lines, lines starting with "#" and lines without a dash are skipped.
// The first dash separates artist from track name. Repeated pairs are dropped.
func ParseText(text string) []models.RemoteTrack {
	var tracks []models.RemoteTrack
	seen := map[[2]string]bool{}

	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		artist, name, ok := strings.Cut(line, "-")
		if !ok {
			continue
		}
		artist, name = strings.TrimSpace(artist), strings.TrimSpace(name)
		key := [2]string{artist, name}
		if artist == "" || name == "" || seen[key] {
			continue
		}

		seen[key] = true
		tracks = append(tracks, models.RemoteTrack{Artist: artist, Name: name})
	}
	return tracks
}

// ParseXSPF reads the creator and title of every track in an XSPF playlist.
//
// Parsing stops quietly at the first syntax error and returns the tracks read
// so far. Tracks missing a creator or title and repeated pairs are dropped.
func ParseXSPF(data []byte) []models.RemoteTrack {
	var tracks []models.RemoteTrack
	seen := map[[2]string]bool{}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var (
		inTrack      bool
		artist, name string
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return tracks
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "track":
				inTrack, artist, name = true, "", ""
			case "creator", "title":
				if !inTrack {
					continue
				}
				var text string
				if err := dec.DecodeElement(&text, &el); err != nil {
					return tracks
				}
				if el.Name.Local == "creator" {
					artist = strings.TrimSpace(text)
				} else {
					name = strings.TrimSpace(text)
				}
			}
		case xml.EndElement:
			if el.Name.Local != "track" || !inTrack {
				continue
			}
			inTrack = false
			key := [2]string{artist, name}
			if artist == "" || name == "" || seen[key] {
				continue
			}
			seen[key] = true
			tracks = append(tracks, models.RemoteTrack{Artist: artist, Name: name})
		}
	}
}
