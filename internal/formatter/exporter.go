// package formatter renders playlists as tables and converts track lists to and from files (plain text, XSPF, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/registry"
	"github.com/desertthunder/tuber/internal/shared"
)

// Export formats
const (
	FormatText = "txt"
	FormatXSPF = "xspf"
	FormatCSV  = "csv"
)

// ImportFormats are the formats that can be read back by [Parse].
var ImportFormats = []string{FormatText, FormatXSPF}

// ExportFormats are the formats [Export] can write.
var ExportFormats = []string{FormatText, FormatXSPF, FormatCSV}

// Parse reads tracks from data in the given import format.
func Parse(format string, data []byte) ([]models.RemoteTrack, error) {
	switch format {
	case FormatText:
		return ParseText(string(data)), nil
	case FormatXSPF:
		return ParseXSPF(data), nil
	default:
		return nil, fmt.Errorf("%w: import format %q", shared.ErrInvalidFlag, format)
	}
}

// Export renders a playlist's tracks in the given format.
func Export(format string, playlist *models.Playlist, tracks []*models.Track) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(playlist, tracks), nil
	case FormatXSPF:
		return ExportToXSPF(playlist, tracks)
	case FormatCSV:
		return ExportToCSV(tracks)
	default:
		return nil, fmt.Errorf("%w: export format %q", shared.ErrInvalidFlag, format)
	}
}

// ExportToText writes "Artist - Track" lines under a commented header, readable by [ParseText].
func ExportToText(playlist *models.Playlist, tracks []*models.Track) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n", playlist.DisplayTitle())
	fmt.Fprintf(&buf, "# Tracks: %d\n", len(tracks))
	for _, track := range tracks {
		fmt.Fprintf(&buf, "%s - %s\n", track.Artist, track.Name)
	}

	return buf.Bytes()
}

type xspfPlaylist struct {
	XMLName   xml.Name    `xml:"playlist"`
	Version   string      `xml:"version,attr"`
	Namespace string      `xml:"xmlns,attr"`
	Title     string      `xml:"title,omitempty"`
	Tracks    []xspfTrack `xml:"trackList>track"`
}

type xspfTrack struct {
	Creator  string `xml:"creator"`
	Title    string `xml:"title"`
	Duration int    `xml:"duration,omitempty"` // milliseconds
}

// ExportToXSPF writes an XSPF document, readable by [ParseXSPF].
func ExportToXSPF(playlist *models.Playlist, tracks []*models.Track) ([]byte, error) {
	doc := xspfPlaylist{
		Version:   "1",
		Namespace: "http://xspf.org/ns/0/",
		Title:     playlist.DisplayTitle(),
		Tracks:    make([]xspfTrack, 0, len(tracks)),
	}
	for _, track := range tracks {
		t := xspfTrack{Creator: track.Artist, Title: track.Name}
		if track.Duration != nil {
			t.Duration = *track.Duration * 1000
		}
		doc.Tracks = append(doc.Tracks, t)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode XSPF: %w", err)
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// ExportToCSV converts tracks to CSV format with columns: ID, Artist, Name, Duration, YoutubeID
func ExportToCSV(tracks []*models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Artist", "Name", "Duration", "YoutubeID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		duration := ""
		if track.Duration != nil {
			duration = strconv.Itoa(*track.Duration)
		}
		record := []string{track.ID, track.Artist, track.Name, duration, track.YouTubeID}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteExport writes data to path atomically.
func WriteExport(path string, data []byte) error {
	w, err := registry.NewAtomicWriter(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Abort()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return w.Commit()
}
