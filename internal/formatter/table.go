package formatter

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/dustin/go-humanize"
)

const timeLayout = "2006-01-02 15:04"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF00FF")).Align(lipgloss.Right)
)

// PlaylistTable renders playlists with ID, YoutubeID, Title, Arguments, Limit, Modified, Synced and Uploaded columns.
func PlaylistTable(playlists []*models.Playlist) string {
	rows := make([][]string, 0, len(playlists))
	for _, p := range playlists {
		limit := ""
		if p.Limit > 0 {
			limit = strconv.Itoa(p.Limit)
		}
		rows = append(rows, []string{
			p.ID,
			p.YouTubeID,
			p.DisplayTitle(),
			FormatArguments(p.Arguments),
			limit,
			FormatTime(&p.Modified),
			FormatTime(p.Synced),
			FormatTime(p.Uploaded),
		})
	}

	return newTable(rows, []int{4}, "ID", "YoutubeID", "Title", "Arguments", "Limit", "Modified", "Synced", "Uploaded")
}

// TrackTable renders tracks with No, Artist, Track Name, Duration and YoutubeID columns.
func TrackTable(tracks []*models.Track) string {
	rows := make([][]string, 0, len(tracks))
	for i, t := range tracks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Artist,
			t.Name,
			FormatDuration(t.Duration),
			t.YouTubeID,
		})
	}

	return newTable(rows, []int{0, 3}, "No", "Artist", "Track Name", "Duration", "YoutubeID")
}

// ImportSummary renders the title and track count of a playlist about to be
// saved, followed by its numbered track list.
func ImportSummary(title string, tracks []models.RemoteTrack) string {
	rows := make([][]string, 0, len(tracks))
	for i, t := range tracks {
		rows = append(rows, []string{strconv.Itoa(i + 1), t.Artist, t.Name})
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("Title:")+"  "+title,
		labelStyle.Render("Tracks:")+"  "+strconv.Itoa(len(tracks)),
	)
	return header + "\n\n" + newTable(rows, []int{0}, "No", "Artist", "Track Name")
}

// PlaylistSummary describes one playlist above its track table, with relative times.
func PlaylistSummary(p *models.Playlist, now time.Time) string {
	lines := []string{
		labelStyle.Render("Title:") + "  " + p.DisplayTitle(),
		labelStyle.Render("Type:") + "  " + p.Type.String(),
		labelStyle.Render("Tracks:") + "  " + humanize.Comma(int64(len(p.Tracks))),
		labelStyle.Render("Modified:") + "  " + relative(&p.Modified, now),
		labelStyle.Render("Synced:") + "  " + relative(p.Synced, now),
	}
	if len(p.Arguments) > 0 {
		lines = append(lines, labelStyle.Render("Arguments:")+"  "+FormatArguments(p.Arguments))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func newTable(rows [][]string, numeric []int, headers ...string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case slices.Contains(numeric, col):
				return numberStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// FormatDuration renders seconds as H:MM:SS, and "-" when unknown or zero.
func FormatDuration(seconds *int) string {
	if seconds == nil || *seconds <= 0 {
		return "-"
	}
	d := *seconds
	return fmt.Sprintf("%d:%02d:%02d", d/3600, (d%3600)/60, d%60)
}

// FormatTime renders a timestamp in local time, and "-" when unset.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// FormatArguments renders arguments as sorted "key: value" pairs.
func FormatArguments(args map[string]string) string {
	keys := slices.Sorted(maps.Keys(args))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, args[k]))
	}
	return strings.Join(parts, ", ")
}

func relative(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}
	return humanize.RelTime(*t, now, "ago", "from now")
}
