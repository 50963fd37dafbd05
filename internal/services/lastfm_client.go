// Last.fm API client built on github.com/shkh/lastfm-go
package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/shkh/lastfm-go/lastfm"
)

// LastfmClient is the set of Last.fm API methods used to build playlists.
type LastfmClient interface {
	LovedTracks(user string, limit int) ([]models.RemoteTrack, error)
	TopTracks(user string, limit int) ([]models.RemoteTrack, error)
	RecentTracks(user string, limit int) ([]models.RemoteTrack, error)
	Friends(user string, limit int) ([]string, error)
	ChartTopTracks(limit int) ([]models.RemoteTrack, error)
	CountryTopTracks(country string, limit int) ([]models.RemoteTrack, error)
	TagTopTracks(tag string, limit int) ([]models.RemoteTrack, error)
	ArtistTopTracks(artist string, limit int) ([]models.RemoteTrack, error)
}

type lastfmClient struct {
	api *lastfm.Api
}

// NewLastfmClient creates a [LastfmClient] for the given API key.
//
// Only read methods are used, so no secret or session is needed.
func NewLastfmClient(apiKey string) LastfmClient {
	return &lastfmClient{api: lastfm.New(apiKey, "")}
}

func (c *lastfmClient) LovedTracks(user string, limit int) ([]models.RemoteTrack, error) {
	result, err := c.api.User.GetLovedTracks(lastfm.P{"user": user, "limit": limit})
	if err != nil {
		return nil, requestError("user.getLovedTracks", err)
	}
	return tracksFromLovedTracks(&result), nil
}

func (c *lastfmClient) TopTracks(user string, limit int) ([]models.RemoteTrack, error) {
	result, err := c.api.User.GetTopTracks(lastfm.P{"user": user, "limit": limit})
	if err != nil {
		return nil, requestError("user.getTopTracks", err)
	}
	return tracksFromUserTopTracks(&result), nil
}

func (c *lastfmClient) RecentTracks(user string, limit int) ([]models.RemoteTrack, error) {
	result, err := c.api.User.GetRecentTracks(lastfm.P{"user": user, "limit": limit})
	if err != nil {
		return nil, requestError("user.getRecentTracks", err)
	}
	return tracksFromRecentTracks(&result), nil
}

func (c *lastfmClient) Friends(user string, limit int) ([]string, error) {
	result, err := c.api.User.GetFriends(lastfm.P{"user": user, "limit": limit})
	if err != nil {
		return nil, requestError("user.getFriends", err)
	}
	return namesFromFriends(&result), nil
}

func (c *lastfmClient) ChartTopTracks(limit int) ([]models.RemoteTrack, error) {
	result, err := c.api.Chart.GetTopTracks(lastfm.P{"limit": limit})
	if err != nil {
		return nil, requestError("chart.getTopTracks", err)
	}
	return tracksFromChartTopTracks(&result), nil
}

func (c *lastfmClient) CountryTopTracks(country string, limit int) ([]models.RemoteTrack, error) {
	result, err := c.api.Geo.GetTopTracks(lastfm.P{"country": country, "limit": limit})
	if err != nil {
		return nil, requestError("geo.getTopTracks", err)
	}
	return tracksFromGeoTopTracks(&result), nil
}

func (c *lastfmClient) TagTopTracks(tag string, limit int) ([]models.RemoteTrack, error) {
	result, err := c.api.Tag.GetTopTracks(lastfm.P{"tag": tag, "limit": limit})
	if err != nil {
		return nil, requestError("tag.getTopTracks", err)
	}
	return tracksFromTagTopTracks(&result), nil
}

func (c *lastfmClient) ArtistTopTracks(artist string, limit int) ([]models.RemoteTrack, error) {
	result, err := c.api.Artist.GetTopTracks(lastfm.P{"artist": artist, "limit": limit})
	if err != nil {
		return nil, requestError("artist.getTopTracks", err)
	}
	return tracksFromArtistTopTracks(&result), nil
}

func tracksFromLovedTracks(result *lastfm.UserGetLovedTracks) []models.RemoteTrack {
	tracks := make([]models.RemoteTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, models.RemoteTrack{Artist: t.Artist.Name, Name: t.Name})
	}
	return tracks
}

func tracksFromUserTopTracks(result *lastfm.UserGetTopTracks) []models.RemoteTrack {
	tracks := make([]models.RemoteTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, models.RemoteTrack{Artist: t.Artist.Name, Name: t.Name, Duration: parseDuration(t.Duration)})
	}
	return tracks
}

// tracksFromRecentTracks maps recent scrobbles; the artist is the element text here.
func tracksFromRecentTracks(result *lastfm.UserGetRecentTracks) []models.RemoteTrack {
	tracks := make([]models.RemoteTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, models.RemoteTrack{Artist: strings.TrimSpace(t.Artist.Name), Name: t.Name})
	}
	return tracks
}

func namesFromFriends(result *lastfm.UserGetFriends) []string {
	names := make([]string, 0, len(result.Friends))
	for _, f := range result.Friends {
		if f.Name != "" {
			names = append(names, f.Name)
		}
	}
	return names
}

func tracksFromChartTopTracks(result *lastfm.ChartGetTopTracks) []models.RemoteTrack {
	tracks := make([]models.RemoteTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, models.RemoteTrack{Artist: t.Artist.Name, Name: t.Name, Duration: parseDuration(t.Duration)})
	}
	return tracks
}

// tracksFromGeoTopTracks maps geo.getTopTracks. lastfm-go reads the artist
// name from a nested <artist> element that the API does not send, so the
// name is recovered from the track or artist URL when it comes back empty.
func tracksFromGeoTopTracks(result *lastfm.GeoGetTopTracks) []models.RemoteTrack {
	tracks := make([]models.RemoteTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		artist := t.Artist.Name
		if artist == "" {
			artist = artistFromURL(t.Artist.Url)
		}
		if artist == "" {
			artist = artistFromURL(t.Url)
		}
		tracks = append(tracks, models.RemoteTrack{Artist: artist, Name: t.Name, Duration: parseDuration(t.Duration)})
	}
	return tracks
}

func tracksFromTagTopTracks(result *lastfm.TagGetTopTracks) []models.RemoteTrack {
	tracks := make([]models.RemoteTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, models.RemoteTrack{Artist: t.Artist.Name, Name: t.Name, Duration: parseDuration(t.Duration)})
	}
	return tracks
}

// tracksFromArtistTopTracks maps artist.getTopTracks; the artist is carried once on the list.
func tracksFromArtistTopTracks(result *lastfm.ArtistGetTopTracks) []models.RemoteTrack {
	tracks := make([]models.RemoteTrack, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, models.RemoteTrack{Artist: result.Artist, Name: t.Name, Duration: parseDuration(t.Duration)})
	}
	return tracks
}

// artistFromURL extracts the artist from a last.fm music URL such as
// https://www.last.fm/music/Daft+Punk/_/One+More+Time.
func artistFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	segment, ok := strings.CutPrefix(u.EscapedPath(), "/music/")
	if !ok {
		return ""
	}
	segment, _, _ = strings.Cut(segment, "/")
	artist, err := url.QueryUnescape(segment)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(artist)
}

func requestError(method string, err error) error {
	return fmt.Errorf("%w: %s: %v", shared.ErrAPIRequest, method, err)
}

// parseDuration reads a duration in seconds; zero and garbage mean unknown.
func parseDuration(s string) *int {
	d, err := strconv.Atoi(s)
	if err != nil || d <= 0 {
		return nil
	}
	return &d
}
