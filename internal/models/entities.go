package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/tuber/internal/shared"
)

// Config stores one provider's settings, such as its API key.
type Config struct {
	Record
	Provider Provider          `json:"provider"`
	Data     map[string]string `json:"data,omitempty"`
}

// Identity returns the provider name; there is one config per provider.
func (c *Config) Identity() []any { return []any{string(c.Provider)} }

// Validate checks the provider.
func (c *Config) Validate() error { return c.Provider.Validate() }

// Track is an artist/name pair. Duration and YouTubeID are optional.
type Track struct {
	Record
	Artist    string `json:"artist"`
	Name      string `json:"name"`
	Duration  *int   `json:"duration,omitempty"` // seconds
	YouTubeID string `json:"youtube_id,omitempty"`
}

// Identity returns the fields a track id is derived from.
func (t *Track) Identity() []any { return []any{t.Artist, t.Name} }

// Validate requires artist and name.
func (t *Track) Validate() error {
	if strings.TrimSpace(t.Artist) == "" || strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: track requires artist and name", shared.ErrInvalidInput)
	}
	if t.Duration != nil && *t.Duration < 0 {
		return fmt.Errorf("%w: negative track duration", shared.ErrInvalidInput)
	}
	return nil
}

// Playlist is a playlist definition plus its ordered track ids.
//
// Type, Provider, Arguments, Limit and Title define the playlist; changing any
// of them yields a different playlist.
type Playlist struct {
	Record
	Type      PlaylistType      `json:"type"`
	Provider  Provider          `json:"provider"`
	Arguments map[string]string `json:"arguments,omitempty"`
	Limit     int               `json:"limit,omitempty"`
	Title     string            `json:"title,omitempty"`
	Tracks    []string          `json:"tracks,omitempty"`
	YouTubeID string            `json:"youtube_id,omitempty"`
	Synced    *time.Time        `json:"synced,omitempty"`
	Uploaded  *time.Time        `json:"uploaded,omitempty"`
}

// Identity returns the playlist definition. A nil argument map hashes like an empty one.
func (p *Playlist) Identity() []any {
	args := p.Arguments
	if args == nil {
		args = map[string]string{}
	}
	return []any{string(p.Type), string(p.Provider), args, p.Limit, p.Title}
}

// Validate checks the type/provider pairing, the type's argument and the limit.
func (p *Playlist) Validate() error {
	provider, err := p.Type.Provider()
	if err != nil {
		return err
	}
	if p.Provider != provider {
		return fmt.Errorf("%w: playlist type %s belongs to provider %s, not %q", shared.ErrInvalidInput, p.Type, provider, string(p.Provider))
	}

	key, err := p.Type.ArgumentKey()
	if err != nil {
		return err
	}
	if key != "" && p.Arguments[key] == "" {
		return fmt.Errorf("%w: playlist type %s requires argument %q", shared.ErrMissingArgument, p.Type, key)
	}

	if p.Limit < 0 || (p.Type.Remote() && p.Limit == 0) {
		return fmt.Errorf("%w: playlist limit must be positive, got %d", shared.ErrInvalidInput, p.Limit)
	}
	return nil
}

// DisplayTitle returns the title, or the type when the title is empty.
func (p *Playlist) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Type.String()
}

// RemoteTrack is one entry of a provider's track list.
type RemoteTrack struct {
	Artist   string
	Name     string
	Duration *int // seconds, when the provider reports it
}
