package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/desertthunder/tuber/internal/tasks"
	"github.com/urfave/cli/v3"
)

const defaultLimit = 50

// userTypes maps the --type values of `lastfm add user` to playlist types.
var userTypes = map[string]models.PlaylistType{
	"loved":   models.UserLovedTracks,
	"top":     models.UserTopTracks,
	"recent":  models.UserRecentTracks,
	"friends": models.UserFriendsRecentTracks,
}

// LastfmAddUser adds a playlist built from a Last.fm user's tracks.
func (r *Runner) LastfmAddUser(ctx context.Context, cmd *cli.Command) error {
	kind := strings.ToLower(cmd.String("type"))
	playlistType, ok := userTypes[kind]
	if !ok {
		return fmt.Errorf("%w: --type must be one of loved, top, recent, friends, got %q", shared.ErrInvalidFlag, kind)
	}
	return r.addLastfmPlaylist(cmd, playlistType, cmd.StringArg("username"))
}

// LastfmAddChart adds the global top tracks chart.
func (r *Runner) LastfmAddChart(ctx context.Context, cmd *cli.Command) error {
	return r.addLastfmPlaylist(cmd, models.Chart, "")
}

// LastfmAddCountry adds the top tracks of a country.
func (r *Runner) LastfmAddCountry(ctx context.Context, cmd *cli.Command) error {
	return r.addLastfmPlaylist(cmd, models.Country, cmd.StringArg("country"))
}

// LastfmAddTag adds the top tracks of a tag.
func (r *Runner) LastfmAddTag(ctx context.Context, cmd *cli.Command) error {
	return r.addLastfmPlaylist(cmd, models.Tag, cmd.StringArg("tag"))
}

// LastfmAddArtist adds the top tracks of an artist.
func (r *Runner) LastfmAddArtist(ctx context.Context, cmd *cli.Command) error {
	return r.addLastfmPlaylist(cmd, models.Artist, cmd.StringArg("artist"))
}

// addLastfmPlaylist stores the playlist definition. Tracks are fetched by `lastfm sync`.
//
// Adding a definition that already exists updates it; the message tells
// the two apart once the playlist has been synced.
func (r *Runner) addLastfmPlaylist(cmd *cli.Command, playlistType models.PlaylistType, value string) error {
	args := map[string]string{}
	key, err := playlistType.ArgumentKey()
	if err != nil {
		return err
	}
	if key != "" {
		value = strings.TrimSpace(value)
		if value == "" {
			if value, err = r.prompt(strings.ToUpper(key[:1]) + key[1:] + ": "); err != nil {
				return err
			}
		}
		args[key] = value
	}

	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		return fmt.Errorf("%w: --limit must be positive, got %d", shared.ErrInvalidFlag, limit)
	}

	if err := r.open(); err != nil {
		return err
	}

	playlist, err := r.playlists.Set(&models.Playlist{
		Type:      playlistType,
		Provider:  models.ProviderLastfm,
		Arguments: args,
		Limit:     limit,
		Title:     strings.TrimSpace(cmd.String("title")),
	})
	if err != nil {
		return err
	}
	if err := r.persist(); err != nil {
		return err
	}

	r.logger.Info("saved lastfm playlist", "id", playlist.ID, "type", playlistType)
	r.announce(playlist.ID, playlist.Synced != nil)
	return nil
}

// LastfmList shows Last.fm playlists, or one playlist's tracks.
func (r *Runner) LastfmList(ctx context.Context, cmd *cli.Command) error {
	return r.listPlaylists(cmd.StringArg("id"), models.ProviderLastfm)
}

// LastfmRemove deletes Last.fm playlists after confirmation.
func (r *Runner) LastfmRemove(ctx context.Context, cmd *cli.Command) error {
	return r.removePlaylists(cmd.StringArgs("ids"), models.ProviderLastfm, cmd.Bool("yes"))
}

// LastfmSync refreshes the named Last.fm playlists, or all of them.
//
// A playlist whose fetch fails keeps its tracks; the others are still saved.
func (r *Runner) LastfmSync(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	playlists, err := r.syncTargets(cmd.StringArgs("ids"))
	if err != nil {
		return err
	}
	if len(playlists) == 0 {
		r.writePlain("No playlists to sync.\n")
		return nil
	}

	useTUI := cmd.Bool("tui")
	if useTUI {
		restore, err := r.logToFile()
		if err != nil {
			return err
		}
		defer restore()
	}

	engine, err := r.engine()
	if err != nil {
		return err
	}

	var result *tasks.SyncRunResult
	if useTUI {
		result, err = r.syncTUI(ctx, engine, playlists)
	} else {
		result, err = r.syncPlain(ctx, engine, playlists)
	}
	if err != nil {
		return err
	}

	if result.Succeeded > 0 {
		if err := r.persist(); err != nil {
			return err
		}
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d playlists failed to sync", result.Failed, len(result.Results))
	}
	return nil
}

// syncTargets resolves ids to Last.fm playlists, or returns all of them when ids is empty.
func (r *Runner) syncTargets(ids []string) ([]*models.Playlist, error) {
	if len(ids) == 0 {
		return r.playlists.Find(map[string]any{"provider": models.ProviderLastfm})
	}

	playlists := make([]*models.Playlist, 0, len(ids))
	for _, id := range ids {
		playlist, err := r.playlist(id, models.ProviderLastfm)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	return playlists, nil
}

// syncPlain runs the engine, printing progress lines as they arrive.
func (r *Runner) syncPlain(ctx context.Context, engine tasks.SyncEngine, playlists []*models.Playlist) (*tasks.SyncRunResult, error) {
	progress := make(chan tasks.ProgressUpdate, 2*len(playlists)+1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if update.Phase == tasks.FetchTracks {
				continue
			}
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Sync(ctx, playlists, progress)
	close(progress)
	wg.Wait()
	return result, err
}
