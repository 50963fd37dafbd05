package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/tuber/internal/formatter"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/desertthunder/tuber/internal/ui"
	"github.com/urfave/cli/v3"
)

// AddFromEditor saves a user playlist composed in the terminal editor.
func (r *Runner) AddFromEditor(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	title, err := r.title(cmd.String("title"), "")
	if err != nil {
		return err
	}

	text, err := r.editor(title, ui.EditorTemplate)
	if err != nil {
		return err
	}
	return r.saveUserPlaylist(title, formatter.ParseText(text), cmd.Bool("yes"))
}

// AddFromFile saves a user playlist imported from a text or XSPF file.
func (r *Runner) AddFromFile(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: file path", shared.ErrMissingArgument)
	}

	format := cmd.String("format")
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	remote, err := formatter.Parse(format, data)
	if err != nil {
		return err
	}
	r.logger.Debug("parsed track file", "path", path, "format", format, "tracks", len(remote))

	if err := r.open(); err != nil {
		return err
	}

	base := filepath.Base(path)
	title, err := r.title(cmd.String("title"), strings.TrimSuffix(base, filepath.Ext(base)))
	if err != nil {
		return err
	}
	return r.saveUserPlaylist(title, remote, cmd.Bool("yes"))
}

// title returns the trimmed flag value, def, or a prompted title, in that order.
func (r *Runner) title(flag, def string) (string, error) {
	if title := strings.TrimSpace(flag); title != "" {
		return title, nil
	}
	if def != "" {
		return def, nil
	}
	title, err := r.prompt("Title: ")
	if err != nil {
		return "", err
	}
	if title == "" {
		return "", fmt.Errorf("%w: playlist title", shared.ErrMissingArgument)
	}
	return title, nil
}

// saveUserPlaylist shows the track summary, asks for confirmation and stores
// the playlist with its tracks. Nothing is written when the user declines.
func (r *Runner) saveUserPlaylist(title string, remote []models.RemoteTrack, yes bool) error {
	if len(remote) == 0 {
		r.writePlain("Tracklist is empty, aborting...\n")
		return fmt.Errorf("%w: empty track list", shared.ErrAborted)
	}

	r.writePlain("%s\n\n", formatter.ImportSummary(title, remote))
	if err := r.confirm("Are you sure you want to save this playlist?", yes); err != nil {
		return err
	}

	playlist, err := r.playlists.Set(&models.Playlist{
		Type:     models.Editor,
		Provider: models.ProviderUser,
		Title:    title,
	})
	if err != nil {
		return err
	}
	existed := playlist.Synced != nil

	if _, err := r.playlists.Sync(playlist, remote); err != nil {
		return err
	}
	if err := r.persist(); err != nil {
		return err
	}

	r.logger.Info("saved user playlist", "id", playlist.ID, "tracks", len(playlist.Tracks))
	r.announce(playlist.ID, existed)
	return nil
}

// announce prints the outcome of an add command.
func (r *Runner) announce(id string, existed bool) {
	if existed {
		r.writePlain("Updated playlist: %s!\n", id)
		return
	}
	r.writePlain("Added playlist: %s!\n", id)
}

// List shows every playlist, or the tracks of the playlist named by the id argument.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	return r.listPlaylists(cmd.StringArg("id"), "")
}

// listPlaylists renders playlists of provider (all when empty) or one playlist's tracks.
func (r *Runner) listPlaylists(id string, provider models.Provider) error {
	if err := r.open(); err != nil {
		return err
	}

	if id != "" {
		playlist, err := r.playlist(id, provider)
		if err != nil {
			return err
		}
		tracks, err := r.tracks.GetMany(playlist.Tracks)
		if err != nil {
			return err
		}
		r.writePlain("%s\n\n%s\n", formatter.PlaylistSummary(playlist, r.now()), formatter.TrackTable(tracks))
		return nil
	}

	criteria := map[string]any{}
	if provider != "" {
		criteria["provider"] = provider
	}
	playlists, err := r.playlists.Find(criteria)
	if err != nil {
		return err
	}
	if len(playlists) == 0 {
		r.writePlain("No playlists found.\n")
		return nil
	}
	r.writePlain("%s\n", formatter.PlaylistTable(playlists))
	return nil
}

// playlist fetches id, treating a playlist of another provider as not found.
func (r *Runner) playlist(id string, provider models.Provider) (*models.Playlist, error) {
	playlist, err := r.playlists.Get(id)
	if err != nil {
		return nil, err
	}
	if provider != "" && playlist.Provider != provider {
		return nil, fmt.Errorf("%w: %s is not a %s playlist", shared.ErrNotFound, id, provider)
	}
	return playlist, nil
}

// Remove deletes the playlists named by the ids argument after confirmation.
func (r *Runner) Remove(ctx context.Context, cmd *cli.Command) error {
	return r.removePlaylists(cmd.StringArgs("ids"), "", cmd.Bool("yes"))
}

func (r *Runner) removePlaylists(ids []string, provider models.Provider, yes bool) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.open(); err != nil {
		return err
	}

	playlists := make([]*models.Playlist, 0, len(ids))
	for _, id := range ids {
		playlist, err := r.playlist(id, provider)
		if err != nil {
			return err
		}
		playlists = append(playlists, playlist)
	}

	r.writePlain("%s\n", formatter.PlaylistTable(playlists))
	if err := r.confirm("Do you want to continue?", yes); err != nil {
		return err
	}

	for _, playlist := range playlists {
		if err := r.playlists.Remove(playlist.ID); errors.Is(err, shared.ErrNotFound) {
			continue
		} else if err != nil {
			return err
		}
		r.logger.Info("removed playlist", "id", playlist.ID)
		r.writePlain("Removed playlist: %s!\n", playlist.ID)
	}
	return r.persist()
}

// Export writes a playlist's tracks to --output, or to stdout.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if err := r.open(); err != nil {
		return err
	}

	playlist, err := r.playlists.Get(id)
	if err != nil {
		return err
	}
	tracks, err := r.tracks.GetMany(playlist.Tracks)
	if err != nil {
		return err
	}

	data, err := formatter.Export(cmd.String("format"), playlist, tracks)
	if err != nil {
		return err
	}

	path := cmd.String("output")
	if path == "" {
		_, err := r.output.Write(data)
		return err
	}
	if err := formatter.WriteExport(path, data); err != nil {
		return err
	}
	r.logger.Info("exported playlist", "id", id, "path", path, "tracks", len(tracks))
	r.writePlain("Exported %d tracks to %s\n", len(tracks), path)
	return nil
}
