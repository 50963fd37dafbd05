// submodule cmd contains command definitions
package main

import (
	"context"
	"strings"

	"github.com/desertthunder/tuber/internal/formatter"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/urfave/cli/v3"
)

// newApp builds the root command around r.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tuber",
		Usage:   "Build playlists from Last.fm charts, text files and your own track lists",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.before,
		After:    r.closeStore,
		Commands: r.register(),
	}
}

// before loads the configuration named by --config and applies --verbose.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := r.loadConfig(cmd.String("config")); err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		if err := shared.SetLogLevel(r.logger, "debug"); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

func yesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip confirmation prompts"}
}

func limitFlag() *cli.IntFlag {
	return &cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum number of tracks", Value: defaultLimit}
}

func titleFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: usage}
}

// setupCommand handles setup operations for configuration and storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize storage",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "reset", Usage: "Discard all stored playlists, tracks and provider configuration"},
			yesFlag(),
		},
		Action: r.Setup,
	}
}

// addCommand creates user playlists from the editor or from files.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a user playlist",
		Commands: []*cli.Command{
			{
				Name:   "editor",
				Usage:  "Compose an \"Artist - Track\" list in a terminal editor",
				Flags:  []cli.Flag{titleFlag("Playlist title"), yesFlag()},
				Action: r.AddFromEditor,
			},
			{
				Name:  "file",
				Usage: "Import a track list from a file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "File format (" + strings.Join(formatter.ImportFormats, ", ") + "), detected from the extension when empty",
					},
					titleFlag("Playlist title, defaults to the file name"),
					yesFlag(),
				},
				Action: r.AddFromFile,
			},
		},
	}
}

// listCommand shows every playlist, or one playlist's tracks.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List playlists, or the tracks of one playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.List,
	}
}

// removeCommand deletes playlists.
func removeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "remove",
		Aliases: []string{"rm"},
		Usage:   "Remove playlists by id",
		Arguments: []cli.Argument{
			&cli.StringArgs{Name: "ids", Min: 1, Max: -1},
		},
		Flags:  []cli.Flag{yesFlag()},
		Action: r.Remove,
	}
}

// exportCommand writes a playlist's tracks to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a playlist's tracks",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format (" + strings.Join(formatter.ExportFormats, ", ") + ")",
				Value:   formatter.FormatText,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path, stdout when empty",
			},
		},
		Action: r.Export,
	}
}

// lastfmCommand handles Last.fm playlists.
func lastfmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "lastfm",
		Aliases: []string{"fm"},
		Usage:   "Last.fm playlists",
		Commands: []*cli.Command{
			{
				Name:  "setup",
				Usage: "Store the Last.fm API key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "api-key", Usage: "Last.fm API key, prompted when empty"},
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing configuration without asking"},
				},
				Action: r.LastfmSetup,
			},
			{
				Name:  "add",
				Usage: "Add a Last.fm playlist",
				Commands: []*cli.Command{
					{
						Name:  "user",
						Usage: "A user's loved, top, recent or friends' recent tracks",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "username"},
						},
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "type",
								Usage: "One of loved, top, recent, friends",
								Value: "loved",
							},
							limitFlag(), titleFlag("Playlist title"),
						},
						Action: r.LastfmAddUser,
					},
					{
						Name:   "chart",
						Usage:  "Global top tracks",
						Flags:  []cli.Flag{limitFlag(), titleFlag("Playlist title")},
						Action: r.LastfmAddChart,
					},
					{
						Name:      "country",
						Usage:     "Top tracks by country",
						Arguments: []cli.Argument{&cli.StringArg{Name: "country"}},
						Flags:     []cli.Flag{limitFlag(), titleFlag("Playlist title")},
						Action:    r.LastfmAddCountry,
					},
					{
						Name:      "tag",
						Usage:     "Top tracks by tag",
						Arguments: []cli.Argument{&cli.StringArg{Name: "tag"}},
						Flags:     []cli.Flag{limitFlag(), titleFlag("Playlist title")},
						Action:    r.LastfmAddTag,
					},
					{
						Name:      "artist",
						Usage:     "Top tracks by artist",
						Arguments: []cli.Argument{&cli.StringArg{Name: "artist"}},
						Flags:     []cli.Flag{limitFlag(), titleFlag("Playlist title")},
						Action:    r.LastfmAddArtist,
					},
				},
			},
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List Last.fm playlists, or the tracks of one playlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.LastfmList,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove Last.fm playlists by id",
				Arguments: []cli.Argument{&cli.StringArgs{Name: "ids", Min: 1, Max: -1}},
				Flags:     []cli.Flag{yesFlag()},
				Action:    r.LastfmRemove,
			},
			{
				Name:      "sync",
				Usage:     "Refresh Last.fm playlists, all of them when no id is given",
				Arguments: []cli.Argument{&cli.StringArgs{Name: "ids", Min: 0, Max: -1}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "tui", Usage: "Show progress in an interactive view"},
				},
				Action: r.LastfmSync,
			},
		},
	}
}
