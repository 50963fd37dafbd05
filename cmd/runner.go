package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/registry"
	"github.com/desertthunder/tuber/internal/repositories"
	"github.com/desertthunder/tuber/internal/services"
	"github.com/desertthunder/tuber/internal/shared"
	"github.com/desertthunder/tuber/internal/store"
	"github.com/desertthunder/tuber/internal/tasks"
	"github.com/desertthunder/tuber/internal/ui"
	"github.com/urfave/cli/v3"
)

// EditorFunc opens an interactive editor and returns the saved text.
type EditorFunc func(title, initial string) (string, error)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	registry   *registry.Registry
	store      store.Store
	configs    *repositories.ConfigRepository
	tracks     *repositories.TrackRepository
	playlists  *repositories.PlaylistRepository
	source     services.TrackSource
	logger     *log.Logger
	output     io.Writer
	input      *bufio.Reader
	editor     EditorFunc
	now        func() time.Time
	loaded     bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      store.Store          // Overrides the store selected by Config
	Source     services.TrackSource // Overrides the Last.fm service built from stored config
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	Editor     EditorFunc
	Now        func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		registry:   registry.New(),
		store:      opts.Store,
		source:     opts.Source,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      bufio.NewReader(opts.Input),
		editor:     opts.Editor,
		now:        opts.Now,
	}
	if r.editor == nil {
		r.editor = func(title, initial string) (string, error) {
			return ui.RunEditor(title, initial, os.Stdin, r.output)
		}
	}

	r.configs = repositories.NewConfigRepository(r.registry)
	r.tracks = repositories.NewTrackRepository(r.registry)
	r.playlists = repositories.NewPlaylistRepository(r.registry, r.tracks)
	r.configs.SetClock(r.now)
	r.tracks.SetClock(r.now)
	r.playlists.SetClock(r.now)
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, addCommand, listCommand, removeCommand, exportCommand, lastfmCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig replaces the runner's config with the file at path when it exists.
func (r *Runner) loadConfig(path string) error {
	r.configPath = path
	if _, err := os.Stat(path); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", path)
		return nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return err
	}
	r.config = config
	return shared.SetLogLevel(r.logger, config.Log.Level)
}

// open loads the registry from the configured store once per process.
func (r *Runner) open() error {
	if r.loaded {
		return nil
	}
	if r.store == nil {
		s, err := store.Open(r.config)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		r.store = s
	}

	r.logger.Debug("loading registry", "store", r.store)
	if err := r.store.Load(r.registry); err != nil {
		return fmt.Errorf("failed to load registry from %s: %w", r.store, err)
	}
	r.loaded = true
	return nil
}

// persist saves the registry to the store.
func (r *Runner) persist() error {
	if err := r.open(); err != nil {
		return err
	}
	if err := r.store.Persist(r.registry); err != nil {
		return fmt.Errorf("failed to persist registry to %s: %w", r.store, err)
	}
	r.logger.Debug("registry persisted", "store", r.store)
	return nil
}

// close releases the store, if one was opened.
func (r *Runner) close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// prompt writes label and returns the next trimmed input line.
func (r *Runner) prompt(label string) (string, error) {
	r.writePlain("%s", label)
	line, err := r.input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("%w: no input", shared.ErrAborted)
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question defaulting to no. yes skips the question.
//
// Anything but an explicit yes returns [shared.ErrAborted].
func (r *Runner) confirm(question string, yes bool) error {
	if yes {
		return nil
	}
	answer, err := r.prompt(question + " [y/N]: ")
	if err != nil {
		r.writePlain("Aborted!\n")
		return err
	}
	if !slices.Contains([]string{"y", "yes"}, strings.ToLower(answer)) {
		r.writePlain("Aborted!\n")
		return shared.ErrAborted
	}
	return nil
}

// trackSource returns the configured remote source, building the Last.fm
// service from the stored api key when no override is set.
func (r *Runner) trackSource() (services.TrackSource, error) {
	if r.source != nil {
		return r.source, nil
	}
	cfg, err := r.configs.GetOrDefault(models.ProviderLastfm, nil)
	if err != nil {
		return nil, err
	}
	svc, err := services.NewLastfmServiceFromConfig(cfg, r.config.Lastfm, r.logger)
	if err != nil {
		return nil, err
	}
	r.source = svc
	return svc, nil
}

// engine builds the sync engine over the runner's playlists.
func (r *Runner) engine() (*tasks.PlaylistEngine, error) {
	source, err := r.trackSource()
	if err != nil {
		return nil, err
	}
	return tasks.NewPlaylistEngine(source, r.playlists, r.logger), nil
}

// closeStore is the After hook for the root command.
func (r *Runner) closeStore(ctx context.Context, cmd *cli.Command) error {
	return r.close()
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
