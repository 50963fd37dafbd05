// package tasks implements playlist sync operations against remote track sources.
//
// The core abstraction is SyncEngine, which refreshes the track lists of stored playlists.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tuber/internal/models"
	"github.com/desertthunder/tuber/internal/repositories"
	"github.com/desertthunder/tuber/internal/services"
	"github.com/desertthunder/tuber/internal/shared"
)

// SyncResult is the outcome of syncing one playlist.
type SyncResult struct {
	Playlist *models.Playlist // Playlist after sync, or as it was when Err is set
	Fetched  int              // Number of tracks the source returned
	Err      error            // Fetch or write failure; the playlist is unchanged
}

// SyncRunResult contains the results of one sync run, in input order.
type SyncRunResult struct {
	RunID     string
	Results   []SyncResult
	Succeeded int
	Failed    int
}

// SyncEngine defines operations for refreshing stored playlists.
type SyncEngine interface {
	// Sync fetches each playlist's tracks from the remote source and replaces its track list.
	Sync(ctx context.Context, playlists []*models.Playlist, progress chan<- ProgressUpdate) (*SyncRunResult, error)
}

// PlaylistEngine implements SyncEngine for playlist operations.
// Contains dependencies on the track source and playlist storage.
type PlaylistEngine struct {
	source    services.TrackSource
	playlists *repositories.PlaylistRepository
	logger    *log.Logger
	workers   int
}

const defaultWorkers = 4

// NewPlaylistEngine creates a new PlaylistEngine with the provided source and repository.
func NewPlaylistEngine(source services.TrackSource, playlists *repositories.PlaylistRepository, logger *log.Logger) *PlaylistEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &PlaylistEngine{
		source:    source,
		playlists: playlists,
		logger:    logger,
		workers:   defaultWorkers,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *PlaylistEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

type fetchJob struct {
	index    int
	playlist *models.Playlist
}

type fetchResult struct {
	index  int
	tracks []models.RemoteTrack
	err    error
}

// Sync refreshes every playlist from the remote source.
//
// Fetches run on a small worker pool; writes are applied one at a time as
// results arrive. A playlist whose fetch or write fails keeps its previous
// tracks and is reported in its [SyncResult]; the others still sync. The
// returned error is only set when the run could not start.
func (e *PlaylistEngine) Sync(ctx context.Context, playlists []*models.Playlist, progress chan<- ProgressUpdate) (*SyncRunResult, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: track source not initialized", shared.ErrServiceUnavailable)
	}

	run := &SyncRunResult{
		RunID:   shared.GenerateID(),
		Results: make([]SyncResult, len(playlists)),
	}
	logger := shared.WithLogger(e.logger, "run", run.RunID)
	logger.Info("starting sync", "playlists", len(playlists), "source", e.source.Name())

	total := len(playlists)
	jobs := make(chan fetchJob, total)
	results := make(chan fetchResult, total)

	var wg sync.WaitGroup
	for range min(e.workers, max(total, 1)) {
		wg.Add(1)
		go e.fetchWorker(ctx, &wg, jobs, results)
	}

	for i, pl := range playlists {
		jobs <- fetchJob{index: i, playlist: pl}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		pl := playlists[res.index]
		e.sendProgress(progress, fetchTracksUpdate(completed, total, pl))

		result := SyncResult{Playlist: pl, Fetched: len(res.tracks), Err: res.err}
		if result.Err == nil {
			if _, err := e.playlists.Sync(pl, res.tracks); err != nil {
				result.Err = err
			}
		}
		run.Results[res.index] = result

		if result.Err != nil {
			run.Failed++
			logger.Error("sync failed", "playlist", pl.ID, "err", result.Err)
			e.sendProgress(progress, syncFailedUpdate(completed, total, pl, result.Err))
			continue
		}

		run.Succeeded++
		logger.Debug("synced playlist", "playlist", pl.ID, "fetched", result.Fetched, "tracks", len(pl.Tracks))
		e.sendProgress(progress, syncedPlaylistUpdate(completed, total, pl))
	}

	logger.Info("sync finished", "succeeded", run.Succeeded, "failed", run.Failed)
	e.sendProgress(progress, syncCompleteUpdate(run))
	return run, nil
}

// fetchWorker fetches remote tracks for playlists from the jobs channel.
func (e *PlaylistEngine) fetchWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan fetchJob, results chan<- fetchResult) {
	defer wg.Done()

	for job := range jobs {
		if err := ctx.Err(); err != nil {
			results <- fetchResult{index: job.index, err: err}
			continue
		}

		pl := job.playlist
		tracks, err := e.source.GetTracks(ctx, pl.Type, pl.Arguments, pl.Limit)
		if err != nil {
			err = fmt.Errorf("fetch %s: %w", pl.ID, err)
		}
		results <- fetchResult{index: job.index, tracks: tracks, err: err}
	}
}
