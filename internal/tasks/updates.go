package tasks

import (
	"fmt"

	"github.com/desertthunder/tuber/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchTracks Phase = iota
	SyncPlaylist
	SyncFailed
	SyncComplete
)

func (p Phase) String() string {
	switch p {
	case FetchTracks:
		return "fetch_tracks"
	case SyncPlaylist:
		return "sync_playlist"
	case SyncFailed:
		return "sync_failed"
	case SyncComplete:
		return "sync_complete"
	default:
		return ""
	}
}

func fetchTracksUpdate(step, total int, pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching %s...", step, total, pl.DisplayTitle()),
	}
}

func syncedPlaylistUpdate(step, total int, pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d tracks)", step, total, pl.DisplayTitle(), len(pl.Tracks)),
		Data:    pl,
	}
}

func syncFailedUpdate(step, total int, pl *models.Playlist, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, pl.DisplayTitle(), err),
	}
}

func syncCompleteUpdate(result *SyncRunResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncComplete,
		Step:    len(result.Results),
		Total:   len(result.Results),
		Message: fmt.Sprintf("Synced %d of %d playlists", result.Succeeded, len(result.Results)),
		Data:    result,
	}
}
