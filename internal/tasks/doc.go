// Package tasks refreshes stored playlists from remote track sources with real-time progress reporting.
//
// # Core Operations
//
// The [SyncEngine] interface defines one operation:
//
//  1. [SyncEngine.Sync] : Refresh playlists from their provider
//     - Fetches each playlist's tracks from a [services.TrackSource]
//     - Replaces the stored track list via [repositories.PlaylistRepository.Sync]
//     - Reports one [SyncResult] per playlist
//
// # Failure Isolation
//
// A failed fetch or write leaves that playlist exactly as it was. Other
// playlists in the same run still sync.
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Implementation
//
// [PlaylistEngine] implements [SyncEngine] with dependencies on:
//   - [services.TrackSource] : remote track lists (Last.fm)
//   - [repositories.PlaylistRepository] : playlist and track storage
//
// Every run gets a uuid that tags its log lines.
package tasks
