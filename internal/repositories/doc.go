// Package repositories implements entity management on top of the [registry.Registry].
//
// Each repository owns one namespace of the registry and stores its records
// there as JSON objects keyed by id, so the in-memory document always matches
// what [registry.Registry.Persist] writes.
//
// Key Implementations:
//   - [EntityRepository] : Generic CRUD with content-derived identity
//   - [ConfigRepository] : Provider configuration, one record per provider, overwrite on set
//   - [TrackRepository] : Tracks identified by artist and name
//   - [PlaylistRepository] : Playlists identified by their definition, plus sync reconciliation
//
// Identity is derived from content with [HashFields], never from counters, so
// the same track or playlist gets the same id on any machine and across runs.
// Setting an entity whose identity already exists merges into that record.
//
// Sequence numbers record insertion order and drive the ordering of [EntityRepository.Find].
package repositories
