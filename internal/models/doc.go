// Package models defines the entities stored in the registry and the types that describe them.
//
// Persistent entities embed [Record], which carries the manager-owned fields:
//   - [Config] : Per-provider settings, identified by provider name
//   - [Track] : Artist/name pair, identified by a hash of both
//   - [Playlist] : Playlist definition and its ordered track ids, identified by a hash of its definition
//
// [PlaylistType] and [Provider] are closed enumerations. Every switch over them
// is exhaustive and ends with an error branch for unknown values.
//
// [RemoteTrack] is what a remote provider returns for a playlist query.
package models
