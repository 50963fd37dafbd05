// Package registry implements the nested key-value document that holds all
// persisted state: provider configuration under "config" and entity
// collections under "entities".
//
// A [Registry] is constructed once by the application and handed to the
// repositories. Writes replace whole subtrees at their path; there is no deep
// merge. Callers that need a merge read the subtree, change it, and write it
// back.
//
// State is durable only after [Registry.Persist]. [Registry.Load] treats a
// missing file as an empty registry and a malformed one as
// [shared.ErrMalformed].
package registry
