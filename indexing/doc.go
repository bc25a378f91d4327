// Package indexing writes profiles into storage and maintains the
// per-view vector collections used for retrieval.
//
// The Indexer handles day-to-day writes: each indexed profile is stored
// in the profile repository and embedded once per view, with the
// resulting vectors upserted into the view's collection. Batch indexing
// runs on a bounded worker pool and isolates failures per record.
//
// The Rebuilder handles the heavyweight path: after an embedding model
// change, it drops a view's collection and re-embeds every stored
// profile with retry and progress reporting.
package indexing
