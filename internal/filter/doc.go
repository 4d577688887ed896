// Package filter applies search results to a catalog tree through the render
// capability of each entry.
//
// A search runs three passes over the sealed tree: Reset shows and expands every
// node and clears highlights, Propagate hides what neither matches nor contains a
// match, and Highlight marks label words sharing a stem with the query.
//
// Builder collects entries from an ingestion source and seals them into an Engine,
// which owns the tree and the search index for the rest of its life.
package filter
