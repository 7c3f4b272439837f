// Package source provides [search.Expander] implementations over different
// graph backends.
//
// The engine only ever asks for the outgoing links of one node, so a source
// is any type that can answer that question:
//
//   - [Memory]: adjacency built from a graphio.Graph, for small graphs and tests
//   - [Redis]: links stored as per-node hashes in Redis
//   - [Mongo]: links stored as documents in a MongoDB collection
//   - [HTTP]: links fetched from a remote link feed (see the serve command)
//   - [Cached]: wraps any other source with an expansion cache
//
// All sources return links sorted deterministically (or in declared order
// for [Memory]), so searches over the same data are reproducible.
//
// Remote sources take their clients as arguments rather than constructing
// them, keeping connection management with the caller.
package source
