// Package cache implements the external content cache and its
// reconciliation against the first-party catalog.
//
// External book records are cached durably in the cache_entries table,
// keyed by their prefixed id ("ext-42"). Because the external catalog and
// the first-party catalog assign ids independently, a cached id can collide
// with a native record. Collisions are resolved lazily, on read:
//
//  1. Store lookup. A miss is a plain not_found.
//  2. The prefix is stripped and the native catalog is consulted for a
//     record with the raw id.
//  3. On a hit the cache entry is deleted (idempotent) and the caller is
//     redirected to the native id; on a miss the entry is returned as-is.
//
// The cache is a best-effort accelerator, never a source of truth.
//
// # Components
//
//   - Store: durable get/set/delete/list over GORM, last-write-wins.
//   - Classifier: pure categorization of entries into valid_external,
//     native_shadow, or suspicious.
//   - Engine: the on-read reconciliation described above.
//   - Coordinator: operator bulk operations (clean, rebuild, stats) with
//     explicit succeeded/skipped/failed accounting.
//   - SourceClient + Service.GetOrFetch: on-demand fetch-and-cache from the
//     numeric-id external source, deduplicated with singleflight.
//
// # HTTP Endpoints
//
//   - GET /books/external/:id : resolve an external book (entry or redirect).
//   - GET /cache/stats : read-only classification statistics.
//
// Mutating maintenance (clean, rebuild) is deliberately CLI-only; see the
// `cache` command tree.
package cache
