// Package catalog exposes a read-only lookup over the platform's own
// authoritative book records.
//
// The full catalog (create/edit/delete, comments, likes) is owned by a
// separate application; this service holds only a reference relation to it.
// The cache feature consults the Lookup interface during reconciliation to
// decide whether a cached external id collides with a native record.
package catalog
