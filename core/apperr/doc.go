// Package apperr defines the error taxonomy used at the system boundary.
//
// Every failure that leaves a service is normalized into one of six kinds:
//
//   - validation: missing or malformed caller input
//   - upstream: a remote fetch returned a non-success status
//   - timeout: a remote fetch exceeded its configured time bound
//   - not_found: no cache entry or native record for the given id
//   - decode: unparseable image or payload bytes
//   - internal: unexpected store or infrastructure failure
//
// HTTP handlers map kinds to status codes (validation -> 400,
// not_found -> 404, upstream -> status passthrough, everything else -> 500).
// Internal causes stay attached via Unwrap for logging, but handlers emit
// only the normalized message.
//
// # Usage
//
//	if err := store.Get(ctx, id); apperr.IsKind(err, apperr.KindNotFound) {
//	    return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
//	}
package apperr
