// Package proxy relays raw remote text content under a bounded time budget.
//
// External book bodies live on third-party hosts that browsers cannot fetch
// directly (CORS, mixed content), so the platform relays them. The relay is
// deliberately dumb: it validates the url parameter, forwards the request
// with an identifying User-Agent, and returns the raw body. Truncation for
// previews is a presentation concern left to callers.
//
// Timeouts cancel the in-flight request and release the connection.
// Successful responses carry a Cache-Control header for downstream
// infrastructure; that is advisory only and never substitutes for the
// durable cache store.
//
// # HTTP Endpoints
//
//   - GET /proxy/content?url=... : relay the remote text body.
package proxy
