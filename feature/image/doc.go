// Package image normalizes cover artwork. It decodes JPEG, PNG, GIF, BMP and
// WebP input, scales images down to configured bounds without ever upscaling,
// and re-encodes the result as JPEG. The package also hosts the cover ingest
// service that fetches remote covers and stores the normalized result in
// object storage, and an HTTP endpoint that compresses uploads at the
// transfer bounds.
package image
