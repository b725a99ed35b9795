// Package rayid assigns a unique request id (RayID) to every incoming
// request so that log lines across the proxy, image, and cache features can
// be correlated. The id is stored in the Fiber context locals under "ray_id"
// and echoed back in the X-Ray-ID response header.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's RayID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the Fiber locals key under which the RayID is stored.
const LocalsKey = "ray_id"

// New returns a middleware that tags every request with a RayID.
// An incoming X-Ray-ID header is honored so that upstream proxies can
// propagate their own trace ids.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
