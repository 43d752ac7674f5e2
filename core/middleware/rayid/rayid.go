// Package rayid assigns a unique ray id to every request for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's ray id.
const HeaderName = "X-Ray-ID"

// New returns middleware that stores a fresh ray id in the request locals
// and echoes it on the response. Handlers retrieve it through
// logger.WithRayID.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals("ray_id", id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
