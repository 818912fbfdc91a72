// Package httpx holds the response envelope and request-scoped helpers shared
// by handlers and middleware.
package httpx

import "github.com/gofiber/fiber/v2"

const (
	statusSuccess = "success"
	statusFail    = "fail"
)

// Envelope is the uniform body returned by every API endpoint.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// Success writes data inside a success envelope.
func Success(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(Envelope{Status: statusSuccess, Data: data})
}

// Fail writes a failure envelope carrying a user-facing message.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Status: statusFail, Data: fiber.Map{"error": message}})
}
