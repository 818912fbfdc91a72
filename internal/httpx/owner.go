package httpx

import "github.com/gofiber/fiber/v2"

const ownerIDLocal = "owner_id"

// SetOwnerID binds the authenticated owner to the request.
func SetOwnerID(c *fiber.Ctx, ownerID string) {
	c.Locals(ownerIDLocal, ownerID)
}

// OwnerID returns the authenticated owner, or "" for anonymous requests.
func OwnerID(c *fiber.Ctx) string {
	id, _ := c.Locals(ownerIDLocal).(string)
	return id
}

// RequireOwner returns the authenticated owner or a 401 fiber error.
func RequireOwner(c *fiber.Ctx) (string, error) {
	id := OwnerID(c)
	if id == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "authentication credentials were not provided")
	}
	return id, nil
}
