package context

import (
	"scribe/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyIdentity is the key for storing the authenticated requester in echo.Context.
const KeyIdentity ContextKey = "identity"

// SetIdentity records the requester decoded from a verified token.
func SetIdentity(c echo.Context, identity *entity.Identity) {
	c.Set(string(KeyIdentity), identity)
}

// GetIdentity returns the authenticated requester, or nil for anonymous requests.
func GetIdentity(c echo.Context) *entity.Identity {
	if identity, ok := c.Get(string(KeyIdentity)).(*entity.Identity); ok {
		return identity
	}

	return nil
}
