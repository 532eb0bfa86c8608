package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/pkg/utils"
)

// HeaderUserID carries the authenticated caller, set by the gateway in front
// of this service.
const HeaderUserID = "X-User-ID"

const localsUserID = "user_id"

// UserContext - middleware, которое кладёт идентификатор пользователя в Locals.
// Отсутствующий заголовок означает анонимный запрос.
func UserContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderUserID)
		if raw == "" {
			return c.Next()
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return utils.SendError(c, errors.ErrValidation.
				WithMessage("Invalid user id header").
				WithDetails(map[string]interface{}{HeaderUserID: raw}))
		}
		c.Locals(localsUserID, id)
		return c.Next()
	}
}

// RequireUser rejects anonymous requests.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == nil {
			return utils.SendError(c, errors.ErrMissingUser)
		}
		return c.Next()
	}
}

// UserID returns the caller set by UserContext, or nil for anonymous requests.
func UserID(c *fiber.Ctx) *uuid.UUID {
	id, ok := c.Locals(localsUserID).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
