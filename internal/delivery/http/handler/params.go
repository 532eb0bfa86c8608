package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spot-discovery/internal/pkg/errors"
)

// uuidParam parses a path parameter as a UUID.
func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrValidation.
			WithMessage("Invalid " + name).
			WithDetails(map[string]interface{}{name: raw})
	}
	return id, nil
}

// splitCSV accepts both repeated query keys and comma-separated values.
func splitCSV(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func invalidBody(err error) error {
	return errors.ErrValidation.WithMessage("Invalid request body").Wrap(err)
}
