package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// HealthChecker is a dependency that can report its own health.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	names  []string
	checks []HealthChecker
}

func NewHealthHandler(checks map[string]HealthChecker) *HealthHandler {
	h := &HealthHandler{}
	for name, check := range checks {
		h.names = append(h.names, name)
		h.checks = append(h.checks, check)
	}
	return h
}

// Health godoc
// @Summary Проверка состояния сервиса
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	// Plain Group: one failing check must not cancel the others.
	errs := make([]error, len(h.checks))
	var g errgroup.Group
	for i, check := range h.checks {
		i, check := i, check
		g.Go(func() error {
			errs[i] = check.Health(ctx)
			return nil
		})
	}
	_ = g.Wait()

	status, state := fiber.StatusOK, "healthy"
	results := make(map[string]string, len(h.checks))
	for i, name := range h.names {
		if errs[i] != nil {
			results[name] = errs[i].Error()
			status, state = fiber.StatusServiceUnavailable, "unhealthy"
			continue
		}
		results[name] = "ok"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"checks": results,
		"time":   time.Now(),
	})
}
