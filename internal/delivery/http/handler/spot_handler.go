package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/delivery/http/middleware"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/pkg/utils"
	"github.com/spot-discovery/internal/usecase/dto"
)

// SpotHandler - обработчик для поиска и управления спотами
type SpotHandler struct {
	spotUC SpotService
	logger *zap.Logger
}

// NewSpotHandler - создание нового SpotHandler
func NewSpotHandler(spotUC SpotService, logger *zap.Logger) *SpotHandler {
	return &SpotHandler{
		spotUC: spotUC,
		logger: logger,
	}
}

// FindSpots godoc
// @Summary Поиск спотов
// @Description Фильтрация по видам транспорта, радиусу, типу, рейтингу и безопасности. Для известного пользователя незаданные поля берутся из его профиля.
// @Tags Spots
// @Produce json
// @Param X-User-ID header string false "ID пользователя"
// @Param transport_modes query string false "Виды транспорта через запятую (hitchhiking,cycling,van_life,walking)"
// @Param lat query number false "Широта"
// @Param lon query number false "Долгота"
// @Param radius_km query number false "Радиус в км (0, 100]" default(10)
// @Param spot_type query string false "Тип спота"
// @Param min_rating query number false "Минимальный общий рейтинг"
// @Param safety_priority query string false "high, medium или low"
// @Param limit query int false "Размер страницы (1-100)" default(50)
// @Param offset query int false "Смещение" default(0)
// @Param use_preferences query bool false "Применять предпочтения профиля" default(true)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Spot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/spots [get]
func (h *SpotHandler) FindSpots(c *fiber.Ctx) error {
	var req dto.FindSpotsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation.WithMessage("Invalid query parameters").Wrap(err))
	}
	req.TransportModes = splitCSV(req.TransportModes)

	page, err := h.spotUC.FindSpots(c.UserContext(), req.ToFilter(middleware.UserID(c)))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, page.Spots, &utils.Meta{
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

// GetSpot godoc
// @Summary Получение спота по ID
// @Tags Spots
// @Produce json
// @Param id path string true "ID спота"
// @Success 200 {object} utils.SuccessResponse{data=domain.Spot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id} [get]
func (h *SpotHandler) GetSpot(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	spot, err := h.spotUC.GetSpot(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, spot, nil)
}

// CreateSpot godoc
// @Summary Создание спота
// @Tags Spots
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param request body dto.CreateSpotRequest true "Новый спот"
// @Success 201 {object} utils.SuccessResponse{data=domain.Spot}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/spots [post]
func (h *SpotHandler) CreateSpot(c *fiber.Ctx) error {
	var req dto.CreateSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	spot, err := h.spotUC.CreateSpot(c.UserContext(), *middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, spot)
}

// UpdateSpot godoc
// @Summary Частичное обновление спота
// @Tags Spots
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID спота"
// @Param request body dto.UpdateSpotRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.Spot}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id} [patch]
func (h *SpotHandler) UpdateSpot(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateSpotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	spot, err := h.spotUC.UpdateSpot(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, spot, nil)
}

// VerifySpot godoc
// @Summary Подтверждение спота
// @Tags Spots
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID спота"
// @Success 200 {object} utils.SuccessResponse{data=domain.Spot}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id}/verify [post]
func (h *SpotHandler) VerifySpot(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	spot, err := h.spotUC.VerifySpot(c.UserContext(), id, *middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, spot, nil)
}

func transportModeQuery(c *fiber.Ctx) *domain.TransportMode {
	raw := c.Query("transport_mode")
	if raw == "" {
		return nil
	}
	m := domain.TransportMode(raw)
	return &m
}
