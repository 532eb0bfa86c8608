package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/delivery/http/middleware"
	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/pkg/utils"
	"github.com/spot-discovery/internal/usecase/dto"
)

// ReviewHandler - обработчик отзывов и агрегатов рейтинга
type ReviewHandler struct {
	reviewUC ReviewService
	logger   *zap.Logger
}

// NewReviewHandler - создание нового ReviewHandler
func NewReviewHandler(reviewUC ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

// SubmitReview godoc
// @Summary Отзыв о споте
// @Description Сохраняет отзыв и пересчитывает рейтинги спота. Если пересчёт не удался, отзыв всё равно сохранён и возвращается 202 с ошибкой AGGREGATE_STALE.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID спота"
// @Param request body dto.SubmitReviewRequest true "Отзыв"
// @Success 201 {object} utils.SuccessResponse{data=domain.SpotReview}
// @Success 202 {object} utils.SuccessResponse{data=domain.SpotReview}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id}/reviews [post]
func (h *ReviewHandler) SubmitReview(c *fiber.Ctx) error {
	spotID, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	review, err := h.reviewUC.SubmitReview(c.UserContext(), spotID, *middleware.UserID(c), req)
	if err != nil {
		if appErr, ok := errors.As(err); ok && appErr.Code == errors.CodeAggregateStale && review != nil {
			return utils.SendPartial(c, review, appErr)
		}
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, review)
}

// ListReviews godoc
// @Summary Отзывы спота
// @Tags Reviews
// @Produce json
// @Param id path string true "ID спота"
// @Param transport_mode query string false "Вид транспорта"
// @Param limit query int false "Размер страницы (1-100)" default(20)
// @Param offset query int false "Смещение" default(0)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.SpotReview}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	spotID, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ListReviewsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrValidation.WithMessage("Invalid query parameters").Wrap(err))
	}

	resp, err := h.reviewUC.ListReviews(c.UserContext(), spotID, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp.Reviews, &utils.Meta{
		Total:  resp.Total,
		Limit:  resp.Limit,
		Offset: resp.Offset,
	})
}

// GetReviewStats godoc
// @Summary Средние оценки спота
// @Tags Reviews
// @Produce json
// @Param id path string true "ID спота"
// @Param transport_mode query string false "Вид транспорта"
// @Success 200 {object} utils.SuccessResponse{data=dto.ReviewStatsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id}/stats [get]
func (h *ReviewHandler) GetReviewStats(c *fiber.Ctx) error {
	spotID, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	stats, err := h.reviewUC.GetReviewStats(c.UserContext(), spotID, transportModeQuery(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}

// RecomputeRatings godoc
// @Summary Полный пересчёт рейтингов спота
// @Description Восстанавливает агрегаты после ответа AGGREGATE_STALE.
// @Tags Reviews
// @Produce json
// @Param id path string true "ID спота"
// @Success 200 {object} utils.SuccessResponse{data=domain.SpotRatingsUpdate}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/spots/{id}/ratings/recompute [post]
func (h *ReviewHandler) RecomputeRatings(c *fiber.Ctx) error {
	spotID, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	update, err := h.reviewUC.RecomputeSpot(c.UserContext(), spotID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, update, nil)
}

// VoteHelpful godoc
// @Summary Отметить отзыв полезным
// @Tags Reviews
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param id path string true "ID отзыва"
// @Success 200 {object} utils.SuccessResponse{data=domain.HelpfulVoteResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/reviews/{id}/helpful [post]
func (h *ReviewHandler) VoteHelpful(c *fiber.Ctx) error {
	reviewID, err := uuidParam(c, "id")
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.reviewUC.VoteHelpful(c.UserContext(), reviewID, *middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
