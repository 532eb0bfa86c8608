package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/delivery/http/middleware"
	"github.com/spot-discovery/internal/pkg/utils"
	"github.com/spot-discovery/internal/usecase/dto"
)

// ProfileHandler - обработчик профилей, trust score и значков
type ProfileHandler struct {
	profileUC ProfileService
	trustUC   TrustService
	logger    *zap.Logger
}

// NewProfileHandler - создание нового ProfileHandler
func NewProfileHandler(profileUC ProfileService, trustUC TrustService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUC: profileUC,
		trustUC:   trustUC,
		logger:    logger,
	}
}

// GetMyProfile godoc
// @Summary Профиль текущего пользователя
// @Tags Profiles
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.ProfileResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetMyProfile(c *fiber.Ctx) error {
	resp, err := h.profileUC.GetProfile(c.UserContext(), *middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// GetProfile godoc
// @Summary Профиль пользователя
// @Tags Profiles
// @Produce json
// @Param user_id path string true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.ProfileResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{user_id}/profile [get]
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.profileUC.GetProfile(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// CreateProfile godoc
// @Summary Создание профиля путешественника
// @Tags Profiles
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param request body dto.CreateProfileRequest true "Профиль"
// @Success 201 {object} utils.SuccessResponse{data=domain.UserProfile}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/profile [post]
func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	profile, err := h.profileUC.CreateProfile(c.UserContext(), *middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, profile)
}

// UpdateProfile godoc
// @Summary Частичное обновление профиля
// @Description primary_mode после обновления должен входить в travel_modes, иначе 409.
// @Tags Profiles
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param request body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.UserProfile}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/profile [patch]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	profile, err := h.profileUC.UpdateProfile(c.UserContext(), *middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, profile, nil)
}

// CalculateTrustScore godoc
// @Summary Пересчёт trust score
// @Tags Trust
// @Produce json
// @Param user_id path string true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.TrustScoreResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{user_id}/trust-score [post]
func (h *ProfileHandler) CalculateTrustScore(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	score, err := h.trustUC.CalculateTrustScore(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.TrustScoreResponse{UserID: userID, TrustScore: score}, nil)
}

// EvaluateBadges godoc
// @Summary Проверка и выдача значков
// @Description Возвращает только новые значки; повторный вызов без изменений профиля ничего не выдаёт.
// @Tags Trust
// @Produce json
// @Param user_id path string true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.BadgeEvaluationResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{user_id}/badges/evaluate [post]
func (h *ProfileHandler) EvaluateBadges(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	awarded, err := h.trustUC.EvaluateBadges(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.BadgeEvaluationResponse{UserID: userID, Awarded: awarded}, nil)
}

// ListBadges godoc
// @Summary Значки пользователя
// @Tags Trust
// @Produce json
// @Param user_id path string true "ID пользователя"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Badge}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{user_id}/badges [get]
func (h *ProfileHandler) ListBadges(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	badges, err := h.trustUC.ListBadges(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, badges, &utils.Meta{Total: len(badges)})
}

// Vouch godoc
// @Summary Поручиться за пользователя
// @Description Каждый пользователь может поручиться за другого один раз.
// @Tags Trust
// @Produce json
// @Param X-User-ID header string true "ID пользователя"
// @Param user_id path string true "ID пользователя, за которого ручаются"
// @Success 201 {object} utils.SuccessResponse{data=domain.Vouch}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/users/{user_id}/vouch [post]
func (h *ProfileHandler) Vouch(c *fiber.Ctx) error {
	userID, err := uuidParam(c, "user_id")
	if err != nil {
		return utils.SendError(c, err)
	}

	vouch, err := h.profileUC.Vouch(c.UserContext(), userID, *middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, vouch)
}
