package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/galsan/jungang-heights-api/internal/api/dto"
	"github.com/galsan/jungang-heights-api/internal/observability"
	"github.com/galsan/jungang-heights-api/internal/service"
	apperrors "github.com/galsan/jungang-heights-api/pkg/util"
)

// PublicHandler serves the unauthenticated lead-capture endpoint.
type PublicHandler struct {
	service *service.RegistrationService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(registrationService *service.RegistrationService) *PublicHandler {
	return &PublicHandler{service: registrationService}
}

// Register POST /register.
func (h *PublicHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("필수 항목을 입력해 주세요.", nil)
	}

	reg, err := h.service.Submit(c.UserContext(), service.SubmitInput{
		Name:         req.Name,
		Phone:        req.Phone,
		InterestType: req.InterestType,
		Message:      req.Message,
	})
	if err != nil {
		return err
	}

	observability.RecordLeadSubmission()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      reg.ID,
	})
}
