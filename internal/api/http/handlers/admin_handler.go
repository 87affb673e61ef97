package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/galsan/jungang-heights-api/internal/api/dto"
	"github.com/galsan/jungang-heights-api/internal/auth"
	"github.com/galsan/jungang-heights-api/internal/config"
	"github.com/galsan/jungang-heights-api/internal/domain"
	"github.com/galsan/jungang-heights-api/internal/observability"
	"github.com/galsan/jungang-heights-api/internal/service"
	apperrors "github.com/galsan/jungang-heights-api/pkg/util"
)

// AdminHandler serves the dashboard API.
type AdminHandler struct {
	service  *service.RegistrationService
	export   *service.ExportService
	sessions auth.SessionManager
	admin    config.AdminConfig
	secure   bool
}

// NewAdminHandler constructs handler. secure controls the cookie Secure flag
// and should be true outside development.
func NewAdminHandler(registrationService *service.RegistrationService, exportService *service.ExportService, sessions auth.SessionManager, admin config.AdminConfig, secure bool) *AdminHandler {
	return &AdminHandler{
		service:  registrationService,
		export:   exportService,
		sessions: sessions,
		admin:    admin,
		secure:   secure,
	}
}

// Login POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("비밀번호를 입력해 주세요.", nil)
	}

	if !auth.VerifyAdminPassword(h.admin, req.Password) {
		observability.RecordAdminLogin(false)
		return apperrors.NewUnauthorized("비밀번호가 올바르지 않습니다.")
	}

	token, err := h.sessions.Issue(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	observability.RecordAdminLogin(true)
	return c.JSON(fiber.Map{"success": true})
}

// Logout POST /admin/logout. Revokes the server-side session when one exists
// and expires the cookie either way.
func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(auth.CookieName); token != "" {
		_ = h.sessions.Revoke(c.UserContext(), token)
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"success": true})
}

// Stats GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.StatsResponse{
		Total:      stats.Total,
		New:        stats.New,
		Contacted:  stats.Contacted,
		Completed:  stats.Completed,
		TodayCount: stats.TodayCount,
		WeekCount:  stats.WeekCount,
	})
}

// List GET /admin/registrations.
func (h *AdminHandler) List(c *fiber.Ctx) error {
	result, err := h.service.List(c.UserContext(), service.ListInput{
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", 20),
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		InterestType: c.Query("interest_type"),
		DateFrom:     c.Query("date_from"),
		DateTo:       c.Query("date_to"),
		SortBy:       c.Query("sort_by"),
		SortOrder:    c.Query("sort_order"),
	})
	if err != nil {
		return err
	}

	items := make([]dto.RegistrationResponse, 0, len(result.Data))
	for i := range result.Data {
		items = append(items, registrationResponse(&result.Data[i]))
	}
	return c.JSON(dto.RegistrationListResponse{
		Data:       items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get GET /admin/registrations/:id.
func (h *AdminHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	reg, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(registrationResponse(reg))
}

// UpdateStatus PATCH /admin/registrations/:id.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("올바르지 않은 상태값입니다.", nil)
	}
	if err := h.service.UpdateStatus(c.UserContext(), id, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Delete DELETE /admin/registrations/:id. Always succeeds, including for ids
// that are already gone.
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Export GET /admin/export.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	csv, err := h.export.ExportCSV(c.UserContext())
	if err != nil {
		return err
	}
	observability.RecordCSVExport()
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+service.FileName(time.Now()))
	return c.Send(csv)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}

func registrationResponse(reg *domain.Registration) dto.RegistrationResponse {
	return dto.RegistrationResponse{
		ID:           reg.ID,
		Name:         reg.Name,
		Phone:        reg.Phone,
		InterestType: reg.InterestType,
		Message:      reg.Message,
		Status:       reg.Status,
		CreatedAt:    reg.CreatedAt,
		UpdatedAt:    reg.UpdatedAt,
	}
}
