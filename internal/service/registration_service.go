package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/galsan/jungang-heights-api/internal/domain"
	"github.com/galsan/jungang-heights-api/internal/events"
	"github.com/galsan/jungang-heights-api/internal/repository"
	apperrors "github.com/galsan/jungang-heights-api/pkg/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

const (
	msgRequiredFields = "필수 항목을 입력해 주세요."
	msgInvalidPhone   = "올바른 연락처를 입력해 주세요."
	msgInvalidStatus  = "올바르지 않은 상태값입니다."
)

// RegistrationService coordinates lead capture and admin workflows.
type RegistrationService struct {
	repo       repository.RegistrationRepository
	dispatcher events.Dispatcher
	validate   *validator.Validate
}

// NewRegistrationService constructs the service.
func NewRegistrationService(repo repository.RegistrationRepository, dispatcher events.Dispatcher) *RegistrationService {
	v := validator.New()
	// krmobile: Korean mobile number, hyphens allowed.
	_ = v.RegisterValidation("krmobile", func(fl validator.FieldLevel) bool {
		return domain.ValidMobilePhone(fl.Field().String())
	})
	return &RegistrationService{
		repo:       repo,
		dispatcher: dispatcher,
		validate:   v,
	}
}

// SubmitInput is the public form payload.
type SubmitInput struct {
	Name         string `validate:"required"`
	Phone        string `validate:"required,krmobile"`
	InterestType string `validate:"required"`
	Message      string
}

// Submit validates the payload and persists a new lead with status "new".
// Nothing is stored when validation fails.
func (s *RegistrationService) Submit(ctx context.Context, input SubmitInput) (*domain.Registration, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.InterestType = strings.TrimSpace(input.InterestType)

	if err := s.validate.Struct(input); err != nil {
		return nil, submissionError(err)
	}

	reg := &domain.Registration{
		Name:         input.Name,
		Phone:        input.Phone,
		InterestType: input.InterestType,
		Message:      input.Message,
		Status:       domain.StatusNew,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventRegistrationCreated,
		RegistrationID: reg.ID,
		Payload: events.RegistrationCreatedPayload{
			Name:         reg.Name,
			Phone:        reg.Phone,
			InterestType: reg.InterestType,
		},
	})
	return reg, nil
}

func submissionError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return apperrors.NewValidationError(msgRequiredFields, nil)
			}
		}
		return apperrors.NewValidationError(msgInvalidPhone, nil)
	}
	return apperrors.NewValidationError(msgRequiredFields, nil)
}

// ListInput carries the raw admin list request.
type ListInput struct {
	Page         int
	Limit        int
	Search       string
	Status       string
	InterestType string
	DateFrom     string
	DateTo       string
	SortBy       string
	SortOrder    string
}

// ListResult is one page of leads plus paging metadata.
type ListResult struct {
	Data       []domain.Registration
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// List runs the filtered, sorted, paginated query. Invalid page and limit
// values fall back instead of erroring; limit is clamped to [1,100].
func (s *RegistrationService) List(ctx context.Context, input ListInput) (*ListResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := repository.ListFilter{
		Search:       input.Search,
		Status:       input.Status,
		InterestType: input.InterestType,
		SortBy:       input.SortBy,
		SortOrder:    input.SortOrder,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}
	if from, ok := parseDate(input.DateFrom); ok {
		filter.CreatedFrom = &from
	}
	if to, ok := parseDate(input.DateTo); ok {
		// inclusive end of day, so same-day ranges match
		to = to.Add(24*time.Hour - time.Second)
		filter.CreatedTo = &to
	}

	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if rows == nil {
		rows = []domain.Registration{}
	}

	return &ListResult{
		Data:       rows,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Get fetches a single lead.
func (s *RegistrationService) Get(ctx context.Context, id int64) (*domain.Registration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, registrationError(err)
	}
	return reg, nil
}

// UpdateStatus transitions a lead to the given status. The status value is
// whitelisted before any store call; re-setting the current status succeeds
// and only refreshes updated_at.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id int64, status string) error {
	newStatus := domain.Status(status)
	if !newStatus.Valid() {
		return apperrors.NewValidationError(msgInvalidStatus, nil)
	}
	if err := s.repo.UpdateStatus(ctx, id, newStatus, time.Now()); err != nil {
		return registrationError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:           events.EventRegistrationStatusChanged,
		RegistrationID: id,
		Payload: events.RegistrationStatusChangedPayload{
			NewStatus: newStatus,
		},
	})
	return nil
}

// Delete removes a lead. Deleting an absent id reports success; the
// operation is an idempotent no-op in that case.
func (s *RegistrationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:           events.EventRegistrationDeleted,
		RegistrationID: id,
	})
	return nil
}

// Stats recomputes dashboard counts against the current store state. The
// today window starts at local midnight; the week window trails 7 days.
func (s *RegistrationService) Stats(ctx context.Context) (*domain.Stats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	stats, err := s.repo.Stats(ctx, startOfDay, weekAgo)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return stats, nil
}

func registrationError(err error) error {
	domainErr := apperrors.ToDomainError(err)
	if domainErr.Code == "NOT_FOUND" {
		return apperrors.NewNotFound("registration")
	}
	return domainErr
}

// parseDate accepts YYYY-MM-DD in server local time. Anything else is
// treated as no filter, mirroring the silent sort fallback.
func parseDate(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", val, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (s *RegistrationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
