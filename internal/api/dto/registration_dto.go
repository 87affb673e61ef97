package dto

import (
	"time"

	"github.com/galsan/jungang-heights-api/internal/domain"
)

// RegisterRequest is the public form payload.
type RegisterRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	InterestType string `json:"interest_type"`
	Message      string `json:"message"`
}

// LoginRequest carries the shared admin password.
type LoginRequest struct {
	Password string `json:"password"`
}

// UpdateStatusRequest changes a lead's handling state.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// RegistrationResponse is a lead as rendered to the admin dashboard.
type RegistrationResponse struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	InterestType string        `json:"interest_type"`
	Message      string        `json:"message"`
	Status       domain.Status `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// RegistrationListResponse is one page plus paging metadata.
type RegistrationListResponse struct {
	Data       []RegistrationResponse `json:"data"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

// StatsResponse mirrors the dashboard stat cards.
type StatsResponse struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	Contacted  int64 `json:"contacted"`
	Completed  int64 `json:"completed"`
	TodayCount int64 `json:"todayCount"`
	WeekCount  int64 `json:"weekCount"`
}
