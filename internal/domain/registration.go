package domain

import (
	"regexp"
	"strings"
	"time"
)

// Status enumerates the lead handling states.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusCompleted Status = "completed"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusCompleted:
		return true
	}
	return false
}

// statusLabels maps statuses to the labels shown in exported spreadsheets.
var statusLabels = map[Status]string{
	StatusNew:       "신규",
	StatusContacted: "상담완료",
	StatusCompleted: "계약완료",
}

// Label returns the Korean display label, or the raw value for an
// unrecognized status.
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Registration is a single lead captured from the public form.
type Registration struct {
	ID           int64
	Name         string
	Phone        string
	InterestType string
	Message      string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stats aggregates lead counts for the admin dashboard.
type Stats struct {
	Total      int64
	New        int64
	Contacted  int64
	Completed  int64
	TodayCount int64
	WeekCount  int64
}

// Korean mobile numbers: 010/011/016/017/018/019 followed by 7-8 digits.
var mobilePattern = regexp.MustCompile(`^01[016789]\d{7,8}$`)

// ValidMobilePhone reports whether the phone number matches the Korean
// mobile format. Hyphens are stripped before matching.
func ValidMobilePhone(phone string) bool {
	return mobilePattern.MatchString(strings.ReplaceAll(phone, "-", ""))
}
