package domain

import "testing"

func TestValidMobilePhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"010-1234-5678", true},
		{"01012345678", true},
		{"0101234567", true},
		{"011-123-4567", true},
		{"016-1234-5678", true},
		{"019-9876-5432", true},
		{"02-123-4567", false},
		{"010-123-456", false},
		{"010-1234-56789", false},
		{"012-1234-5678", false},
		{"013-1234-5678", false},
		{"hello", false},
		{"", false},
		{"+82-10-1234-5678", false},
	}

	for _, tc := range cases {
		if got := ValidMobilePhone(tc.phone); got != tc.want {
			t.Errorf("ValidMobilePhone(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusContacted, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("Status(%q).Valid() = false, want true", s)
		}
	}
	for _, s := range []Status{"", "pending", "NEW", "done"} {
		if s.Valid() {
			t.Errorf("Status(%q).Valid() = true, want false", s)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusNew, "신규"},
		{StatusContacted, "상담완료"},
		{StatusCompleted, "계약완료"},
		{Status("legacy"), "legacy"},
	}
	for _, tc := range cases {
		if got := tc.status.Label(); got != tc.want {
			t.Errorf("Status(%q).Label() = %q, want %q", tc.status, got, tc.want)
		}
	}
}
