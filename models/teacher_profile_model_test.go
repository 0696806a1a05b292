package models

import "testing"

func TestCanSubmitVerification(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{VerificationUnsubmitted, true},
		{VerificationRejected, true},
		{VerificationPending, false},
		{VerificationVerified, false},
		{"", false},
		{"bogus", false},
	}
	for _, tc := range cases {
		if got := CanSubmitVerification(tc.status); got != tc.want {
			t.Errorf("CanSubmitVerification(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestCanReviewVerification(t *testing.T) {
	if !CanReviewVerification(VerificationPending) {
		t.Error("pending submissions must be reviewable")
	}
	for _, status := range []string{VerificationUnsubmitted, VerificationVerified, VerificationRejected, ""} {
		if CanReviewVerification(status) {
			t.Errorf("status %q must not be reviewable", status)
		}
	}
}
