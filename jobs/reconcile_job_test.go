package jobs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/anjiri1684/tutor_marketplace/services"
)

func TestUnfulfillable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"already enrolled", services.ErrAlreadyEnrolled, true},
		{"course full", services.ErrCourseFull, true},
		{"wrapped already enrolled", fmt.Errorf("enroll: %w", services.ErrAlreadyEnrolled), true},
		{"transient db error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unfulfillable(tt.err); got != tt.want {
				t.Errorf("unfulfillable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
