package handlers

import (
	"testing"
	"time"
)

func TestParseClassStartNormalizesToUTC(t *testing.T) {
	got, err := parseClassStart("2026-03-14T18:30:00+05:30")
	if err != nil {
		t.Fatalf("parseClassStart returned error: %v", err)
	}

	want := time.Date(2026, 3, 14, 13, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed time = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("parsed time location = %v, want UTC", got.Location())
	}
}

func TestParseClassStartAcceptsZulu(t *testing.T) {
	got, err := parseClassStart("2026-03-14T13:00:00Z")
	if err != nil {
		t.Fatalf("parseClassStart returned error: %v", err)
	}
	if got.Hour() != 13 {
		t.Errorf("hour = %d, want 13", got.Hour())
	}
}

func TestParseClassStartRejectsInvalidInput(t *testing.T) {
	cases := []string{
		"",
		"tomorrow at noon",
		"2026-03-14",
		"2026-03-14 13:00:00",
		"18:30",
	}
	for _, input := range cases {
		if _, err := parseClassStart(input); err == nil {
			t.Errorf("parseClassStart(%q) should have failed", input)
		}
	}
}
