package ui

import "testing"

func TestBadgeText(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, ""},
		{-3, ""},
		{1, "1"},
		{42, "42"},
		{99, "99"},
		{100, "99+"},
		{1500, "99+"},
	}
	for _, tc := range cases {
		if got := BadgeText(tc.count); got != tc.want {
			t.Errorf("BadgeText(%d) = %q, want %q", tc.count, got, tc.want)
		}
	}
}

func TestCountLabel(t *testing.T) {
	if got := CountLabel("Notifications", 0); got != "Notifications" {
		t.Errorf("zero count: %q", got)
	}
	if got := CountLabel("Messages", 7); got != "Messages (7)" {
		t.Errorf("got %q", got)
	}
	if got := CountLabel("Messages", 250); got != "Messages (99+)" {
		t.Errorf("got %q", got)
	}
}
