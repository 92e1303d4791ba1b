package text

import (
	"strings"
	"testing"
)

func TestSanitizeKeepsMarkupLiteral(t *testing.T) {
	in := "<script>alert(1)</script>"
	if got := Sanitize(in); got != in {
		t.Fatalf("expected markup to pass through literally, got %q", got)
	}
}

func TestSanitizeStripsEscapeSequences(t *testing.T) {
	in := "bad\x1b[31mtitle\x1b[0m"
	got := Sanitize(in)
	if strings.ContainsRune(got, 0x1b) {
		t.Fatalf("escape byte survived: %q", got)
	}
	if got != "bad[31mtitle[0m" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestSanitizeCollapsesWhitespaceControls(t *testing.T) {
	if got := Sanitize("a\nb\tc\rd"); got != "a b c d" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestSanitizeDropsC1Controls(t *testing.T) {
	in := "a" + string(rune(0x9b)) + "b" // CSI in C1 form
	if got := Sanitize(in); got != "ab" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"elevenchars", 10, "elevenchar…"},
		{"héllö wörld", 5, "héllö…"},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
