package trip

import (
	"testing"
	"time"
)

func TestGenerateCode(t *testing.T) {
	fallback := time.Date(2020, 2, 3, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		date string
		want string
	}{
		{date: "2024-09-07", want: "VC_2024_09_07_abcde"},
		{date: " 2024-12-31 ", want: "VC_2024_12_31_abcde"},
		{date: "", want: "VC_2020_02_03_abcde"},
		{date: "not-a-date", want: "VC_2020_02_03_abcde"},
	}
	for _, tt := range tests {
		if got := GenerateCode(tt.date, fallback, "abcde"); got != tt.want {
			t.Fatalf("GenerateCode(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestRandomSuffix(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := randomSuffix()
		if len(s) != codeSuffixLen {
			t.Fatalf("suffix %q has length %d", s, len(s))
		}
		for _, r := range s {
			if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z') {
				t.Fatalf("suffix %q is not lowercase base36", s)
			}
		}
		seen[s] = true
	}
	if len(seen) < 45 {
		t.Fatalf("suffixes collide too often: %d unique of 50", len(seen))
	}
}
