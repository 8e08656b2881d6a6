package maintagent

import "testing"

func TestParseSize(t *testing.T) {
	gig := 1.2
	cases := []struct {
		in   string
		want int64
	}{
		{"1.2G", int64(gig * float64(1<<30))},
		{"500M", 500 << 20},
		{"16K", 16 << 10},
		{"123", 123},
		{"", 0},
		{"junk", 0},
	}
	for _, tc := range cases {
		if got := parseSize(tc.in); got != tc.want {
			t.Fatalf("parseSize(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
