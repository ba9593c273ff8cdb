package plans

import "testing"

func TestFormatStorage(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{-1, "Unlimited"},
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5368709120, "5 GB"},
		{26843545600, "25 GB"},
		{1 << 40, "1 TB"},
		{1 << 50, "1024 TB"},
		{1234567, "1.18 MB"},
	}
	for _, tc := range cases {
		if got := FormatStorage(tc.in); got != tc.want {
			t.Fatalf("FormatStorage(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatEmployeeLimit(t *testing.T) {
	if got := FormatEmployeeLimit(-1); got != "Unlimited" {
		t.Fatalf("got %q", got)
	}
	if got := FormatEmployeeLimit(50); got != "50" {
		t.Fatalf("got %q", got)
	}
}
