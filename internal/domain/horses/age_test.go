package horses

import (
	"testing"
	"time"
)

func TestAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	date := func(y, m, d int) *time.Time {
		t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	cases := []struct {
		name  string
		birth *time.Time
		want  string
	}{
		{"nil birthdate", nil, "unknown"},
		{"future birthdate", date(2025, 1, 1), "unknown"},
		{"newborn", date(2024, 6, 1), "1 month"},
		{"five months", date(2024, 1, 10), "5 months"},
		{"exactly one year", date(2023, 6, 15), "1 year"},
		{"one year two months", date(2023, 4, 10), "1 year and 2 months"},
		{"three years", date(2021, 6, 15), "3 years"},
		{"years and one month", date(2022, 5, 10), "2 years and 1 month"},
		{"day not reached yet", date(2023, 6, 20), "11 months"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Age(tc.birth, now); got != tc.want {
				t.Fatalf("Age() = %q, want %q", got, tc.want)
			}
		})
	}
}
