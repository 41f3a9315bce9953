package export

import (
	"testing"
	"time"
)

func TestParseTimestampFull(t *testing.T) {
	got, ok := ParseTimestamp("2023.06.28 20:14:43")
	if !ok {
		t.Fatal("expected full timestamp to parse")
	}
	want := time.Date(2023, 6, 28, 20, 14, 43, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseTimestampDateOnly(t *testing.T) {
	got, ok := ParseTimestamp("2023.06.28")
	if !ok {
		t.Fatal("expected bare date to parse")
	}
	if got.Hour() != 0 || got.Day() != 28 {
		t.Errorf("unexpected instant %v", got)
	}
}

func TestParseTimestampDateWithTrailingJunk(t *testing.T) {
	// Only the portion before the first whitespace counts for the fallback.
	got, ok := ParseTimestamp("2023.06.28 not-a-time")
	if !ok {
		t.Fatal("expected date head to parse")
	}
	if got.Year() != 2023 || got.Month() != time.June {
		t.Errorf("unexpected instant %v", got)
	}
}

func TestParseTimestampAbsence(t *testing.T) {
	cases := []string{"", "   ", "Deposit", "28.06.2023", "2023-06-28"}
	for _, c := range cases {
		if got, ok := ParseTimestamp(c); ok {
			t.Errorf("expected %q to yield no value, got %v", c, got)
		} else if !got.IsZero() {
			t.Errorf("expected zero time for %q, got %v", c, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024.03.01")
	if !ok {
		t.Fatal("expected date to parse")
	}
	if got.Day() != 1 || got.Month() != time.March {
		t.Errorf("unexpected date %v", got)
	}
	if _, ok := ParseDate("2024.03.01 10:00:00"); ok {
		t.Error("expected datetime to be rejected as a date argument")
	}
}
