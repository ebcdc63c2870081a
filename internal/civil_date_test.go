package internal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    CivilDate
		wantErr bool
	}{
		{"2024-01-15", CivilDate{2024, time.January, 15}, false},
		{"2024-02-29", CivilDate{2024, time.February, 29}, false},
		{"2000-02-29", CivilDate{2000, time.February, 29}, false},
		{"1999-12-31", CivilDate{1999, time.December, 31}, false},
		{"2023-02-29", CivilDate{}, true}, // not a leap year
		{"1900-02-29", CivilDate{}, true}, // century, not a leap year
		{"2024-02-30", CivilDate{}, true},
		{"2024-04-31", CivilDate{}, true},
		{"2024-13-01", CivilDate{}, true},
		{"2024-00-10", CivilDate{}, true},
		{"2024-01-00", CivilDate{}, true},
		{"2024-1-5", CivilDate{}, true},
		{"24-01-05", CivilDate{}, true},
		{"2024/01/05", CivilDate{}, true},
		{"2024-01-05T00:00:00Z", CivilDate{}, true},
		{" 2024-01-05", CivilDate{}, true},
		{"", CivilDate{}, true},
		{"not a date", CivilDate{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDateFormat) {
					t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDateFormat", tt.input, err)
				}
				var dateErr *DateError
				if !errors.As(err, &dateErr) || dateErr.Input != tt.input {
					t.Errorf("expected *DateError carrying the input, got %#v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	for _, s := range []string{"2024-01-31", "2024-02-29", "1970-01-01", "2099-12-31", "0001-01-01"} {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", s, err)
		}
		if d.String() != s {
			t.Errorf("ParseDate(%q).String() = %q", s, d.String())
		}
	}
}

// Parsing must not depend on the host timezone: a date is the same day in
// every zone.
func TestParseDate_IndependentOfLocalZone(t *testing.T) {
	orig := time.Local
	t.Cleanup(func() { time.Local = orig })

	var results []CivilDate
	for _, zone := range []string{"UTC", "Asia/Kolkata", "America/Los_Angeles", "Pacific/Kiritimati"} {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			t.Fatal(err)
		}
		time.Local = loc
		results = append(results, MustDate("2024-03-10"))
	}
	for _, d := range results {
		if d != results[0] {
			t.Errorf("ParseDate differs across host zones: %v", results)
		}
	}
}

func TestCivilDate_AddMonths(t *testing.T) {
	tests := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-15", 1, "2024-02-15"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-01-31", 3, "2024-04-30"},
		{"2024-08-31", 6, "2025-02-28"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-02-29", 48, "2028-02-29"},
		{"2024-11-15", 3, "2025-02-15"},
		{"2024-12-31", 1, "2025-01-31"},
		{"2024-03-15", -1, "2024-02-15"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-01-15", 0, "2024-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got := MustDate(tt.start).AddMonths(tt.months)
			if got.String() != tt.want {
				t.Errorf("%s + %d months = %s, want %s", tt.start, tt.months, got, tt.want)
			}
		})
	}
}

func TestCivilDate_AddDaysAndDaysSince(t *testing.T) {
	tests := []struct {
		a, b string
		days int
	}{
		{"2024-01-15", "2024-01-15", 0},
		{"2024-02-15", "2024-01-15", 31},
		{"2024-03-01", "2024-02-28", 2},
		{"2023-03-01", "2023-02-28", 1},
		{"2025-01-01", "2024-01-01", 366},
		{"2024-01-14", "2024-01-15", -1},
		// DST transitions don't change the count
		{"2024-03-11", "2024-03-10", 1},
		{"2024-11-04", "2024-11-03", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"-"+tt.b, func(t *testing.T) {
			a, b := MustDate(tt.a), MustDate(tt.b)
			if got := a.DaysSince(b); got != tt.days {
				t.Errorf("%s.DaysSince(%s) = %d, want %d", tt.a, tt.b, got, tt.days)
			}
			if got := b.AddDays(tt.days); got != a {
				t.Errorf("%s.AddDays(%d) = %s, want %s", tt.b, tt.days, got, tt.a)
			}
		})
	}
}

func TestCivilDate_Compare(t *testing.T) {
	a, b := MustDate("2024-01-15"), MustDate("2024-01-16")
	if !a.Before(b) || a.After(b) || a.Equal(b) {
		t.Error("expected 2024-01-15 before 2024-01-16")
	}
	if !b.After(a) || b.Before(a) {
		t.Error("expected 2024-01-16 after 2024-01-15")
	}
	if !a.Equal(MustDate("2024-01-15")) {
		t.Error("expected equal dates")
	}
}

func TestCivilDate_Zero(t *testing.T) {
	var d CivilDate
	if !d.IsZero() || d.String() != "" {
		t.Errorf("zero date: IsZero=%v String=%q", d.IsZero(), d.String())
	}
	if MustDate("2024-01-01").IsZero() {
		t.Error("real date reported as zero")
	}
}

func TestDateOf(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatal(err)
	}
	// 2024-01-15 20:00 UTC is already the 16th in Kolkata (UTC+05:30)
	instant := time.Date(2024, time.January, 15, 20, 0, 0, 0, time.UTC)

	if got := DateOf(instant); got != MustDate("2024-01-15") {
		t.Errorf("DateOf(UTC) = %s, want 2024-01-15", got)
	}
	if got := DateOf(instant.In(kolkata)); got != MustDate("2024-01-16") {
		t.Errorf("DateOf(Kolkata) = %s, want 2024-01-16", got)
	}
}

func TestCivilDate_Encoding(t *testing.T) {
	type doc struct {
		Start CivilDate `json:"start" yaml:"start"`
	}

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(doc{Start: MustDate("2024-02-29")})
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"start":"2024-02-29"}` {
			t.Errorf("json = %s", data)
		}
		var got doc
		if err := json.Unmarshal([]byte(`{"start":"2024-02-30"}`), &got); !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("expected ErrInvalidDateFormat, got %v", err)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var got doc
		if err := yaml.Unmarshal([]byte("start: 2024-01-31\n"), &got); err != nil {
			t.Fatal(err)
		}
		if got.Start != MustDate("2024-01-31") {
			t.Errorf("yaml decoded %s", got.Start)
		}
		data, err := yaml.Marshal(got)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "start: \"2024-01-31\"\n" && string(data) != "start: 2024-01-31\n" {
			t.Errorf("yaml = %q", data)
		}
	})
}
