package duedate

import (
	"testing"
	"time"
)

func TestNormalizeAnchorsNoonUTC(t *testing.T) {
	cases := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "midnight utc",
			input: time.Date(2023, 10, 27, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "late evening positive offset keeps its calendar day",
			input: time.Date(2023, 10, 27, 23, 30, 0, 0, time.FixedZone("CEST", 2*60*60)),
			want:  time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "early morning negative offset keeps its calendar day",
			input: time.Date(2023, 10, 27, 0, 15, 0, 0, time.FixedZone("PDT", -7*60*60)),
			want:  time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "already noon utc is a fixed point",
			input: time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
			want:  time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.input)
			if !got.Equal(tc.want) {
				t.Fatalf("Normalize(%v) = %v, want %v", tc.input, got, tc.want)
			}
			if got.Location() != time.UTC {
				t.Fatalf("Normalize(%v) location = %v, want UTC", tc.input, got.Location())
			}
		})
	}
}

func TestNormalizeFieldInvariants(t *testing.T) {
	input := time.Date(2023, 10, 27, 18, 45, 33, 12, time.FixedZone("IST", 5*60*60+30*60))
	got := Normalize(input)

	if h, m, s := got.Clock(); h != 12 || m != 0 || s != 0 {
		t.Fatalf("normalized clock = %02d:%02d:%02d, want 12:00:00", h, m, s)
	}
	y, mo, d := got.Date()
	if y != 2023 || mo != time.October || d != 27 {
		t.Fatalf("normalized date = %04d-%02d-%02d, want 2023-10-27", y, mo, d)
	}
}

func TestParseInput(t *testing.T) {
	noon := time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "bare date", input: "2023-10-27", want: noon},
		{name: "utc date-time", input: "2023-10-27T08:30:00Z", want: noon},
		{name: "offset date-time", input: "2023-10-27T23:59:59+02:00", want: noon},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "partial date", input: "2023-10", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseInput(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseInput(%q) = %v, want error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInput(%q): %v", tc.input, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("ParseInput(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
