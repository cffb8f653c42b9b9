package pathlog

import (
	"strings"
	"testing"
	"time"
)

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Separator
		wantErr bool
	}{
		{"auto", "auto", SeparatorAuto, false},
		{"comma", "comma", SeparatorComma, false},
		{"tab", "tab", SeparatorTab, false},
		{"unknown", "pipe", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeparator(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSeparator(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSeparator(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitGMTOffset(t *testing.T) {
	tests := []struct {
		name       string
		time       string
		wantClean  string
		wantOffset int
	}{
		{"positive offset", "10:00 GMT+12", "10:00", 12},
		{"negative offset", "23:59:59 GMT-3", "23:59:59", -3},
		{"two digit offset", "08:15 GMT+10", "08:15", 10},
		{"no offset", "10:00", "10:00", 0},
		{"offset only", "GMT+5", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clean, offset := splitGMTOffset(tt.time)
			if clean != tt.wantClean || offset != tt.wantOffset {
				t.Errorf("splitGMTOffset(%q) = (%q, %d), want (%q, %d)",
					tt.time, clean, offset, tt.wantClean, tt.wantOffset)
			}
		})
	}
}

func TestParseTimestampDayFirst(t *testing.T) {
	ts, ok := parseTimestamp("01/02/2024", "10:30:00")
	if !ok {
		t.Fatal("expected timestamp to parse")
	}
	// Day-first: 01/02/2024 is the 1st of February.
	if ts.Day() != 1 || ts.Month() != time.February || ts.Year() != 2024 {
		t.Errorf("got %v, want 1 February 2024", ts)
	}
}

func TestNormalizeHop(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"plain", "node1", "NODE1", true},
		{"padded", "  node1  ", "NODE1", true},
		{"already upper", "GATE3", "GATE3", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"nan placeholder", "nan", "", false},
		{"NaN mixed case", "NaN", "", false},
		{"none placeholder", "None", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeHop(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("normalizeHop(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseRow(t *testing.T) {
	const row = "5,01/01/24,10:00 GMT+12,A,B,C,,,,"

	res, err := Parse(strings.NewReader(row), Options{Separator: SeparatorComma})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}

	rec := res.Records[0]
	if rec.Count != "5" {
		t.Errorf("Count = %q, want %q", rec.Count, "5")
	}
	if rec.GMTOffsetHours != 12 {
		t.Errorf("GMTOffsetHours = %d, want 12", rec.GMTOffsetHours)
	}
	if rec.Timestamp == nil {
		t.Fatal("Timestamp should parse")
	}
	if rec.Timestamp.Hour() != 10 || rec.Timestamp.Day() != 1 {
		t.Errorf("Timestamp = %v, want 1 Jan 10:00", rec.Timestamp)
	}
	wantHops := []string{"A", "B", "C"}
	if len(rec.Hops) != len(wantHops) {
		t.Fatalf("Hops = %v, want %v", rec.Hops, wantHops)
	}
	for i, h := range wantHops {
		if rec.Hops[i] != h {
			t.Errorf("Hops[%d] = %q, want %q", i, rec.Hops[i], h)
		}
	}
}

func TestParseSeparatorModes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sep      Separator
		wantHops []string
	}{
		{
			"comma with explicit empties",
			"1,01/01/24,10:00,a,b,,,,,",
			SeparatorComma,
			[]string{"A", "B"},
		},
		{
			"tab runs collapse",
			"1\t01/01/24\t10:00\ta\t\tb",
			SeparatorTab,
			[]string{"A", "B"},
		},
		{
			"auto mixed tabs and commas",
			"1,01/01/24\t10:00,a\tb,,c",
			SeparatorAuto,
			[]string{"A", "B", "C"},
		},
		{
			"auto collapses trailing separators",
			"1,01/01/24,10:00,a,b,c,,,,",
			SeparatorAuto,
			[]string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(strings.NewReader(tt.input), Options{Separator: tt.sep})
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(res.Records) != 1 {
				t.Fatalf("got %d records, want 1", len(res.Records))
			}
			got := res.Records[0].Hops
			if len(got) != len(tt.wantHops) {
				t.Fatalf("Hops = %v, want %v", got, tt.wantHops)
			}
			for i := range got {
				if got[i] != tt.wantHops[i] {
					t.Errorf("Hops[%d] = %q, want %q", i, got[i], tt.wantHops[i])
				}
			}
		})
	}
}

func TestParseBadTimestampKeepsRow(t *testing.T) {
	res, err := Parse(strings.NewReader("1,not-a-date,whenever,a,b"), Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1: a bad timestamp must not drop the row", len(res.Records))
	}
	rec := res.Records[0]
	if rec.Timestamp != nil {
		t.Errorf("Timestamp = %v, want nil", rec.Timestamp)
	}
	if len(rec.Hops) != 2 {
		t.Errorf("Hops = %v, want [A B]", rec.Hops)
	}
}

func TestParseRaggedRows(t *testing.T) {
	input := strings.Join([]string{
		"1,01/01/24,10:00,a,b",       // fine
		"junk,row",                   // too few fields
		"1,2,3,4,5,6,7,8,9,10,11,12", // too many fields
		"",                           // blank lines are ignored entirely
		"2,01/01/24,11:00,b,c",       // fine
	}, "\n")

	var warnings []string
	res, err := Parse(strings.NewReader(input), Options{
		Separator: SeparatorComma,
		Warn: func(format string, args ...any) {
			warnings = append(warnings, format)
		},
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Records) != 2 {
		t.Errorf("got %d records, want 2", len(res.Records))
	}
	if res.RowsSkipped != 2 {
		t.Errorf("RowsSkipped = %d, want 2", res.RowsSkipped)
	}
	if len(warnings) != 2 {
		t.Errorf("got %d warnings, want 2", len(warnings))
	}
}

func TestParseSampleCap(t *testing.T) {
	input := strings.Join([]string{
		"1,01/01/24,10:00,a,b",
		"2,01/01/24,10:01,b,c",
		"3,01/01/24,10:02,c,d",
	}, "\n")

	res, err := Parse(strings.NewReader(input), Options{Separator: SeparatorComma, Sample: 2})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.RowsRead != 2 || len(res.Records) != 2 {
		t.Errorf("RowsRead = %d, records = %d; want 2 and 2", res.RowsRead, len(res.Records))
	}
}
