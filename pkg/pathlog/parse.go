package pathlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Options configures path log parsing.
type Options struct {
	// Separator selects the row splitting mode. Defaults to SeparatorAuto.
	Separator Separator

	// Sample truncates input to the first N raw rows before any parsing.
	// Zero means no limit.
	Sample int

	// Warn receives recoverable per-row diagnostics. Nil disables them.
	Warn func(format string, args ...any)
}

// Result holds the parsed records plus load diagnostics.
type Result struct {
	Records     []Record
	RowsRead    int // raw rows consumed (after the sample cap)
	RowsSkipped int // rows dropped as malformed
}

var (
	// gmtPattern extracts an offset like "GMT+12" or "GMT-3" from the time field.
	gmtPattern = regexp.MustCompile(`GMT([+-]\d{1,2})`)

	// gmtStrip removes the GMT token and surrounding whitespace.
	gmtStrip = regexp.MustCompile(`\s*GMT[+-]\d{1,2}\s*`)

	sepTab  = regexp.MustCompile(`\t+`)
	sepAuto = regexp.MustCompile(`[\t,]+`)
)

// timestampLayouts are tried in order when combining the date and cleaned
// time fields. Day comes first throughout, matching the log producers.
var timestampLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/06 15:04:05",
	"2/1/06 15:04",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
}

// Parse reads a path log from r and returns normalized records.
//
// Rows with fewer than four fields (count, date, time, node) or more than ten
// are reported through opts.Warn and skipped. Rows with four to nine fields
// are padded with empty hop fields: the auto and tab modes collapse delimiter
// runs, so trailing empty hops legitimately disappear from the raw row.
func Parse(r io.Reader, opts Options) (*Result, error) {
	if opts.Separator == "" {
		opts.Separator = SeparatorAuto
	}
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}

	res := &Result{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		if opts.Sample > 0 && res.RowsRead >= opts.Sample {
			break
		}
		line++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		res.RowsRead++

		fields, err := splitRow(raw, opts.Separator)
		if err != nil {
			warn("line %d: %s", line, err)
			res.RowsSkipped++
			continue
		}

		res.Records = append(res.Records, normalize(fields))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read path log: %w", err)
	}
	return res, nil
}

// splitRow splits one raw row into exactly numFields trimmed fields.
func splitRow(raw string, sep Separator) ([]string, error) {
	var fields []string
	switch sep {
	case SeparatorComma:
		fields = strings.Split(raw, ",")
	case SeparatorTab:
		fields = sepTab.Split(raw, -1)
	default:
		fields = sepAuto.Split(raw, -1)
	}

	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	// Delimiter-run modes can yield a leading empty field when the row
	// starts with a separator.
	if len(fields) > 0 && fields[0] == "" && sep != SeparatorComma {
		fields = fields[1:]
	}

	if len(fields) > numFields {
		return nil, fmt.Errorf("%d fields, want at most %d", len(fields), numFields)
	}
	if len(fields) < 4 {
		return nil, fmt.Errorf("%d fields, want at least 4 (count, date, time, node)", len(fields))
	}
	for len(fields) < numFields {
		fields = append(fields, "")
	}
	return fields, nil
}

// normalize converts ten positional fields into a Record.
func normalize(fields []string) Record {
	cleaned, offset := splitGMTOffset(fields[2])

	rec := Record{
		Count:          fields[0],
		GMTOffsetHours: offset,
	}
	if ts, ok := parseTimestamp(fields[1], cleaned); ok {
		rec.Timestamp = &ts
	}

	for _, h := range fields[3:numFields] {
		if hop, ok := normalizeHop(h); ok {
			rec.Hops = append(rec.Hops, hop)
		}
	}
	return rec
}

// splitGMTOffset extracts a "GMT±N" token from the time field, returning the
// cleaned time string and the offset in hours (0 when absent).
func splitGMTOffset(timeField string) (string, int) {
	offset := 0
	if m := gmtPattern.FindStringSubmatch(timeField); m != nil {
		offset, _ = strconv.Atoi(m[1])
	}
	cleaned := strings.TrimSpace(gmtStrip.ReplaceAllString(timeField, " "))
	return cleaned, offset
}

// parseTimestamp combines the date and cleaned time fields and parses them
// day-first. The boolean is false when no layout matches.
func parseTimestamp(date, cleaned string) (time.Time, bool) {
	combined := strings.TrimSpace(date + " " + cleaned)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, combined); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalizeHop upper-cases and trims a hop field. The boolean is false for
// absent values: empty strings and the "nan"/"none" placeholders that
// spreadsheet round-trips leave behind.
func normalizeHop(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none") {
		return "", false
	}
	return strings.ToUpper(s), true
}
