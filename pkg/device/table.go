package device

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hinewai/pathmap/pkg/errors"
)

// LoadOptions configures coordinate table loading.
type LoadOptions struct {
	// Warn receives recoverable per-row diagnostics (dropped rows,
	// duplicate IDs). Nil disables them.
	Warn func(format string, args ...any)
}

// LoadDevices reads a coordinate table (CSV with a header row) and builds
// the device index.
//
// Header matching is case-insensitive and tolerant of surrounding
// whitespace. Required columns are ID, Latitude and Longitude; Type is
// optional and defaults to empty. Rows whose latitude or longitude fail
// numeric coercion are dropped with a warning — a bad row never fails the
// load, a missing column always does (SCHEMA_MISSING_COLUMN).
func LoadDevices(r io.Reader, opts LoadOptions) (*Index, error) {
	warn := opts.Warn
	if warn == nil {
		warn = func(string, ...any) {}
	}

	rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read devices table: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "devices table is empty")
	}

	header := rows[0]
	idCol, err := requireColumn(header, "id", "devices")
	if err != nil {
		return nil, err
	}
	latCol, err := requireColumn(header, "latitude", "devices")
	if err != nil {
		return nil, err
	}
	lonCol, err := requireColumn(header, "longitude", "devices")
	if err != nil {
		return nil, err
	}
	typeCol := findColumn(header, "type") // optional

	var devices []Device
	for i, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, idCol))
		if id == "" {
			warn("devices row %d: empty ID, dropped", i+2)
			continue
		}

		lat, latErr := parseCoord(cell(row, latCol))
		lon, lonErr := parseCoord(cell(row, lonCol))
		if latErr != nil || lonErr != nil {
			warn("devices row %d (%s): missing or non-numeric coordinates, dropped", i+2, id)
			continue
		}

		d := Device{
			ID:        id,
			IDKey:     Key(id),
			Latitude:  lat,
			Longitude: lon,
		}
		if typeCol >= 0 {
			d.Type = strings.TrimSpace(cell(row, typeCol))
		}
		devices = append(devices, d)
	}

	return NewIndex(devices, func(idKey string) {
		warn("devices: duplicate ID %s, keeping the first occurrence", idKey)
	}), nil
}

// LoadLabels reads the optional labels table (CSV with a header row).
// Required columns are ID, DeviceName and Location; all three missing
// column errors are SCHEMA_MISSING_COLUMN, same as the coordinate table.
func LoadLabels(r io.Reader) ([]Label, error) {
	rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("read labels table: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "labels table is empty")
	}

	header := rows[0]
	idCol, err := requireColumn(header, "id", "labels")
	if err != nil {
		return nil, err
	}
	nameCol, err := requireColumn(header, "devicename", "labels")
	if err != nil {
		return nil, err
	}
	locCol, err := requireColumn(header, "location", "labels")
	if err != nil {
		return nil, err
	}

	var labels []Label
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, idCol))
		if id == "" {
			continue
		}
		labels = append(labels, Label{
			IDKey:      Key(id),
			DeviceName: strings.TrimSpace(cell(row, nameCol)),
			Location:   strings.TrimSpace(cell(row, locCol)),
		})
	}
	return labels, nil
}

// readTable parses CSV allowing ragged rows; short rows read as empty cells.
func readTable(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

// findColumn locates a logical column by case-insensitive, whitespace-
// tolerant header match. Returns -1 when absent.
func findColumn(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// requireColumn is findColumn for required columns; absence is a fatal
// schema error naming the table and column.
func requireColumn(header []string, name, table string) (int, error) {
	if i := findColumn(header, name); i >= 0 {
		return i, nil
	}
	return -1, errors.New(errors.ErrCodeSchemaMissingColumn,
		"%s table: missing required column %q", table, name)
}

// cell returns row[i], tolerating rows shorter than the header.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseCoord coerces a coordinate cell to a float.
func parseCoord(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
