// Package pathlog parses radio path logs into normalized records and expands
// them into directed edges.
//
// A path log is delimited text with ten positional fields per row and no
// header:
//
//	count, date, time, node, hop1, hop2, hop3, hop4, hop5, hop6
//
// The time field may carry a "GMT+N" / "GMT-N" suffix which is extracted into
// a separate offset. The node and hop fields form the traversal chain of a
// single transmission: the originating node followed by up to six repeaters
// and gateways, in order.
//
// Parsing is deliberately forgiving. Rows with unparseable timestamps still
// contribute edges (the timestamp becomes nil), placeholder hop values
// ("nan", "none", empty) are dropped while preserving order among the rest,
// and ragged rows produce warnings rather than aborting the load.
package pathlog

import (
	"time"

	"github.com/hinewai/pathmap/pkg/errors"
)

// Separator selects how raw rows are split into fields.
type Separator string

// Recognized separator modes.
const (
	// SeparatorAuto accepts runs of commas or tabs (or both mixed) as a
	// single delimiter. This tolerates logs that were hand-edited or pasted
	// between spreadsheet tools.
	SeparatorAuto Separator = "auto"

	// SeparatorComma splits on single commas, preserving empty fields.
	SeparatorComma Separator = "comma"

	// SeparatorTab treats runs of tabs as a single delimiter.
	SeparatorTab Separator = "tab"
)

// ParseSeparator validates a separator mode string from the CLI.
func ParseSeparator(s string) (Separator, error) {
	switch Separator(s) {
	case SeparatorAuto, SeparatorComma, SeparatorTab:
		return Separator(s), nil
	default:
		return "", errors.New(errors.ErrCodeInvalidSeparator,
			"unknown separator mode: %q (must be 'auto', 'comma', or 'tab')", s)
	}
}

// maxHops is the number of relay fields in a path log row (hop1..hop6).
const maxHops = 6

// numFields is the fixed positional field count of a path log row.
const numFields = 4 + maxHops

// Record is one normalized path log row.
type Record struct {
	// Count is the raw count field, kept as a string exactly as logged.
	Count string

	// Timestamp is the parsed date+time, nil when parsing failed.
	Timestamp *time.Time

	// GMTOffsetHours is the offset extracted from a "GMT±N" suffix in the
	// time field, 0 when absent.
	GMTOffsetHours int

	// Hops is the ordered traversal chain: the originating node followed by
	// the relays, upper-cased and trimmed. Placeholder values are already
	// excluded, so len(Hops) ranges from 0 to 7.
	Hops []string
}
