// Package overlay models the map's client-side interaction protocol as a
// pure state machine.
//
// The rendered HTML embeds a JavaScript translation of this machine; keeping
// the reference version here means selection, filtering and offline
// suppression can be unit-tested without a browser. A Snapshot holds the
// immutable data handed over by the pipeline (devices, links, offline set),
// a State is the tiny mutable cursor, and Apply turns a user event into the
// next State plus the render instructions the view must execute.
package overlay

// Mode is the interaction mode of the overlay.
type Mode int

const (
	// ModeIdle is the initial mode: no selection, no filter.
	ModeIdle Mode = iota

	// ModeFiltered means a non-empty filter query is active and the match
	// list is shown.
	ModeFiltered

	// ModeSelected means one device is highlighted and its incident links
	// are emphasized.
	ModeSelected
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeFiltered:
		return "filtered"
	case ModeSelected:
		return "selected"
	default:
		return "unknown"
	}
}

// State is the overlay's session state. It is reset on load and never
// persisted.
type State struct {
	Mode Mode

	// Selection is the identity key of the selected device, empty unless
	// Mode is ModeSelected.
	Selection string

	// FilterQuery is the current filter text, empty unless Mode is
	// ModeFiltered.
	FilterQuery string
}

// InitialState returns the state the overlay starts in.
func InitialState() State {
	return State{Mode: ModeIdle}
}

// MatchLimit caps the filter result list.
const MatchLimit = 50

// FocusZoom is the zoom floor applied when recentering on a device. The
// view zooms in to this level if it is currently farther out, and never
// zooms out.
const FocusZoom = 13

// Event is a user interaction the machine reacts to.
type Event interface {
	isEvent()
}

// FilterInput is a keystroke in the search box carrying the full current
// query text.
type FilterInput struct {
	Query string
}

// Click is a click on a device marker or a search result.
type Click struct {
	IDKey string
}

func (FilterInput) isEvent() {}
func (Click) isEvent()       {}

// LinkStyle is the visual style of one rendered link.
type LinkStyle int

const (
	// StyleDefault is the dimmed baseline every link starts at.
	StyleDefault LinkStyle = iota

	// StyleHighlighted marks a link incident to the selected device.
	StyleHighlighted

	// StyleHidden renders a link at zero opacity. Links touching an
	// offline node are always hidden, even while their device is
	// selected.
	StyleHidden
)

// Instruction is one render operation the view must execute after a
// transition. Instructions are emitted in application order.
type Instruction interface {
	isInstruction()
}

// RestyleLink sets the style of the link at the given index into the
// snapshot's link list.
type RestyleLink struct {
	Link  int
	Style LinkStyle
}

// ShowMatches replaces the search result list with the given identity
// keys, in device index enumeration order.
type ShowMatches struct {
	IDKeys []string
}

// HideMatches clears the search result list.
type HideMatches struct{}

// Recenter moves the viewport to the given coordinates. Zoom is raised to
// FloorZoom only when the current zoom is below it.
type Recenter struct {
	Lat       float64
	Lon       float64
	FloorZoom int
}

func (RestyleLink) isInstruction() {}
func (ShowMatches) isInstruction() {}
func (HideMatches) isInstruction() {}
func (Recenter) isInstruction()    {}
