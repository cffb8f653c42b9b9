package overlay

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/link"
)

func testSnapshot(offlineIDs ...string) *Snapshot {
	ix := device.NewIndex([]device.Device{
		{ID: "A", Latitude: -36.85, Longitude: 174.76, DeviceName: "Alpha Gate", Location: "North Ridge"},
		{ID: "B", Latitude: -36.90, Longitude: 174.70, DeviceName: "Bravo Repeater", Location: "Mill Road"},
		{ID: "C", Latitude: -36.95, Longitude: 174.65, DeviceName: "Charlie Tank", Location: "South Paddock"},
	}, nil)
	links := []link.Link{
		{From: "A", To: "B", Count: 2},
		{From: "B", To: "C", Count: 1},
		{From: "C", To: "A", Count: 1},
	}
	return NewSnapshot(ix, links, offlineIDs)
}

// stylesAfter extracts the final style per link from an instruction list.
func stylesAfter(t *testing.T, s *Snapshot, ins []Instruction) []LinkStyle {
	t.Helper()
	styles := make([]LinkStyle, len(s.Links()))
	for _, in := range ins {
		if r, ok := in.(RestyleLink); ok {
			styles[r.Link] = r.Style
		}
	}
	return styles
}

func TestInitialState(t *testing.T) {
	st := InitialState()
	if st.Mode != ModeIdle || st.Selection != "" || st.FilterQuery != "" {
		t.Fatalf("initial state = %+v, want idle with no selection or filter", st)
	}
}

func TestClickSelectsAndHighlightsIncidentLinks(t *testing.T) {
	s := testSnapshot()
	st, ins := s.Apply(InitialState(), Click{IDKey: "A"})

	if st.Mode != ModeSelected || st.Selection != "A" {
		t.Fatalf("state = %+v, want selected A", st)
	}

	styles := stylesAfter(t, s, ins)
	want := []LinkStyle{StyleHighlighted, StyleDefault, StyleHighlighted}
	if !reflect.DeepEqual(styles, want) {
		t.Errorf("link styles = %v, want %v", styles, want)
	}

	last := ins[len(ins)-1]
	rc, ok := last.(Recenter)
	if !ok {
		t.Fatalf("last instruction = %T, want Recenter", last)
	}
	if rc.Lat != -36.85 || rc.Lon != 174.76 {
		t.Errorf("recenter at (%v, %v), want device A's coordinates", rc.Lat, rc.Lon)
	}
	if rc.FloorZoom != FocusZoom {
		t.Errorf("FloorZoom = %d, want %d", rc.FloorZoom, FocusZoom)
	}
}

func TestClickToggleReturnsToIdle(t *testing.T) {
	s := testSnapshot()
	st, _ := s.Apply(InitialState(), Click{IDKey: "A"})
	st, ins := s.Apply(st, Click{IDKey: "A"})

	if st.Mode != ModeIdle || st.Selection != "" {
		t.Fatalf("state after toggle = %+v, want idle", st)
	}
	for i, style := range stylesAfter(t, s, ins) {
		if style != StyleDefault {
			t.Errorf("link %d style = %v after deselect, want default", i, style)
		}
	}
}

func TestClickSwitchesSelection(t *testing.T) {
	s := testSnapshot()
	st, _ := s.Apply(InitialState(), Click{IDKey: "A"})
	st, ins := s.Apply(st, Click{IDKey: "B"})

	if st.Selection != "B" {
		t.Fatalf("selection = %q, want B", st.Selection)
	}
	styles := stylesAfter(t, s, ins)
	want := []LinkStyle{StyleHighlighted, StyleHighlighted, StyleDefault}
	if !reflect.DeepEqual(styles, want) {
		t.Errorf("link styles = %v, want %v", styles, want)
	}
}

func TestClickUnknownDeviceIsIgnored(t *testing.T) {
	s := testSnapshot()
	st, ins := s.Apply(InitialState(), Click{IDKey: "GHOST"})
	if st.Mode != ModeIdle || len(ins) != 0 {
		t.Fatalf("unknown click changed state (%+v) or emitted %d instructions", st, len(ins))
	}
}

func TestOfflineSuppressionOverridesHighlight(t *testing.T) {
	// A is offline: selecting it must keep its incident links hidden, never
	// highlighted.
	s := testSnapshot("a")
	st, ins := s.Apply(InitialState(), Click{IDKey: "A"})

	if st.Mode != ModeSelected {
		t.Fatalf("state = %+v, want selected", st)
	}
	styles := stylesAfter(t, s, ins)
	want := []LinkStyle{StyleHidden, StyleDefault, StyleHidden}
	if !reflect.DeepEqual(styles, want) {
		t.Errorf("link styles = %v, want %v", styles, want)
	}
}

func TestOfflineSuppressionAtBaseline(t *testing.T) {
	s := testSnapshot("B")
	_, ins := s.Apply(InitialState(), Click{IDKey: "C"})

	styles := stylesAfter(t, s, ins)
	// A-B and B-C touch the offline node; C-A is incident to the selection.
	want := []LinkStyle{StyleHidden, StyleHidden, StyleHighlighted}
	if !reflect.DeepEqual(styles, want) {
		t.Errorf("link styles = %v, want %v", styles, want)
	}
}

func TestFilterShowsMatchesInIndexOrder(t *testing.T) {
	s := testSnapshot()
	st, ins := s.Apply(InitialState(), FilterInput{Query: "r"})

	if st.Mode != ModeFiltered || st.FilterQuery != "r" {
		t.Fatalf("state = %+v, want filtered %q", st, "r")
	}
	sm, ok := ins[len(ins)-1].(ShowMatches)
	if !ok {
		t.Fatalf("last instruction = %T, want ShowMatches", ins[len(ins)-1])
	}
	// "r" hits all three via name or location; order is index order.
	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(sm.IDKeys, want) {
		t.Errorf("matches = %v, want %v", sm.IDKeys, want)
	}
}

func TestFilterMatchesAcrossFields(t *testing.T) {
	s := testSnapshot()
	tests := []struct {
		query string
		want  []string
	}{
		{"bravo", []string{"B"}},
		{"PADDOCK", []string{"C"}},
		{"a", []string{"A", "B", "C"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		if got := s.Matches(tt.query); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFilterCap(t *testing.T) {
	devices := make([]device.Device, MatchLimit+20)
	for i := range devices {
		devices[i] = device.Device{ID: fmt.Sprintf("NODE%03d", i), Latitude: 1, Longitude: 1}
	}
	s := NewSnapshot(device.NewIndex(devices, nil), nil, nil)

	got := s.Matches("node")
	if len(got) != MatchLimit {
		t.Fatalf("got %d matches, want cap of %d", len(got), MatchLimit)
	}
	if got[0] != "NODE000" || got[MatchLimit-1] != fmt.Sprintf("NODE%03d", MatchLimit-1) {
		t.Errorf("matches are not the first %d in enumeration order: %v...%v", MatchLimit, got[0], got[len(got)-1])
	}
}

func TestClearingFilterResetsHighlight(t *testing.T) {
	s := testSnapshot()
	st, _ := s.Apply(InitialState(), Click{IDKey: "A"})
	st, ins := s.Apply(st, FilterInput{Query: ""})

	if st.Mode != ModeIdle || st.Selection != "" || st.FilterQuery != "" {
		t.Fatalf("state = %+v, want idle", st)
	}
	for i, style := range stylesAfter(t, s, ins) {
		if style != StyleDefault {
			t.Errorf("link %d style = %v after clearing filter, want default", i, style)
		}
	}
	if _, ok := ins[len(ins)-1].(HideMatches); !ok {
		t.Errorf("last instruction = %T, want HideMatches", ins[len(ins)-1])
	}
}

func TestTypingDropsActiveSelection(t *testing.T) {
	s := testSnapshot()
	st, _ := s.Apply(InitialState(), Click{IDKey: "A"})
	st, ins := s.Apply(st, FilterInput{Query: "bravo"})

	if st.Mode != ModeFiltered || st.Selection != "" {
		t.Fatalf("state = %+v, want filtered with no selection", st)
	}
	for i, style := range stylesAfter(t, s, ins) {
		if style != StyleDefault {
			t.Errorf("link %d style = %v, want default", i, style)
		}
	}
}

func TestFilterWithNoHitsStaysFiltered(t *testing.T) {
	s := testSnapshot()
	st, ins := s.Apply(InitialState(), FilterInput{Query: "nomatch"})

	if st.Mode != ModeFiltered {
		t.Fatalf("state = %+v, want filtered", st)
	}
	sm, ok := ins[len(ins)-1].(ShowMatches)
	if !ok || len(sm.IDKeys) != 0 {
		t.Errorf("want empty ShowMatches, got %T %v", ins[len(ins)-1], ins[len(ins)-1])
	}
}

func TestClickByLowercaseKey(t *testing.T) {
	// Marker callbacks pass whatever casing the source data used.
	s := testSnapshot()
	st, _ := s.Apply(InitialState(), Click{IDKey: " b "})
	if st.Selection != "B" {
		t.Errorf("selection = %q, want normalized B", st.Selection)
	}
}
