package overlay

import "github.com/hinewai/pathmap/pkg/device"

// Apply runs one transition of the overlay state machine. It is pure: the
// snapshot is read-only, the current state is consumed by value, and the
// effects of the transition are returned as render instructions for the
// view to execute in order.
func (s *Snapshot) Apply(st State, ev Event) (State, []Instruction) {
	switch e := ev.(type) {
	case FilterInput:
		return s.applyFilter(st, e)
	case Click:
		return s.applyClick(st, e)
	default:
		return st, nil
	}
}

func (s *Snapshot) applyFilter(st State, e FilterInput) (State, []Instruction) {
	var ins []Instruction

	// Typing always drops any active highlight.
	if st.Selection != "" {
		ins = append(ins, s.restyleAll("")...)
	}

	matches := s.Matches(e.Query)
	if len(matches) == 0 && e.Query != "" {
		// Non-empty query with no hits still counts as filtering: the
		// result list is shown, just empty.
		return State{Mode: ModeFiltered, FilterQuery: e.Query},
			append(ins, ShowMatches{})
	}
	if e.Query == "" {
		return State{Mode: ModeIdle}, append(ins, HideMatches{})
	}
	return State{Mode: ModeFiltered, FilterQuery: e.Query},
		append(ins, ShowMatches{IDKeys: matches})
}

func (s *Snapshot) applyClick(st State, e Click) (State, []Instruction) {
	key := device.Key(e.IDKey)
	if st.Mode == ModeSelected && st.Selection == key {
		// Toggle off: back to Idle with every link at its baseline style.
		return State{Mode: ModeIdle}, s.restyleAll("")
	}

	d, ok := s.index.Lookup(key)
	if !ok {
		return st, nil
	}

	ins := s.restyleAll(d.IDKey)
	ins = append(ins, Recenter{Lat: d.Latitude, Lon: d.Longitude, FloorZoom: FocusZoom})
	return State{Mode: ModeSelected, Selection: d.IDKey}, ins
}
