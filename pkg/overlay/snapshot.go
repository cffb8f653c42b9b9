package overlay

import (
	"strings"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/link"
)

// Snapshot is the immutable data the overlay operates on: the device index,
// the final link list and the set of offline node IDs. It is built once per
// page load and never mutated; all session state lives in State.
type Snapshot struct {
	index   *device.Index
	links   []link.Link
	offline map[string]struct{}

	// incident maps an identity key to the indices of every link touching
	// it, so a selection restyle does not rescan the full link list.
	incident map[string][]int
}

// NewSnapshot indexes the pipeline output for interaction. offlineIDs are
// matched to link endpoints by exact uppercase identity key.
func NewSnapshot(ix *device.Index, links []link.Link, offlineIDs []string) *Snapshot {
	s := &Snapshot{
		index:    ix,
		links:    links,
		offline:  make(map[string]struct{}, len(offlineIDs)),
		incident: make(map[string][]int),
	}
	for _, id := range offlineIDs {
		s.offline[device.Key(id)] = struct{}{}
	}
	for i, l := range links {
		s.incident[l.From] = append(s.incident[l.From], i)
		if l.To != l.From {
			s.incident[l.To] = append(s.incident[l.To], i)
		}
	}
	return s
}

// Links returns the snapshot's link list.
func (s *Snapshot) Links() []link.Link {
	return s.links
}

// Offline reports whether the device with the given identity key is in the
// offline set.
func (s *Snapshot) Offline(idKey string) bool {
	_, ok := s.offline[idKey]
	return ok
}

// Incident returns the indices of every link touching the device.
func (s *Snapshot) Incident(idKey string) []int {
	return s.incident[idKey]
}

// Matches returns the identity keys of devices whose ID, device name or
// location contains the query as a case-insensitive substring. Results come
// in index enumeration order and stop at MatchLimit; they are never
// re-sorted by relevance.
func (s *Snapshot) Matches(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var keys []string
	for _, d := range s.index.Devices() {
		if strings.Contains(strings.ToLower(d.ID), q) ||
			strings.Contains(strings.ToLower(d.DeviceName), q) ||
			strings.Contains(strings.ToLower(d.Location), q) {
			keys = append(keys, d.IDKey)
			if len(keys) == MatchLimit {
				break
			}
		}
	}
	return keys
}

// styleFor computes the effective style of one link given the current
// selection. Offline suppression wins over highlighting.
func (s *Snapshot) styleFor(i int, selection string) LinkStyle {
	l := s.links[i]
	if s.Offline(l.From) || s.Offline(l.To) {
		return StyleHidden
	}
	if selection != "" && l.Incident(selection) {
		return StyleHighlighted
	}
	return StyleDefault
}

// restyleAll emits one RestyleLink per link, carrying the effective style
// for the given selection.
func (s *Snapshot) restyleAll(selection string) []Instruction {
	out := make([]Instruction, 0, len(s.links))
	for i := range s.links {
		out = append(out, RestyleLink{Link: i, Style: s.styleFor(i, selection)})
	}
	return out
}
