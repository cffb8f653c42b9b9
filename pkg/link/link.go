// Package link resolves hop-to-hop edges against the device index and
// aggregates them into the weighted links drawn on the map.
//
// Resolution joins both edge endpoints on the identity key; an edge with
// either endpoint missing from the index is dropped and tallied for the
// operator. Aggregation is direction-sensitive: A→B and B→A are distinct
// links and are never merged.
package link

// ResolvedEdge is a single path-derived edge whose endpoints both resolved
// to coordinates.
type ResolvedEdge struct {
	From  string
	To    string
	Order int

	// SourceCount is the raw count field of the originating path record.
	SourceCount string

	LatFrom float64
	LonFrom float64
	LatTo   float64
	LonTo   float64
}

// Link is a rendered connection between two devices. In aggregate mode it
// stands for every resolved edge sharing the same endpoints and coordinates,
// with Count recording how many; in non-aggregate mode each resolved edge
// becomes its own Link with Count 1.
//
// The JSON field names are the contract with the embedded map script.
type Link struct {
	From    string  `json:"frm"`
	To      string  `json:"to"`
	LatFrom float64 `json:"lat_from"`
	LonFrom float64 `json:"lon_from"`
	LatTo   float64 `json:"lat_to"`
	LonTo   float64 `json:"lon_to"`
	Count   int     `json:"count"`
}

// Missing summarizes edges dropped during resolution.
type Missing struct {
	// Dropped is the number of edges removed because an endpoint was
	// absent from the device index.
	Dropped int

	// IDs lists the distinct unresolved identity keys, sorted, but only
	// when there are at most ListLimit of them; beyond that only Distinct
	// is reported.
	IDs []string

	// Distinct is the total number of distinct unresolved identity keys.
	Distinct int
}

// ListLimit caps how many unresolved IDs are listed individually in
// diagnostics before falling back to a bare count.
const ListLimit = 50

// Incident reports whether the link touches the device with the given
// identity key as either endpoint.
func (l Link) Incident(idKey string) bool {
	return l.From == idKey || l.To == idKey
}

// MaxCount returns the largest Count among links, or 0 for an empty list.
func MaxCount(links []Link) int {
	max := 0
	for _, l := range links {
		if l.Count > max {
			max = l.Count
		}
	}
	return max
}

