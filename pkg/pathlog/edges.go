package pathlog

// Edge is one directed hop-to-hop transition from a single path record,
// before the endpoints are resolved to coordinates.
type Edge struct {
	// From and To are identity keys of consecutive hops.
	From string
	To   string

	// Order is the edge's 0-based position within its source path.
	Order int

	// SourceCount is the raw count field of the originating record.
	SourceCount string
}

// Edges expands the record's hop chain h0..hn into n directed edges
// (h0→h1), (h1→h2), ... A record with fewer than two hops yields nothing;
// that is a normal outcome, not an error.
func (r Record) Edges() []Edge {
	if len(r.Hops) < 2 {
		return nil
	}
	edges := make([]Edge, 0, len(r.Hops)-1)
	for i := 0; i < len(r.Hops)-1; i++ {
		edges = append(edges, Edge{
			From:        r.Hops[i],
			To:          r.Hops[i+1],
			Order:       i,
			SourceCount: r.Count,
		})
	}
	return edges
}

// ExpandEdges flattens all records into a single edge list, preserving
// record order and hop order within each record.
func ExpandEdges(records []Record) []Edge {
	var edges []Edge
	for _, rec := range records {
		edges = append(edges, rec.Edges()...)
	}
	return edges
}
