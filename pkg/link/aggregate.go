package link

// groupKey identifies one aggregation bucket. Coordinates are part of the
// key so the grouping stays faithful should two IDs ever share a key.
type groupKey struct {
	from, to                       string
	latFrom, lonFrom, latTo, lonTo float64
}

// Aggregate collapses resolved edges into one Link per directed
// (from, to, coordinates) group, with Count equal to the group size.
// Groups with fewer than minCount members are discarded; minCount is
// clamped to at least 1, so the default filters nothing.
//
// Output order is the first-seen order of each group, which makes the
// result independent of how duplicate edges interleave in the input.
func Aggregate(edges []ResolvedEdge, minCount int) []Link {
	if minCount < 1 {
		minCount = 1
	}

	counts := make(map[groupKey]int, len(edges))
	var order []groupKey
	for _, e := range edges {
		k := groupKey{e.From, e.To, e.LatFrom, e.LonFrom, e.LatTo, e.LonTo}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	links := make([]Link, 0, len(order))
	for _, k := range order {
		n := counts[k]
		if n < minCount {
			continue
		}
		links = append(links, Link{
			From:    k.from,
			To:      k.to,
			LatFrom: k.latFrom,
			LonFrom: k.lonFrom,
			LatTo:   k.latTo,
			LonTo:   k.lonTo,
			Count:   n,
		})
	}
	return links
}

// Expand keeps every resolved edge as its own Link with Count 1. This is
// the non-aggregate rendering mode that draws each path instance
// separately; aggregate mode is the default.
func Expand(edges []ResolvedEdge) []Link {
	links := make([]Link, 0, len(edges))
	for _, e := range edges {
		links = append(links, Link{
			From:    e.From,
			To:      e.To,
			LatFrom: e.LatFrom,
			LonFrom: e.LonFrom,
			LatTo:   e.LatTo,
			LonTo:   e.LonTo,
			Count:   1,
		})
	}
	return links
}
