package link

import (
	"sort"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/pathlog"
)

// Resolve joins each edge's endpoints against the device index.
//
// Edges whose endpoints both resolve gain coordinates and are returned in
// input order. Edges with an unresolved endpoint are dropped — never an
// error — and summarized in Missing for operator diagnostics.
func Resolve(edges []pathlog.Edge, ix *device.Index) ([]ResolvedEdge, Missing) {
	resolved := make([]ResolvedEdge, 0, len(edges))
	unresolved := make(map[string]struct{})
	missing := Missing{}

	for _, e := range edges {
		from, okFrom := ix.Lookup(e.From)
		to, okTo := ix.Lookup(e.To)
		if !okFrom || !okTo {
			missing.Dropped++
			if !okFrom {
				unresolved[e.From] = struct{}{}
			}
			if !okTo {
				unresolved[e.To] = struct{}{}
			}
			continue
		}

		resolved = append(resolved, ResolvedEdge{
			From:        e.From,
			To:          e.To,
			Order:       e.Order,
			SourceCount: e.SourceCount,
			LatFrom:     from.Latitude,
			LonFrom:     from.Longitude,
			LatTo:       to.Latitude,
			LonTo:       to.Longitude,
		})
	}

	missing.Distinct = len(unresolved)
	if missing.Distinct > 0 && missing.Distinct <= ListLimit {
		missing.IDs = make([]string, 0, missing.Distinct)
		for id := range unresolved {
			missing.IDs = append(missing.IDs, id)
		}
		sort.Strings(missing.IDs)
	}
	return resolved, missing
}
