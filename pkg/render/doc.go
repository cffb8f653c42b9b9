// Package render groups the output renderers for the connectivity graph.
//
// # Overview
//
// The pipeline produces a device list and a weighted link list; the
// subpackages turn that pair into viewable artifacts:
//
//   - [leaflet]: the primary output, a self-contained interactive map
//     document with markers, search, legend and offline-node panel
//   - [dot]: a non-geographic node-link diagram in Graphviz DOT or SVG
//
// # Choosing a renderer
//
// The map is what operators open day to day. The DOT view exists for
// topology questions that a geographic layout obscures, such as spotting
// the repeaters most paths funnel through:
//
//	src := dot.ToDOT(index, links, offlineIDs, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// Both renderers consume the same immutable pipeline output and share the
// weight scale in [github.com/hinewai/pathmap/pkg/link.WeightForCount], so
// a link's visual prominence matches across views.
//
// [leaflet]: github.com/hinewai/pathmap/pkg/render/leaflet
// [dot]: github.com/hinewai/pathmap/pkg/render/dot
package render
