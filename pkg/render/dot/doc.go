// Package dot renders the connectivity graph as a node-link diagram.
//
// This is the non-geographic view of the same data the map shows: devices
// as boxes, directed links as arrows, pen width following the aggregated
// count. It is useful when the topology matters more than where the nodes
// sit, for example when auditing which repeaters carry most traffic.
//
// [ToDOT] produces Graphviz DOT source; [RenderSVG] rasterizes it
// in-process via [github.com/goccy/go-graphviz], so no external graphviz
// installation is needed.
package dot
