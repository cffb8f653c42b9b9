// Package leaflet renders the connectivity graph as a self-contained
// interactive Leaflet map document.
//
// # Overview
//
// The generated HTML embeds everything the page needs at view time: the
// serialized device and link arrays, the offline-node list, a legend, a
// search box, an offline-node panel, and the interaction script. Leaflet
// itself and the marker icon assets load from CDNs; no server component is
// required to open the file.
//
// # Interaction contract
//
// The embedded script is a JS translation of the overlay state machine in
// [github.com/hinewai/pathmap/pkg/overlay]: clicking a marker or search
// result selects a device and emphasizes its incident links, clicking the
// selected device again deselects it, and links touching an offline node
// stay at zero opacity in every state. The Go package is the tested
// reference for that behavior; changes must land in both places.
//
// # Data contract
//
// The script consumes the JSON field names produced by
// [github.com/hinewai/pathmap/pkg/device.Device] (ID_upper, ID, Latitude,
// Longitude, Type, DeviceName, Location) and
// [github.com/hinewai/pathmap/pkg/link.Link] (frm, to, lat_from, lon_from,
// lat_to, lon_to, count).
package leaflet
