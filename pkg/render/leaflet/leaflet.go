package leaflet

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/link"
	"github.com/hinewai/pathmap/pkg/status"
)

// Options configures the rendered map.
type Options struct {
	// CenterLat and CenterLon are the initial viewport center.
	CenterLat float64
	CenterLon float64

	// Zoom is the initial zoom level.
	Zoom int

	// ShowMarkers toggles device markers. Links are always drawn.
	ShowMarkers bool
}

// DefaultZoom is the initial zoom when none is configured.
const DefaultZoom = 9

// pageData is the template context. The JSON blobs and the map variable
// name are injected verbatim into the page's script block.
type pageData struct {
	MapName     template.JS
	Devices     template.JS
	Links       template.JS
	Offline     template.JS
	OfflineIDs  template.JS
	CenterLat   float64
	CenterLon   float64
	Zoom        int
	ShowMarkers bool
}

var page = template.Must(template.New("map").Parse(pageTemplate))

// Render writes a self-contained interactive map document. Everything the
// page needs except the Leaflet and icon assets (loaded from CDNs) is
// embedded: the device and link arrays, the offline-node list, and the
// interaction script.
func Render(w io.Writer, devices []*device.Device, links []link.Link, offline []status.Node, opts Options) error {
	devJSON, err := json.Marshal(devices)
	if err != nil {
		return fmt.Errorf("marshal devices: %w", err)
	}
	if links == nil {
		links = []link.Link{}
	}
	linkJSON, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("marshal links: %w", err)
	}
	if offline == nil {
		offline = []status.Node{}
	}
	offJSON, err := json.Marshal(offline)
	if err != nil {
		return fmt.Errorf("marshal offline nodes: %w", err)
	}
	idJSON, err := json.Marshal(status.IDSet(offline))
	if err != nil {
		return fmt.Errorf("marshal offline ids: %w", err)
	}

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}

	return page.Execute(w, pageData{
		MapName:     template.JS(mapName()),
		Devices:     template.JS(devJSON),
		Links:       template.JS(linkJSON),
		Offline:     template.JS(offJSON),
		OfflineIDs:  template.JS(idJSON),
		CenterLat:   opts.CenterLat,
		CenterLon:   opts.CenterLon,
		Zoom:        zoom,
		ShowMarkers: opts.ShowMarkers,
	})
}

// mapName returns a unique JS identifier for the map object, so multiple
// generated documents can coexist in one embedding page.
func mapName() string {
	return "map_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
