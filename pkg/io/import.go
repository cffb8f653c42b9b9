package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hinewai/pathmap/pkg/device"
)

// ReadJSON decodes a graph from r.
//
// The input must be a JSON object with "devices" and "edges" arrays in the
// shape produced by [WriteJSON]. ReadJSON validates referential integrity:
// every edge endpoint must name a device present in the device list, and
// device identity keys must be unique. Devices whose ID_upper field is
// empty get it derived from ID.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}

	seen := make(map[string]struct{}, len(g.Devices))
	for _, d := range g.Devices {
		if d.IDKey == "" {
			d.IDKey = device.Key(d.ID)
		}
		if _, dup := seen[d.IDKey]; dup {
			return Graph{}, fmt.Errorf("device %s: duplicate identity key", d.IDKey)
		}
		seen[d.IDKey] = struct{}{}
	}

	for _, l := range g.Links {
		if _, ok := seen[l.From]; !ok {
			return Graph{}, fmt.Errorf("edge %s->%s: unknown device %s", l.From, l.To, l.From)
		}
		if _, ok := seen[l.To]; !ok {
			return Graph{}, fmt.Errorf("edge %s->%s: unknown device %s", l.From, l.To, l.To)
		}
	}

	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
