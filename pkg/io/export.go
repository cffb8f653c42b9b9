package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/link"
	"github.com/hinewai/pathmap/pkg/status"
)

// Graph is the serialized form of a pipeline run: the resolved device list
// and the final link list, plus the offline nodes when a fetch happened.
type Graph struct {
	Devices []*device.Device `json:"devices"`
	Links   []link.Link      `json:"edges"`
	Offline []status.Node    `json:"offline,omitempty"`
}

// WriteJSON encodes a graph as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g Graph, w io.Writer) error {
	if g.Devices == nil {
		g.Devices = []*device.Device{}
	}
	if g.Links == nil {
		g.Links = []link.Link{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
