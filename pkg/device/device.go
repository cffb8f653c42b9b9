// Package device builds the lookup index from device IDs to coordinates and
// descriptive metadata.
//
// The index is constructed once per run from a coordinate table, optionally
// enriched by a left join against a labels table, and immutable afterwards.
// All lookups and joins go through the identity key: the upper-cased, trimmed
// form of a device ID. " node1 ", "NODE1" and "Node1" are the same device.
package device

import "strings"

// Key returns the identity key for a device ID: upper-cased and trimmed.
// Every join in the pipeline operates on this exact-match key, never on
// fuzzy lookup.
func Key(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Device is one entry of the index. Devices without resolvable coordinates
// are never stored, so Latitude/Longitude are always meaningful.
type Device struct {
	// ID is the original device ID as it appeared in the coordinate table.
	ID string `json:"ID"`

	// IDKey is the identity key derived from ID.
	IDKey string `json:"ID_upper"`

	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`

	// Type is an optional classification (sensor, repeater, gateway, ...)
	// used only for marker styling.
	Type string `json:"Type"`

	// DeviceName and Location come from the optional labels table and stay
	// empty for devices without a matching label row.
	DeviceName string `json:"DeviceName"`
	Location   string `json:"Location"`
}

// Label is one row of the optional labels table, keyed by identity key.
type Label struct {
	IDKey      string
	DeviceName string
	Location   string
}
