// Package io provides JSON import and export for the derived connectivity
// graph.
//
// # Overview
//
// A pipeline run ends in a device list and a weighted link list. This
// package serializes that pair so it can be:
//
//   - Inspected or post-processed with external tools (jq, notebooks)
//   - Cached and re-rendered without re-parsing the path log
//   - Produced by one machine and rendered on another
//
// # JSON Format
//
// The format has two required top-level arrays and one optional one:
//
//	{
//	  "devices": [
//	    {"ID_upper": "GW-1", "ID": "gw-1", "Latitude": -36.85, "Longitude": 174.76,
//	     "Type": "Gateway", "DeviceName": "", "Location": ""}
//	  ],
//	  "edges": [
//	    {"frm": "GW-1", "to": "REP-2", "lat_from": -36.85, "lon_from": 174.76,
//	     "lat_to": -36.9, "lon_to": 174.7, "count": 3}
//	  ],
//	  "offline": [{"name": "Creek Sensor", "id": "STR-114"}]
//	}
//
// The device and edge field names match what the rendered map document
// embeds, so an exported graph can be fed straight back into either
// renderer.
//
// # Validation
//
// [ReadJSON] and [ImportJSON] check that device identity keys are unique
// and that every edge endpoint references a listed device; both return
// errors naming the offending device or edge. The returned graph is
// independent of the reader and safe to use after the call.
package io
