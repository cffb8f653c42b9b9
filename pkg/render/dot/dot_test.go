package dot

import (
	"strings"
	"testing"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/link"
)

func testIndex() *device.Index {
	return device.NewIndex([]device.Device{
		{ID: "GW-1", Latitude: 1, Longitude: 1, DeviceName: "Gateway One", Location: "Hilltop"},
		{ID: "REP-2", Latitude: 2, Longitude: 2},
		{ID: "LONER", Latitude: 3, Longitude: 3},
	}, nil)
}

func TestToDOT(t *testing.T) {
	links := []link.Link{
		{From: "GW-1", To: "REP-2", Count: 3},
		{From: "REP-2", To: "GW-1", Count: 1},
	}

	dot := ToDOT(testIndex(), links, nil, Options{})

	for _, want := range []string{
		"digraph paths {",
		`"GW-1" [label="GW-1"];`,
		`"GW-1" -> "REP-2" [penwidth=5.00, label="3"];`,
		`"REP-2" -> "GW-1" [penwidth=`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	if strings.Contains(dot, "LONER") {
		t.Error("devices without links should not appear")
	}
	if strings.Contains(dot, `"REP-2" -> "GW-1" [penwidth=5.00`) {
		t.Error("count 1 link should be thinner than the max count link")
	}
}

func TestToDOTCountOneHasNoLabel(t *testing.T) {
	dot := ToDOT(testIndex(), []link.Link{{From: "GW-1", To: "REP-2", Count: 1}}, nil, Options{})
	if strings.Contains(dot, "label=\"1\"") {
		t.Error("count 1 should not produce an edge label")
	}
}

func TestToDOTOfflineStyling(t *testing.T) {
	links := []link.Link{{From: "GW-1", To: "REP-2", Count: 1}}
	dot := ToDOT(testIndex(), links, []string{"rep-2"}, Options{})

	if !strings.Contains(dot, `"REP-2" [label="REP-2", fillcolor="#ffcdd2", color="#d32f2f"];`) {
		t.Errorf("offline device not styled:\n%s", dot)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	links := []link.Link{{From: "GW-1", To: "REP-2", Count: 1}}
	dot := ToDOT(testIndex(), links, nil, Options{Detailed: true})

	if !strings.Contains(dot, `label="GW-1\nGateway One\nHilltop"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.25">rest</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.50 200.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="200"`) {
		t.Errorf("width/height not derived from viewBox: %s", out)
	}
}
