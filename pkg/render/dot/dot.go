package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/hinewai/pathmap/pkg/device"
	"github.com/hinewai/pathmap/pkg/link"
)

// Options configures topology rendering.
type Options struct {
	// Detailed includes device name and location in node labels.
	// When false, only the device ID is shown.
	Detailed bool
}

// ToDOT converts the connectivity graph to Graphviz DOT format. Only
// devices that participate in at least one link appear; offline devices are
// filled red. Edge pen width follows the same logarithmic scale as the map
// renderer, and aggregated counts above 1 become edge labels.
func ToDOT(ix *device.Index, links []link.Link, offlineIDs []string, opts Options) string {
	offline := make(map[string]struct{}, len(offlineIDs))
	for _, id := range offlineIDs {
		offline[device.Key(id)] = struct{}{}
	}

	connected := make(map[string]struct{}, len(links)*2)
	for _, l := range links {
		connected[l.From] = struct{}{}
		connected[l.To] = struct{}{}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph paths {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, d := range ix.Devices() {
		if _, ok := connected[d.IDKey]; !ok {
			continue
		}
		_, off := offline[d.IDKey]
		attrs := fmtAttrs(d, off, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", d.IDKey, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	maxCount := link.MaxCount(links)
	for _, l := range links {
		attrs := []string{fmt.Sprintf("penwidth=%.2f", link.WeightForCount(l.Count, maxCount))}
		if l.Count > 1 {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.Itoa(l.Count)))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.From, l.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(d *device.Device, offline, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(d, detailed))}
	if offline {
		attrs = append(attrs, "fillcolor=\"#ffcdd2\"", "color=\"#d32f2f\"")
	}
	return attrs
}

func fmtLabel(d *device.Device, detailed bool) string {
	if !detailed {
		return d.ID
	}
	parts := []string{d.ID}
	if d.DeviceName != "" {
		parts = append(parts, d.DeviceName)
	}
	if d.Location != "" {
		parts = append(parts, d.Location)
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so width/height match the
// viewBox, keeping the output scalable in embedding pages.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
