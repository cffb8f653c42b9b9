package pathlog

import "testing"

func TestRecordEdges(t *testing.T) {
	tests := []struct {
		name string
		hops []string
		want []Edge
	}{
		{
			"no hops",
			nil,
			nil,
		},
		{
			"single hop emits nothing",
			[]string{"A"},
			nil,
		},
		{
			"two hops",
			[]string{"A", "B"},
			[]Edge{{From: "A", To: "B", Order: 0, SourceCount: "7"}},
		},
		{
			"full chain",
			[]string{"A", "B", "C", "D"},
			[]Edge{
				{From: "A", To: "B", Order: 0, SourceCount: "7"},
				{From: "B", To: "C", Order: 1, SourceCount: "7"},
				{From: "C", To: "D", Order: 2, SourceCount: "7"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{Count: "7", Hops: tt.hops}
			got := rec.Edges()

			if len(got) != len(tt.want) {
				t.Fatalf("got %d edges, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("edge[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRecordEdgesCountMatchesHops(t *testing.T) {
	// For any chain of n >= 2 hops there are exactly n-1 edges, each joining
	// consecutive hops with its position as order.
	hops := []string{"H0", "H1", "H2", "H3", "H4", "H5", "H6"}
	for n := 2; n <= len(hops); n++ {
		rec := Record{Count: "1", Hops: hops[:n]}
		edges := rec.Edges()
		if len(edges) != n-1 {
			t.Fatalf("n=%d: got %d edges, want %d", n, len(edges), n-1)
		}
		for i, e := range edges {
			if e.Order != i || e.From != hops[i] || e.To != hops[i+1] {
				t.Errorf("n=%d edge[%d] = %+v", n, i, e)
			}
		}
	}
}

func TestExpandEdges(t *testing.T) {
	records := []Record{
		{Count: "1", Hops: []string{"A", "B", "C"}},
		{Count: "2", Hops: []string{"X"}},
		{Count: "3", Hops: []string{"C", "A"}},
	}

	edges := ExpandEdges(records)
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(edges))
	}
	if edges[0].From != "A" || edges[1].From != "B" || edges[2].From != "C" {
		t.Errorf("unexpected edge order: %+v", edges)
	}
	if edges[2].SourceCount != "3" {
		t.Errorf("SourceCount = %q, want %q", edges[2].SourceCount, "3")
	}
}
