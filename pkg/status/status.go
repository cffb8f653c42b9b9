// Package status retrieves the list of nodes a monitoring dashboard
// currently reports as offline.
//
// The dashboard is an external collaborator: the pipeline only consumes its
// output, a sequence of (name, node ID) pairs. The fetch is the one slow and
// fallible step of a run, so it sits behind the Fetcher interface with
// caching and retries; callers treat any failure as "offline set is empty"
// and keep going.
package status

import (
	"context"
	"strings"
)

// Node is one device the dashboard reports offline. ID is matched against
// device identity keys by exact uppercase comparison; if the dashboard's ID
// format ever drifts from the coordinate table's, nodes silently stop
// matching.
type Node struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Fetcher supplies the current offline-node list.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Node, error)
}

// IDSet returns the identity keys of the given nodes, uppercased and
// trimmed, in input order.
func IDSet(nodes []Node) []string {
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, strings.ToUpper(strings.TrimSpace(n.ID)))
	}
	return ids
}
