package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/hinewai/pathmap/pkg/cache"
	"github.com/hinewai/pathmap/pkg/errors"
	"github.com/hinewai/pathmap/pkg/observability"
)

const fetchTimeout = 15 * time.Second

// Dashboard scrapes a ThingsBoard status dashboard for offline nodes. The
// dashboard lays out one .n_card per device; a card whose .n_value reads
// "Offline" contributes its .m_content name and the node ID parsed out of
// its .n2_valueSmall text.
type Dashboard struct {
	url   string
	http  *http.Client
	cache cache.Cache
}

// NewDashboard creates a fetcher for the dashboard at url. Results are
// cached under cache.TTLOffline; pass a NullCache to always hit the
// dashboard.
func NewDashboard(url string, c cache.Cache) *Dashboard {
	return &Dashboard{
		url:   url,
		http:  &http.Client{Timeout: fetchTimeout},
		cache: c,
	}
}

// Fetch returns the current offline-node list, from cache when fresh.
// Transient HTTP failures are retried with backoff; a final failure comes
// back as an OFFLINE_FETCH error for the caller to degrade on.
func (d *Dashboard) Fetch(ctx context.Context) ([]Node, error) {
	key := cache.Key("offline", d.url)
	if data, ok, _ := d.cache.Get(ctx, key); ok {
		var nodes []Node
		if err := json.Unmarshal(data, &nodes); err == nil {
			return nodes, nil
		}
		// Corrupt entry: drop it and fetch fresh.
		_ = d.cache.Delete(ctx, key)
	}

	var nodes []Node
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		nodes, err = d.fetch(ctx)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeOfflineFetch, err, "fetch offline nodes from %s", d.url)
	}

	if data, err := json.Marshal(nodes); err == nil {
		_ = d.cache.Set(ctx, key, data, cache.TTLOffline)
	}
	return nodes, nil
}

func (d *Dashboard) fetch(ctx context.Context) ([]Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, err
	}

	observability.HTTP().OnRequest(ctx, http.MethodGet, d.url)
	start := time.Now()
	resp, err := d.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, d.url, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, d.url, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode))
	default:
		return nil, fmt.Errorf("%w: status %d", cache.ErrNetwork, resp.StatusCode)
	}

	return ParseDashboard(resp.Body)
}

// ParseDashboard extracts offline nodes from rendered dashboard HTML.
func ParseDashboard(r io.Reader) ([]Node, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard html: %w", err)
	}

	var nodes []Node
	doc.Find("div.n_value").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) != "Offline" {
			return
		}
		card := sel.Closest("div.n_card")
		if card.Length() == 0 {
			return
		}

		name := firstTextNode(card.Find("div.m_content"))
		if name == "" {
			name = "Unknown"
		}

		small := card.Find("div.n2_valueSmall")
		if small.Length() == 0 {
			return
		}
		id := parseNodeID(small.Text())
		nodes = append(nodes, Node{Name: name, ID: id})
	})
	return nodes, nil
}

// firstTextNode returns the first text node of the selection, trimmed. The
// name div holds the friendly name before a <br> and secondary detail after
// it, so plain Text() would concatenate both.
func firstTextNode(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	for n := sel.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				return text
			}
		}
	}
	return ""
}

// parseNodeID pulls the ID out of a "Node ID: <id> Type: <type>" label.
func parseNodeID(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	_, after, found := strings.Cut(text, "Node ID:")
	if !found {
		return "Unknown"
	}
	id, _, _ := strings.Cut(after, "Type:")
	return strings.TrimSpace(id)
}
