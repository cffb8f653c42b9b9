package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinewai/pathmap/pkg/cache"
	"github.com/hinewai/pathmap/pkg/errors"
)

const dashboardHTML = `<html><body>
<div class="n_card">
  <div class="m_content">Puketutu Repeater<br><span>battery 87%</span></div>
  <div class="n_value">Offline</div>
  <div class="n2_valueSmall">Node ID: REP-031 Type: Repeater</div>
</div>
<div class="n_card">
  <div class="m_content">Harbour Gateway</div>
  <div class="n_value">Online</div>
  <div class="n2_valueSmall">Node ID: GW-002 Type: Gateway</div>
</div>
<div class="n_card">
  <div class="m_content">Creek Sensor</div>
  <div class="n_value">Offline</div>
  <div class="n2_valueSmall">Node ID: STR-114 Type: Stream</div>
</div>
</body></html>`

func TestParseDashboard(t *testing.T) {
	nodes, err := ParseDashboard(strings.NewReader(dashboardHTML))
	require.NoError(t, err)

	assert.Equal(t, []Node{
		{Name: "Puketutu Repeater", ID: "REP-031"},
		{Name: "Creek Sensor", ID: "STR-114"},
	}, nodes, "only Offline cards contribute, name is the text before <br>")
}

func TestParseDashboardSkipsCardsWithoutID(t *testing.T) {
	html := `<div class="n_card">
		<div class="m_content">Nameless</div>
		<div class="n_value">Offline</div>
	</div>`
	nodes, err := ParseDashboard(strings.NewReader(html))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestParseDashboardUnparseableIDLabel(t *testing.T) {
	html := `<div class="n_card">
		<div class="m_content">Odd Label</div>
		<div class="n_value">Offline</div>
		<div class="n2_valueSmall">serial 12345</div>
	</div>`
	nodes, err := ParseDashboard(strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Unknown", nodes[0].ID)
}

func TestParseDashboardMissingName(t *testing.T) {
	html := `<div class="n_card">
		<div class="n_value">Offline</div>
		<div class="n2_valueSmall">Node ID: X1 Type: Tank</div>
	</div>`
	nodes, err := ParseDashboard(strings.NewReader(html))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Unknown", nodes[0].Name)
	assert.Equal(t, "X1", nodes[0].ID)
}

func TestParseDashboardEmptyPage(t *testing.T) {
	nodes, err := ParseDashboard(strings.NewReader("<html></html>"))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestDashboardFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(dashboardHTML))
	}))
	defer srv.Close()

	d := NewDashboard(srv.URL, cache.NewNullCache())
	nodes, err := d.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "REP-031", nodes[0].ID)
}

func TestDashboardFetchUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(dashboardHTML))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	d := NewDashboard(srv.URL, fc)
	ctx := context.Background()

	_, err = d.Fetch(ctx)
	require.NoError(t, err)
	_, err = d.Fetch(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load(), "second fetch must be served from cache")
}

func TestDashboardFetchErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewDashboard(srv.URL, cache.NewNullCache())
	_, err := d.Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeOfflineFetch))
	assert.False(t, errors.IsFatal(err), "offline fetch failures degrade, never abort")
}

func TestIDSet(t *testing.T) {
	ids := IDSet([]Node{
		{Name: "A", ID: " rep-031 "},
		{Name: "B", ID: "STR-114"},
	})
	assert.Equal(t, []string{"REP-031", "STR-114"}, ids)
}
