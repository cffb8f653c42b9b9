package device

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hinewai/pathmap/pkg/errors"
)

func TestLoadDevices(t *testing.T) {
	input := strings.Join([]string{
		" id , Latitude ,LONGITUDE,Type",
		"node1,-36.85,174.76,Gateway",
		"Node2,-36.90,174.70,Repeater",
		"node3,not-a-number,174.00,Sensor",
		"node4,-36.95,,Sensor",
	}, "\n")

	var warnings []string
	ix, err := LoadDevices(strings.NewReader(input), LoadOptions{
		Warn: func(format string, args ...any) { warnings = append(warnings, format) },
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ix.Len(), "rows with unresolvable coordinates must be dropped")
	assert.Len(t, warnings, 2)

	d, ok := ix.Lookup("NODE1")
	require.True(t, ok)
	assert.Equal(t, "node1", d.ID)
	assert.Equal(t, "NODE1", d.IDKey)
	assert.Equal(t, -36.85, d.Latitude)
	assert.Equal(t, 174.76, d.Longitude)
	assert.Equal(t, "Gateway", d.Type)
}

func TestLoadDevicesCaseInsensitiveLookup(t *testing.T) {
	input := "ID,Latitude,Longitude\nNode1,-36.85,174.76\n"
	ix, err := LoadDevices(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)

	for _, id := range []string{" node1 ", "NODE1", "Node1", "node1"} {
		d, ok := ix.Lookup(id)
		require.True(t, ok, "Lookup(%q) should resolve", id)
		assert.Equal(t, "NODE1", d.IDKey)
	}
}

func TestLoadDevicesMissingColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no latitude", "ID,Longitude\nA,1\n"},
		{"no longitude", "ID,Latitude\nA,1\n"},
		{"no id", "Latitude,Longitude\n1,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDevices(strings.NewReader(tt.input), LoadOptions{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeSchemaMissingColumn))
			assert.True(t, errors.IsFatal(err), "schema errors abort the run")
		})
	}
}

func TestLoadDevicesTypeOptional(t *testing.T) {
	input := "ID,Latitude,Longitude\nA,1,2\n"
	ix, err := LoadDevices(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)

	d, ok := ix.Lookup("A")
	require.True(t, ok)
	assert.Empty(t, d.Type)
}

func TestLoadDevicesDuplicateKeepsFirst(t *testing.T) {
	input := strings.Join([]string{
		"ID,Latitude,Longitude",
		"a,1,1",
		"A,2,2", // same identity key as "a"
	}, "\n")

	var warned int
	ix, err := LoadDevices(strings.NewReader(input), LoadOptions{
		Warn: func(string, ...any) { warned++ },
	})
	require.NoError(t, err)

	assert.Equal(t, 1, ix.Len())
	assert.Equal(t, 1, warned)
	d, _ := ix.Lookup("A")
	assert.Equal(t, 1.0, d.Latitude, "first occurrence wins")
}

func TestLoadLabelsAndApply(t *testing.T) {
	devices := "ID,Latitude,Longitude\nnode1,1,2\nnode2,3,4\n"
	labels := "id,DeviceName,Location\nNODE1,Pump Shed,Top Paddock\nunknown,X,Y\n"

	ix, err := LoadDevices(strings.NewReader(devices), LoadOptions{})
	require.NoError(t, err)

	ls, err := LoadLabels(strings.NewReader(labels))
	require.NoError(t, err)
	ix.ApplyLabels(ls)

	d, _ := ix.Lookup("node1")
	assert.Equal(t, "Pump Shed", d.DeviceName)
	assert.Equal(t, "Top Paddock", d.Location)

	// Left join: unmatched devices keep empty labels.
	d2, _ := ix.Lookup("node2")
	assert.Empty(t, d2.DeviceName)
	assert.Empty(t, d2.Location)
}

func TestLoadLabelsMissingColumn(t *testing.T) {
	_, err := LoadLabels(strings.NewReader("ID,DeviceName\nA,B\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeSchemaMissingColumn))
}

func TestMeanCenter(t *testing.T) {
	ix := NewIndex([]Device{
		{ID: "a", Latitude: 10, Longitude: 20},
		{ID: "b", Latitude: 20, Longitude: 40},
	}, nil)

	lat, lon, ok := ix.MeanCenter()
	require.True(t, ok)
	assert.Equal(t, 15.0, lat)
	assert.Equal(t, 30.0, lon)

	_, _, ok = NewIndex(nil, nil).MeanCenter()
	assert.False(t, ok)
}

func TestDevicesEnumerationOrder(t *testing.T) {
	input := "ID,Latitude,Longitude\nc,1,1\na,2,2\nb,3,3\n"
	ix, err := LoadDevices(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)

	var keys []string
	for _, d := range ix.Devices() {
		keys = append(keys, d.IDKey)
	}
	assert.Equal(t, []string{"C", "A", "B"}, keys, "enumeration order is input order, not sorted")
}
