package device

// Index is the immutable device lookup table. Enumeration order is the
// coordinate table's row order, which the overlay relies on for stable
// search results.
type Index struct {
	devices []*Device
	byKey   map[string]*Device
}

// NewIndex builds an index from devices that already carry coordinates.
// When two rows share an identity key the first wins; dup receives the
// identity keys of the discarded rows (nil disables the callback).
func NewIndex(devices []Device, dup func(idKey string)) *Index {
	ix := &Index{byKey: make(map[string]*Device, len(devices))}
	for i := range devices {
		d := devices[i]
		if d.IDKey == "" {
			d.IDKey = Key(d.ID)
		}
		if _, exists := ix.byKey[d.IDKey]; exists {
			if dup != nil {
				dup(d.IDKey)
			}
			continue
		}
		stored := d
		ix.devices = append(ix.devices, &stored)
		ix.byKey[stored.IDKey] = &stored
	}
	return ix
}

// Lookup resolves a device by ID (any casing, surrounding whitespace
// tolerated). The boolean is false when the device is unknown.
func (ix *Index) Lookup(id string) (*Device, bool) {
	d, ok := ix.byKey[Key(id)]
	return d, ok
}

// Contains reports whether an identity key is present.
func (ix *Index) Contains(idKey string) bool {
	_, ok := ix.byKey[idKey]
	return ok
}

// Devices returns all devices in enumeration order. Callers must not
// mutate the returned slice or its entries.
func (ix *Index) Devices() []*Device {
	return ix.devices
}

// Len returns the number of indexed devices.
func (ix *Index) Len() int {
	return len(ix.devices)
}

// MeanCenter returns the arithmetic mean of all device coordinates, used as
// the map center when no explicit center device is configured. The boolean
// is false for an empty index.
func (ix *Index) MeanCenter() (lat, lon float64, ok bool) {
	if len(ix.devices) == 0 {
		return 0, 0, false
	}
	for _, d := range ix.devices {
		lat += d.Latitude
		lon += d.Longitude
	}
	n := float64(len(ix.devices))
	return lat / n, lon / n, true
}

// ApplyLabels left-joins label rows onto the index by identity key.
// Devices without a matching label keep empty DeviceName/Location; labels
// for unknown devices are ignored.
func (ix *Index) ApplyLabels(labels []Label) {
	for _, l := range labels {
		if d, ok := ix.byKey[l.IDKey]; ok {
			d.DeviceName = l.DeviceName
			d.Location = l.Location
		}
	}
}
