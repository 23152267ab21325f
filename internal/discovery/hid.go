package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sstallion/go-hid"

	"github.com/rfbench/ssgctl/internal/transport"
)

// Scan enumerates all attached SSG generators.
func Scan() ([]*Device, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}

	var infos []*hid.DeviceInfo
	err := hid.Enumerate(transport.VendorID, transport.ProductID, func(info *hid.DeviceInfo) error {
		infos = append(infos, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	return collect(infos), nil
}

// collect converts enumeration records into devices, sorted by path so that
// repeated scans list units in a stable order.
func collect(infos []*hid.DeviceInfo) []*Device {
	devices := make([]*Device, 0, len(infos))
	for _, info := range infos {
		product := info.ProductStr
		if product == "" {
			product = "SSG generator"
		}
		devices = append(devices, &Device{
			Path:    info.Path,
			Serial:  info.SerialNbr,
			Product: product,
			Release: info.ReleaseNbr,
		})
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i].Path < devices[j].Path })
	return devices
}

// Resolve finds the device matching query among the scanned devices. The
// query matches a full serial number first, then a unique serial suffix.
// Returns an error when nothing matches or the suffix is ambiguous.
func Resolve(devices []*Device, query string) (*Device, error) {
	for _, d := range devices {
		if d.Serial == query {
			return d, nil
		}
	}

	var matches []*Device
	for _, d := range devices {
		if query != "" && strings.HasSuffix(d.Serial, query) {
			matches = append(matches, d)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, fmt.Errorf("no attached generator matches %q", query)
	default:
		serials := make([]string, len(matches))
		for i, d := range matches {
			serials[i] = d.Serial
		}
		return nil, fmt.Errorf("%q is ambiguous: matches %s", query, strings.Join(serials, ", "))
	}
}
