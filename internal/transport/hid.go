package transport

import (
	"fmt"
	"time"

	"github.com/sstallion/go-hid"

	"github.com/rfbench/ssgctl/internal/frame"
)

// Factory USB identifiers shared by all SSG generators.
const (
	VendorID  uint16 = 0x20CE
	ProductID uint16 = 0x0012
)

// HIDTransport is the production Transport over a hidapi device handle.
type HIDTransport struct {
	dev    *hid.Device
	closed bool
}

// Open opens the generator with the given serial number, or the first
// matching generator when serial is empty. If several generators are
// attached and no serial is given, which one opens is not deterministic.
func Open(serial string) (*HIDTransport, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}

	attached := false
	_ = hid.Enumerate(VendorID, ProductID, func(info *hid.DeviceInfo) error {
		if serial == "" || info.SerialNbr == serial {
			attached = true
		}
		return nil
	})
	if !attached {
		return nil, ErrDeviceNotFound
	}

	var (
		dev *hid.Device
		err error
	)
	if serial == "" {
		dev, err = hid.OpenFirst(VendorID, ProductID)
	} else {
		dev, err = hid.Open(VendorID, ProductID, serial)
	}
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}
	return &HIDTransport{dev: dev}, nil
}

// OpenPath opens the generator at a specific platform device path, as
// reported by enumeration. Used when serial numbers cannot disambiguate.
func OpenPath(path string) (*HIDTransport, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}
	dev, err := hid.OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &HIDTransport{dev: dev}, nil
}

// Send writes one interrupt report. The generator uses unnumbered reports,
// so the frame goes out exactly as encoded.
func (t *HIDTransport) Send(report []byte) error {
	if t.closed {
		return ErrClosed
	}
	n, err := t.dev.Write(report)
	if err != nil {
		return fmt.Errorf("hid write: %w", err)
	}
	if n != len(report) {
		return fmt.Errorf("hid write: short write (%d of %d bytes)", n, len(report))
	}
	return nil
}

// Receive blocks for one interrupt report. hidapi signals an expired
// timeout as a zero-length read, which is mapped to ErrTimeout here.
func (t *HIDTransport) Receive(timeout time.Duration) ([]byte, error) {
	if t.closed {
		return nil, ErrClosed
	}
	buf := make([]byte, frame.ReportLen)
	n, err := t.dev.ReadWithTimeout(buf, timeout)
	if err != nil {
		return nil, fmt.Errorf("hid read: %w", err)
	}
	if n == 0 {
		return nil, ErrTimeout
	}
	return buf[:n], nil
}

// Close releases the device handle.
func (t *HIDTransport) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.dev.Close()
}
