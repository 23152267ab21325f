package discovery

import "fmt"

// Device describes one attached generator, taken from its USB descriptors.
type Device struct {
	// Path is the platform-specific device path used to open this exact
	// unit (e.g. "/dev/hidraw3" on Linux).
	Path string

	// Serial is the generator serial number from the string descriptor.
	Serial string

	// Product is the product string (e.g. "SSG-6000RC").
	Product string

	// Release is the device release number in binary-coded decimal.
	Release uint16
}

// String returns a human-readable representation of the device.
func (d *Device) String() string {
	return fmt.Sprintf("%s (serial %s) at %s", d.Product, d.Serial, d.Path)
}

// FirmwareVersion formats the BCD release number as "major.minor".
func (d *Device) FirmwareVersion() string {
	return fmt.Sprintf("%x.%02x", d.Release>>8, d.Release&0xff)
}
