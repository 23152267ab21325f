// Package discovery enumerates SSG generators attached over USB.
//
// Generators all share the factory vendor/product identifiers, so discovery
// is a HID enumeration filtered to that pair. Each result carries the
// platform device path (stable for the lifetime of the attachment) and the
// serial number, which is the preferred way to address a specific unit when
// several are attached.
//
// # Usage Example
//
//	devices, err := discovery.Scan()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range devices {
//	    fmt.Printf("Found: %s (serial %s) at %s\n", d.Product, d.Serial, d.Path)
//	}
//
// Enumeration reads USB descriptors only; it never opens a device or
// exchanges reports, so it is safe while another process holds a generator.
package discovery
