// Package transport carries fixed-length reports to and from a single USB
// generator.
//
// The Transport interface is the boundary the rest of the module talks to:
// one blocking Send, one blocking Receive with a bounded timeout, exclusive
// ownership of the underlying handle. The real implementation sits on the
// hidapi binding; tests substitute their own.
package transport

import (
	"errors"
	"time"
)

// Transport is a single open link to a generator. Implementations are not
// safe for concurrent use; the session layer serializes callers.
type Transport interface {
	// Send writes one report. Blocks until the report is accepted by the
	// host controller.
	Send(report []byte) error

	// Receive blocks until one report arrives or the timeout expires.
	Receive(timeout time.Duration) ([]byte, error)

	// Close releases the device handle. Safe to call more than once.
	Close() error
}

// Sentinel errors returned by transport implementations.
var (
	// ErrDeviceNotFound is returned by Open when no attached device
	// matches the requested identifiers.
	ErrDeviceNotFound = errors.New("transport: no matching USB device")

	// ErrTimeout is returned by Receive when no report arrives in time.
	ErrTimeout = errors.New("transport: read timed out")

	// ErrClosed is returned for operations on a closed transport.
	ErrClosed = errors.New("transport: device closed")
)
