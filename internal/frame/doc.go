// Package frame implements the SSG generator binary report protocol.
//
// This package handles construction, validation, and parsing of the
// fixed-length HID interrupt reports exchanged with SSG synthesized signal
// generators. Every exchange is a single 64-byte report in each direction.
//
// # Report Format
//
// Host-to-device reports have this structure:
//   - Opcode: 1 byte (interrupt code understood by the firmware)
//   - Payload: opcode-specific, big-endian packed
//   - Padding: zero fill to 64 bytes
//
// Device-to-host reports mirror the request:
//   - Opcode echo: 1 byte (must match the request opcode)
//   - Status: 1 byte (0 = success, nonzero = rejection code)
//   - Payload: opcode-specific
//
// # Field Encoding
//
// Frequencies travel as unsigned big-endian Hz. The firmware reports the
// minimum frequency in 4 bytes and the maximum in 5 bytes; set commands
// carry 5 bytes (40 bits, enough for 1 THz).
//
// Output power travels as a 3-byte group: a sign byte (1 = negative) followed
// by the absolute value in centi-dBm split base 256:
//
//	power = (-1)^sign * (256*hi + lo) / 100 dBm
//
// Encoding rounds to the nearest centi-dBm with ties away from zero.
//
// # Usage Example
//
//	report, err := frame.Encode(frame.SetFrequencyPowerCommand{
//	    FreqHz:         2_400_000_000,
//	    PowerDBm:       -10.0,
//	    TriggerEnabled: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// write report, read reply ...
//	resp, err := frame.ParseResponse(frame.OpSetFrequencyPower, reply)
//
// # Error Handling
//
// The package distinguishes between:
//   - Truncated frames: reply shorter than the minimum report
//   - Opcode mismatches: reply echoing a different opcode (desynchronized
//     session)
//   - Device rejections: nonzero status byte with a firmware error code
//   - Out-of-range fields: values that cannot be represented on the wire,
//     rejected at encode time before any I/O
//
// # Thread Safety
//
// All encoding and parsing functions are stateless and safe for concurrent
// use.
package frame
