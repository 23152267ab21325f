package frame

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// MinResponseLen is the smallest reply the parser accepts: opcode echo plus
// status byte.
const MinResponseLen = 2

// Status payload field offsets, relative to the start of the payload.
const (
	statusOffRF      = 0
	statusOffTrigger = 1
	statusOffFreq    = 2  // 5 bytes
	statusOffPower   = 7  // 3 bytes
	statusOffFaults  = 10 // 2 bytes
	statusPayloadLen = 12
)

// Response is a validated device reply: opcode echo and status byte checked,
// payload not yet interpreted. Consumed immediately by the typed decoders.
type Response struct {
	Opcode  byte
	Payload []byte
	Raw     []byte
}

// ParseResponse validates a raw reply against the opcode of the request that
// produced it.
//
// Validation order: length first, then the opcode echo (a mismatch means the
// session is desynchronized and the payload cannot be trusted), then the
// firmware status byte. Only a fully validated reply yields a Response.
func ParseResponse(want byte, raw []byte) (*Response, error) {
	if len(raw) < MinResponseLen {
		return nil, newTruncated(len(raw))
	}
	if raw[0] != want {
		return nil, newOpcodeMismatch(want, raw[0])
	}
	if raw[1] != 0 {
		return nil, newDeviceRejected(want, raw[1])
	}
	return &Response{
		Opcode:  raw[0],
		Payload: raw[2:],
		Raw:     raw,
	}, nil
}

// String returns a debug representation of the response.
func (r *Response) String() string {
	return fmt.Sprintf("Response{opcode=%s, payload=%d bytes}", OpcodeName(r.Opcode), len(r.Payload))
}

// DecodeString reads a NUL-terminated ASCII identity string from the payload.
func (r *Response) DecodeString() (string, error) {
	end := bytes.IndexByte(r.Payload, 0)
	if end < 0 {
		return "", newBadPayload("%s payload has no string terminator", OpcodeName(r.Opcode))
	}
	return string(r.Payload[:end]), nil
}

// DecodeMinFrequency reads the 4-byte big-endian minimum frequency in Hz.
// The firmware packs the minimum in 4 bytes, unlike every other frequency
// field.
func (r *Response) DecodeMinFrequency() (uint64, error) {
	if len(r.Payload) < 4 {
		return 0, newBadPayload("%s payload is %d bytes (need 4)", OpcodeName(r.Opcode), len(r.Payload))
	}
	return unpackFrequency(r.Payload[:4]), nil
}

// DecodeMaxFrequency reads the 5-byte big-endian maximum frequency in Hz.
func (r *Response) DecodeMaxFrequency() (uint64, error) {
	if len(r.Payload) < 5 {
		return 0, newBadPayload("%s payload is %d bytes (need 5)", OpcodeName(r.Opcode), len(r.Payload))
	}
	return unpackFrequency(r.Payload[:5]), nil
}

// DecodePower reads a 3-byte power group in dBm.
func (r *Response) DecodePower() (float64, error) {
	if len(r.Payload) < 3 {
		return 0, newBadPayload("%s payload is %d bytes (need 3)", OpcodeName(r.Opcode), len(r.Payload))
	}
	return unpackPower(r.Payload[:3]), nil
}

// FaultMask is the raw 16-bit fault field from a status reply. Bits without
// a name here are preserved, not dropped, so newer firmware fault codes
// survive decoding.
type FaultMask uint16

const (
	// FaultPLLUnlocked means the synthesizer PLL has lost lock.
	FaultPLLUnlocked FaultMask = 1 << iota
	// FaultOverTemp means the output stage exceeded its thermal limit.
	FaultOverTemp
	// FaultRefUnlocked means the external reference is selected but absent.
	FaultRefUnlocked
	// FaultOutputOverload means the output detected a reverse-power overload.
	FaultOutputOverload
)

const knownFaults = FaultPLLUnlocked | FaultOverTemp | FaultRefUnlocked | FaultOutputOverload

// Has reports whether the mask includes f.
func (m FaultMask) Has(f FaultMask) bool { return m&f != 0 }

// Unknown returns the fault bits that have no name in this package.
func (m FaultMask) Unknown() FaultMask { return m &^ knownFaults }

// Names returns display names for the set named bits. Unknown bits are
// reported collectively with their raw value.
func (m FaultMask) Names() []string {
	var names []string
	if m.Has(FaultPLLUnlocked) {
		names = append(names, "PLL unlocked")
	}
	if m.Has(FaultOverTemp) {
		names = append(names, "over-temperature")
	}
	if m.Has(FaultRefUnlocked) {
		names = append(names, "reference unlocked")
	}
	if m.Has(FaultOutputOverload) {
		names = append(names, "output overload")
	}
	if u := m.Unknown(); u != 0 {
		names = append(names, fmt.Sprintf("unknown(0x%04x)", uint16(u)))
	}
	return names
}

// String returns a comma-separated fault list, or "none".
func (m FaultMask) String() string {
	if m == 0 {
		return "none"
	}
	return strings.Join(m.Names(), ", ")
}

// DeviceStatus is the decoded operating state from a status reply. It is
// produced fresh on every query and never cached: the generator's state can
// change from external triggers or front-panel actions between calls.
type DeviceStatus struct {
	FreqHz         uint64    `json:"freq_hz"`
	PowerDBm       float64   `json:"power_dbm"`
	RFEnabled      bool      `json:"rf_enabled"`
	TriggerEnabled bool      `json:"trigger_enabled"`
	Faults         FaultMask `json:"fault_mask"`
}

// String returns a debug representation of the status.
func (s *DeviceStatus) String() string {
	return fmt.Sprintf("DeviceStatus{freq=%d Hz, power=%.2f dBm, rf=%v, trigger=%v, faults=%s}",
		s.FreqHz, s.PowerDBm, s.RFEnabled, s.TriggerEnabled, s.Faults)
}

// ParseCommand interprets a host-to-device report back into its command.
// Exact inverse of Encode; used by the emulator and the codec round-trip
// tests.
func ParseCommand(report []byte) (Command, error) {
	if len(report) < 1 {
		return nil, newTruncated(len(report))
	}
	switch op := report[0]; op {
	case OpModelName, OpSerialNumber, OpMinFrequency, OpMaxFrequency, OpMinPower, OpMaxPower:
		return IdentifyCommand{Field: IdentifyField(op)}, nil

	case OpStatus:
		return StatusCommand{}, nil

	case OpSetRFPower:
		if len(report) < 2 {
			return nil, newTruncated(len(report))
		}
		return SetRFPowerCommand{On: report[1] != 0}, nil

	case OpSetFrequencyPower:
		if len(report) < 10 {
			return nil, newTruncated(len(report))
		}
		return SetFrequencyPowerCommand{
			FreqHz:         unpackFrequency(report[1:6]),
			PowerDBm:       unpackPower(report[6:9]),
			TriggerEnabled: report[9] != 0,
		}, nil

	default:
		return nil, newBadPayload("unknown command opcode %s", OpcodeName(op))
	}
}

// DecodeStatus interprets a status reply payload.
func (r *Response) DecodeStatus() (*DeviceStatus, error) {
	if len(r.Payload) < statusPayloadLen {
		return nil, newBadPayload("%s payload is %d bytes (need %d)",
			OpcodeName(r.Opcode), len(r.Payload), statusPayloadLen)
	}
	return &DeviceStatus{
		RFEnabled:      r.Payload[statusOffRF] != 0,
		TriggerEnabled: r.Payload[statusOffTrigger] != 0,
		FreqHz:         unpackFrequency(r.Payload[statusOffFreq : statusOffFreq+5]),
		PowerDBm:       unpackPower(r.Payload[statusOffPower : statusOffPower+3]),
		Faults:         FaultMask(binary.BigEndian.Uint16(r.Payload[statusOffFaults : statusOffFaults+2])),
	}, nil
}
