// Package ssgemu emulates an SSG generator behind the transport interface.
//
// The emulator interprets command reports exactly as the firmware protocol
// defines them and answers from in-memory state, so session behavior can be
// tested end to end without hardware. Failure injection covers the cases a
// real bench produces: dropped replies (timeouts), firmware rejections, and
// fault flags.
package ssgemu

import (
	"fmt"
	"sync"
	"time"

	"github.com/rfbench/ssgctl/internal/frame"
	"github.com/rfbench/ssgctl/internal/transport"
)

// Emulator is an in-memory generator implementing transport.Transport.
type Emulator struct {
	mu sync.Mutex

	// Identity and envelope reported during identification.
	Model       string
	Serial      string
	MinFreqHz   uint64
	MaxFreqHz   uint64
	MinPowerDBm float64
	MaxPowerDBm float64

	// Failure injection.
	DropReplies bool // swallow replies so Receive times out
	RejectCode  byte // nonzero: refuse set commands with this code

	// Current output state.
	freqHz   uint64
	powerDBm float64
	rfOn     bool
	trigger  bool
	faults   frame.FaultMask

	queue  [][]byte
	writes int
	closed bool
}

// New returns an emulator with the envelope of a bench SSG-6000RC.
func New() *Emulator {
	return &Emulator{
		Model:       "SSG-6000RC",
		Serial:      "11902250021",
		MinFreqHz:   1_000_000,
		MaxFreqHz:   6_000_000_000,
		MinPowerDBm: -60.0,
		MaxPowerDBm: 15.0,
		freqHz:      1_000_000,
	}
}

// Send interprets one command report and queues the reply.
func (e *Emulator) Send(report []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return transport.ErrClosed
	}
	e.writes++

	if len(report) != frame.ReportLen {
		return fmt.Errorf("emulator: report is %d bytes, firmware expects %d", len(report), frame.ReportLen)
	}

	cmd, err := frame.ParseCommand(report)
	if err != nil {
		return fmt.Errorf("emulator: %w", err)
	}

	reply, err := e.handle(cmd)
	if err != nil {
		return err
	}
	if !e.DropReplies {
		e.queue = append(e.queue, reply)
	}
	return nil
}

func (e *Emulator) handle(cmd frame.Command) ([]byte, error) {
	switch c := cmd.(type) {
	case frame.IdentifyCommand:
		switch c.Field {
		case frame.FieldModelName:
			return frame.EncodeStringResponse(frame.OpModelName, e.Model)
		case frame.FieldSerialNumber:
			return frame.EncodeStringResponse(frame.OpSerialNumber, e.Serial)
		case frame.FieldMinFrequency:
			return frame.EncodeMinFrequencyResponse(e.MinFreqHz)
		case frame.FieldMaxFrequency:
			return frame.EncodeMaxFrequencyResponse(e.MaxFreqHz)
		case frame.FieldMinPower:
			return frame.EncodePowerResponse(frame.OpMinPower, e.MinPowerDBm)
		case frame.FieldMaxPower:
			return frame.EncodePowerResponse(frame.OpMaxPower, e.MaxPowerDBm)
		default:
			return frame.EncodeRejectResponse(byte(c.Field), frame.RejectUnsupportedOpcode), nil
		}

	case frame.SetFrequencyPowerCommand:
		if e.RejectCode != 0 {
			return frame.EncodeRejectResponse(frame.OpSetFrequencyPower, e.RejectCode), nil
		}
		e.freqHz = c.FreqHz
		e.powerDBm = c.PowerDBm
		e.trigger = c.TriggerEnabled
		return frame.EncodeAckResponse(frame.OpSetFrequencyPower), nil

	case frame.SetRFPowerCommand:
		if e.RejectCode != 0 {
			return frame.EncodeRejectResponse(frame.OpSetRFPower, e.RejectCode), nil
		}
		e.rfOn = c.On
		return frame.EncodeAckResponse(frame.OpSetRFPower), nil

	case frame.StatusCommand:
		return frame.EncodeStatusResponse(&frame.DeviceStatus{
			FreqHz:         e.freqHz,
			PowerDBm:       e.powerDBm,
			RFEnabled:      e.rfOn,
			TriggerEnabled: e.trigger,
			Faults:         e.faults,
		})

	default:
		return nil, fmt.Errorf("emulator: unsupported command %T", cmd)
	}
}

// Receive pops the next queued reply, or times out when the queue is empty.
func (e *Emulator) Receive(timeout time.Duration) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, transport.ErrClosed
	}
	if len(e.queue) == 0 {
		return nil, transport.ErrTimeout
	}
	reply := e.queue[0]
	e.queue = e.queue[1:]
	return reply, nil
}

// Close marks the emulator closed.
func (e *Emulator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

// WriteCount reports how many reports have reached the emulator. Range
// validation tests assert this stays at zero.
func (e *Emulator) WriteCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writes
}

// SetFaults sets the fault mask reported in status replies.
func (e *Emulator) SetFaults(m frame.FaultMask) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.faults = m
}

// Output reports the current programmed output state.
func (e *Emulator) Output() (freqHz uint64, powerDBm float64, rfOn, trigger bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.freqHz, e.powerDBm, e.rfOn, e.trigger
}
