package session

import (
	"math"
	"testing"
	"time"

	"github.com/rfbench/ssgctl/internal/frame"
	"github.com/rfbench/ssgctl/internal/ssgemu"
)

func newTestSession(t *testing.T) (*Session, *ssgemu.Emulator) {
	t.Helper()
	emu := ssgemu.New()
	s, err := New(emu, time.Second)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, emu
}

func TestNew_CachesCapabilities(t *testing.T) {
	s, emu := newTestSession(t)

	if s.ModelName() != "SSG-6000RC" {
		t.Errorf("ModelName() = %q, want SSG-6000RC", s.ModelName())
	}
	if s.SerialNumber() != "11902250021" {
		t.Errorf("SerialNumber() = %q, want 11902250021", s.SerialNumber())
	}
	if s.MinFrequency() != 1_000_000 || s.MaxFrequency() != 6_000_000_000 {
		t.Errorf("frequency bounds = [%d, %d], want [1000000, 6000000000]",
			s.MinFrequency(), s.MaxFrequency())
	}
	if s.MinPower() != -60.0 || s.MaxPower() != 15.0 {
		t.Errorf("power bounds = [%v, %v], want [-60, 15]", s.MinPower(), s.MaxPower())
	}

	// Identification is six exchanges; accessors afterwards must not
	// touch the transport.
	writes := emu.WriteCount()
	if writes != 6 {
		t.Errorf("identification used %d writes, want 6", writes)
	}
	_ = s.ModelName()
	_ = s.Capabilities()
	_ = s.MinPower()
	if emu.WriteCount() != writes {
		t.Error("capability accessors performed transport writes")
	}
}

func TestNew_CapabilityMismatch(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*ssgemu.Emulator)
	}{
		{
			name: "inverted frequency bounds",
			mod: func(e *ssgemu.Emulator) {
				// Keeps the minimum inside its 4-byte wire field.
				e.MinFreqHz = 2_000_000_000
				e.MaxFreqHz = 1_000_000
			},
		},
		{
			name: "inverted power bounds",
			mod: func(e *ssgemu.Emulator) {
				e.MinPowerDBm = 15.0
				e.MaxPowerDBm = -60.0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emu := ssgemu.New()
			tt.mod(emu)
			s, err := New(emu, time.Second)
			if !IsCapabilityMismatch(err) {
				t.Fatalf("New() error = %v, want capability mismatch", err)
			}
			if s != nil {
				t.Error("New() returned a session despite invalid bounds")
			}
			// The handle must be released on the failure path.
			if emu.Send(make([]byte, frame.ReportLen)) == nil {
				t.Error("transport still open after failed New()")
			}
		})
	}
}

func TestNew_IdentificationTimeout(t *testing.T) {
	emu := ssgemu.New()
	emu.DropReplies = true
	_, err := New(emu, 10*time.Millisecond)
	if !IsTimeout(err) {
		t.Fatalf("New() error = %v, want timeout", err)
	}
}

func TestSetFrequencyPowerTrigger_RangeEnforcement(t *testing.T) {
	tests := []struct {
		name    string
		freqHz  uint64
		dbm     float64
		field   string
		wantErr bool
	}{
		{"in range", 2_400_000_000, -10.0, "", false},
		{"frequency at lower bound", 1_000_000, 0, "", false},
		{"frequency at upper bound", 6_000_000_000, -60.0, "", false},
		{"power at upper bound", 1_000_000, 15.0, "", false},
		{"frequency one below minimum", 999_999, 0, "frequency", true},
		{"frequency one above maximum", 6_000_000_001, -60.0, "frequency", true},
		{"power below minimum", 1_000_000, -60.25, "power", true},
		{"power above maximum", 1_000_000, 15.25, "power", true},
		{"power not a number", 1_000_000, math.NaN(), "power", true},
		{"power positive infinity", 1_000_000, math.Inf(1), "power", true},
		{"power negative infinity", 1_000_000, math.Inf(-1), "power", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, emu := newTestSession(t)
			before := emu.WriteCount()

			err := s.SetFrequencyPowerTrigger(tt.freqHz, tt.dbm, true)
			if tt.wantErr {
				if !IsOutOfRange(err) {
					t.Fatalf("error = %v, want out-of-range", err)
				}
				serr := err.(*SessionError)
				if serr.Field != tt.field {
					t.Errorf("Field = %q, want %q", serr.Field, tt.field)
				}
				// A rejected request must never reach the wire.
				if emu.WriteCount() != before {
					t.Errorf("out-of-range request wrote %d reports", emu.WriteCount()-before)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetFrequencyPowerTrigger() error = %v", err)
			}
			if emu.WriteCount() != before+1 {
				t.Errorf("writes = %d, want exactly one", emu.WriteCount()-before)
			}
		})
	}
}

func TestSetFrequencyPowerTrigger_ProgramsDevice(t *testing.T) {
	s, emu := newTestSession(t)

	if err := s.SetFrequencyPowerTrigger(5_800_000_000, -12.75, true); err != nil {
		t.Fatalf("SetFrequencyPowerTrigger() error = %v", err)
	}
	freq, power, _, trigger := emu.Output()
	if freq != 5_800_000_000 {
		t.Errorf("device frequency = %d, want 5800000000", freq)
	}
	if power != -12.75 {
		t.Errorf("device power = %v, want -12.75", power)
	}
	if !trigger {
		t.Error("device trigger not enabled")
	}
}

func TestSetRFPower_Idempotent(t *testing.T) {
	s, emu := newTestSession(t)

	// Switching on twice transmits two commands but converges on the same
	// device state.
	if err := s.SetRFPower(true); err != nil {
		t.Fatalf("first SetRFPower() error = %v", err)
	}
	st1, err := s.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if err := s.SetRFPower(true); err != nil {
		t.Fatalf("second SetRFPower() error = %v", err)
	}
	st2, err := s.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}

	if !st1.RFEnabled || !st2.RFEnabled {
		t.Errorf("RFEnabled = %v, %v, want true both times", st1.RFEnabled, st2.RFEnabled)
	}
	_, _, rfOn, _ := emu.Output()
	if !rfOn {
		t.Error("device RF output not on")
	}
}

func TestStatus_ReflectsRFOff(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.SetRFPower(true); err != nil {
		t.Fatalf("SetRFPower(true) error = %v", err)
	}
	if err := s.SetRFPower(false); err != nil {
		t.Fatalf("SetRFPower(false) error = %v", err)
	}
	st, err := s.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if st.RFEnabled {
		t.Error("RFEnabled = true immediately after SetRFPower(false)")
	}
}

func TestStatus_CarriesFaults(t *testing.T) {
	s, emu := newTestSession(t)
	emu.SetFaults(frame.FaultPLLUnlocked | 0x0800)

	st, err := s.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !st.Faults.Has(frame.FaultPLLUnlocked) {
		t.Error("named fault bit lost")
	}
	if st.Faults.Unknown() != 0x0800 {
		t.Errorf("Unknown() = 0x%04x, want 0x0800", uint16(st.Faults.Unknown()))
	}
}

func TestOperation_Timeout(t *testing.T) {
	s, emu := newTestSession(t)
	emu.DropReplies = true

	err := s.SetRFPower(true)
	if !IsTimeout(err) {
		t.Fatalf("SetRFPower() error = %v, want timeout", err)
	}
}

func TestOperation_DeviceRejection(t *testing.T) {
	emu := ssgemu.New()
	emu.RejectCode = frame.RejectBusy
	s, err := New(emu, time.Second)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = s.Close() }()

	err = s.SetRFPower(true)
	if !IsProtocol(err) {
		t.Fatalf("SetRFPower() error = %v, want protocol error", err)
	}
	serr := err.(*SessionError)
	if !frame.IsDeviceRejected(serr.Err) {
		t.Errorf("underlying error = %v, want device rejection", serr.Err)
	}
}

func TestPing(t *testing.T) {
	s, emu := newTestSession(t)

	if err := s.Ping(); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	emu.DropReplies = true
	if err := s.Ping(); !IsTimeout(err) {
		t.Errorf("Ping() on dead device error = %v, want timeout", err)
	}
}

func TestClose(t *testing.T) {
	s, _ := newTestSession(t)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.SetRFPower(true); !IsClosed(err) {
		t.Errorf("SetRFPower() after Close error = %v, want closed", err)
	}
	if _, err := s.Status(); !IsClosed(err) {
		t.Errorf("Status() after Close error = %v, want closed", err)
	}
}
