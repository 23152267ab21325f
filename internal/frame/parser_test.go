package frame

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		want    byte
		raw     []byte
		check   func(t *testing.T, err error)
		payload int
	}{
		{
			name:    "valid ack",
			want:    OpSetRFPower,
			raw:     EncodeAckResponse(OpSetRFPower),
			payload: ReportLen - 2,
		},
		{
			name: "empty reply",
			want: OpStatus,
			raw:  nil,
			check: func(t *testing.T, err error) {
				if !IsTruncatedFrame(err) {
					t.Errorf("error = %v, want truncated frame", err)
				}
			},
		},
		{
			name: "single byte reply",
			want: OpStatus,
			raw:  []byte{OpStatus},
			check: func(t *testing.T, err error) {
				if !IsTruncatedFrame(err) {
					t.Errorf("error = %v, want truncated frame", err)
				}
			},
		},
		{
			name: "opcode echo from a different request",
			want: OpStatus,
			raw:  EncodeAckResponse(OpSetRFPower),
			check: func(t *testing.T, err error) {
				if !IsOpcodeMismatch(err) {
					t.Fatalf("error = %v, want opcode mismatch", err)
				}
				perr := err.(*ProtocolError)
				if perr.WantOpcode != OpStatus || perr.GotOpcode != OpSetRFPower {
					t.Errorf("mismatch opcodes = %d/%d, want %d/%d",
						perr.WantOpcode, perr.GotOpcode, OpStatus, OpSetRFPower)
				}
			},
		},
		{
			name: "device rejection",
			want: OpSetFrequencyPower,
			raw:  EncodeRejectResponse(OpSetFrequencyPower, RejectInvalidValue),
			check: func(t *testing.T, err error) {
				if !IsDeviceRejected(err) {
					t.Fatalf("error = %v, want device rejection", err)
				}
				if code := err.(*ProtocolError).Code; code != RejectInvalidValue {
					t.Errorf("Code = 0x%02x, want 0x%02x", code, RejectInvalidValue)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse(tt.want, tt.raw)
			if tt.check != nil {
				tt.check(t, err)
				return
			}
			if err != nil {
				t.Fatalf("ParseResponse() error = %v", err)
			}
			if len(resp.Payload) != tt.payload {
				t.Errorf("payload length = %d, want %d", len(resp.Payload), tt.payload)
			}
		})
	}
}

func TestDecodeString(t *testing.T) {
	raw, err := EncodeStringResponse(OpModelName, "SSG-6000RC")
	if err != nil {
		t.Fatalf("EncodeStringResponse() error = %v", err)
	}
	resp, err := ParseResponse(OpModelName, raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	got, err := resp.DecodeString()
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}
	if got != "SSG-6000RC" {
		t.Errorf("DecodeString() = %q, want %q", got, "SSG-6000RC")
	}
}

func TestDecodeString_Unterminated(t *testing.T) {
	raw := make([]byte, ReportLen)
	raw[0] = OpSerialNumber
	for i := 2; i < ReportLen; i++ {
		raw[i] = 'A'
	}
	resp, err := ParseResponse(OpSerialNumber, raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if _, err := resp.DecodeString(); err == nil {
		t.Error("DecodeString() on unterminated payload should fail")
	}
}

func TestCapabilityRoundTrips(t *testing.T) {
	t.Run("min frequency", func(t *testing.T) {
		raw, err := EncodeMinFrequencyResponse(1_000_000)
		if err != nil {
			t.Fatalf("encode error = %v", err)
		}
		resp, err := ParseResponse(OpMinFrequency, raw)
		if err != nil {
			t.Fatalf("parse error = %v", err)
		}
		got, err := resp.DecodeMinFrequency()
		if err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if got != 1_000_000 {
			t.Errorf("min frequency = %d, want 1000000", got)
		}
	})

	t.Run("max frequency", func(t *testing.T) {
		raw, err := EncodeMaxFrequencyResponse(6_000_000_000)
		if err != nil {
			t.Fatalf("encode error = %v", err)
		}
		resp, err := ParseResponse(OpMaxFrequency, raw)
		if err != nil {
			t.Fatalf("parse error = %v", err)
		}
		got, err := resp.DecodeMaxFrequency()
		if err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if got != 6_000_000_000 {
			t.Errorf("max frequency = %d, want 6000000000", got)
		}
	})

	t.Run("power bounds", func(t *testing.T) {
		for _, dbm := range []float64{-60.0, 15.0} {
			raw, err := EncodePowerResponse(OpMinPower, dbm)
			if err != nil {
				t.Fatalf("encode error = %v", err)
			}
			resp, err := ParseResponse(OpMinPower, raw)
			if err != nil {
				t.Fatalf("parse error = %v", err)
			}
			got, err := resp.DecodePower()
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if got != dbm {
				t.Errorf("power = %v, want %v", got, dbm)
			}
		}
	})
}

// TestStatusRoundTrip verifies that a status reply built from a status value
// decodes back to the same semantic value within wire quantization.
func TestStatusRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		st   DeviceStatus
	}{
		{
			name: "rf on with trigger",
			st: DeviceStatus{
				FreqHz:         2_400_000_000,
				PowerDBm:       -10.25,
				RFEnabled:      true,
				TriggerEnabled: true,
			},
		},
		{
			name: "rf off with faults",
			st: DeviceStatus{
				FreqHz:   987_654_321,
				PowerDBm: 3.5,
				Faults:   FaultPLLUnlocked | FaultOverTemp,
			},
		},
		{
			name: "boundary frequency",
			st: DeviceStatus{
				FreqHz:   MaxFrequencyHz,
				PowerDBm: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := EncodeStatusResponse(&tt.st)
			if err != nil {
				t.Fatalf("EncodeStatusResponse() error = %v", err)
			}
			if len(raw) != ReportLen {
				t.Fatalf("reply length = %d, want %d", len(raw), ReportLen)
			}
			resp, err := ParseResponse(OpStatus, raw)
			if err != nil {
				t.Fatalf("ParseResponse() error = %v", err)
			}
			got, err := resp.DecodeStatus()
			if err != nil {
				t.Fatalf("DecodeStatus() error = %v", err)
			}
			if got.FreqHz != tt.st.FreqHz {
				t.Errorf("FreqHz = %d, want %d", got.FreqHz, tt.st.FreqHz)
			}
			if math.Abs(got.PowerDBm-tt.st.PowerDBm) > PowerResolution/2 {
				t.Errorf("PowerDBm = %v, want %v within quantization", got.PowerDBm, tt.st.PowerDBm)
			}
			if got.RFEnabled != tt.st.RFEnabled || got.TriggerEnabled != tt.st.TriggerEnabled {
				t.Errorf("flags = %v/%v, want %v/%v",
					got.RFEnabled, got.TriggerEnabled, tt.st.RFEnabled, tt.st.TriggerEnabled)
			}
			if got.Faults != tt.st.Faults {
				t.Errorf("Faults = 0x%04x, want 0x%04x", uint16(got.Faults), uint16(tt.st.Faults))
			}
		})
	}
}

func TestDecodeStatus_ShortPayload(t *testing.T) {
	raw := make([]byte, 10) // long enough to parse, too short to decode
	raw[0] = OpStatus
	resp, err := ParseResponse(OpStatus, raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if _, err := resp.DecodeStatus(); err == nil {
		t.Error("DecodeStatus() on short payload should fail")
	}
}

func TestFaultMask(t *testing.T) {
	tests := []struct {
		name    string
		mask    FaultMask
		unknown FaultMask
		str     string
	}{
		{"no faults", 0, 0, "none"},
		{"single named fault", FaultPLLUnlocked, 0, "PLL unlocked"},
		{"two named faults", FaultPLLUnlocked | FaultOverTemp, 0, "PLL unlocked, over-temperature"},
		{"unknown bits preserved", 0x8000 | FaultRefUnlocked, 0x8000, "reference unlocked, unknown(0x8000)"},
		{"only unknown bits", 0x0300, 0x0300, "unknown(0x0300)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mask.Unknown(); got != tt.unknown {
				t.Errorf("Unknown() = 0x%04x, want 0x%04x", uint16(got), uint16(tt.unknown))
			}
			if got := tt.mask.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

// Unknown fault bits must survive the full encode/parse/decode path.
func TestStatusPreservesUnknownFaults(t *testing.T) {
	st := DeviceStatus{FreqHz: 1_000_000, Faults: 0xF000 | FaultPLLUnlocked}
	raw, err := EncodeStatusResponse(&st)
	if err != nil {
		t.Fatalf("EncodeStatusResponse() error = %v", err)
	}
	resp, err := ParseResponse(OpStatus, raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	got, err := resp.DecodeStatus()
	if err != nil {
		t.Fatalf("DecodeStatus() error = %v", err)
	}
	if got.Faults.Unknown() != 0xF000 {
		t.Errorf("Unknown() = 0x%04x, want 0xf000", uint16(got.Faults.Unknown()))
	}
	if binary.BigEndian.Uint16(raw[12:14]) != uint16(st.Faults) {
		t.Errorf("wire fault field = 0x%04x, want 0x%04x", binary.BigEndian.Uint16(raw[12:14]), uint16(st.Faults))
	}
}
