package frame

import (
	"math"
	"testing"
)

func TestPackPower(t *testing.T) {
	tests := []struct {
		name string
		dbm  float64
		want [3]byte
	}{
		{"zero", 0.0, [3]byte{0x00, 0x00, 0x00}},
		{"quarter step", 0.25, [3]byte{0x00, 0x00, 0x19}},
		{"negative quarter step", -0.25, [3]byte{0x01, 0x00, 0x19}},
		{"minus sixty", -60.0, [3]byte{0x01, 0x17, 0x70}},
		{"plus fifteen", 15.0, [3]byte{0x00, 0x05, 0xdc}},
		{"crosses the base-256 split", 2.56, [3]byte{0x00, 0x01, 0x00}},
		{"wire maximum", 655.35, [3]byte{0x00, 0xff, 0xff}},
		// Ties round away from zero. 0.125 is exact in binary, so
		// 12.5 centi-dBm is a true tie.
		{"positive tie", 0.125, [3]byte{0x00, 0x00, 0x0d}},
		{"negative tie", -0.125, [3]byte{0x01, 0x00, 0x0d}},
		{"negative zero collapses to zero", math.Copysign(0, -1), [3]byte{0x00, 0x00, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst [3]byte
			if err := packPower(dst[:], tt.dbm); err != nil {
				t.Fatalf("packPower(%v) error = %v", tt.dbm, err)
			}
			if dst != tt.want {
				t.Errorf("packPower(%v) = % x, want % x", tt.dbm, dst, tt.want)
			}
		})
	}
}

func TestPackPower_OutOfRange(t *testing.T) {
	var dst [3]byte
	for _, dbm := range []float64{655.36, -655.36, 10000} {
		if err := packPower(dst[:], dbm); !IsFieldOutOfRange(err) {
			t.Errorf("packPower(%v) error = %v, want field-out-of-range", dbm, err)
		}
	}
}

func TestPackPower_NonFinite(t *testing.T) {
	// NaN compares false against any bound, so the guard must not let it
	// through to the float-to-int conversion.
	var dst [3]byte
	for _, dbm := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := packPower(dst[:], dbm); !IsFieldOutOfRange(err) {
			t.Errorf("packPower(%v) error = %v, want field-out-of-range", dbm, err)
		}
	}
}

func TestEncode_NonFinitePower(t *testing.T) {
	for _, dbm := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		cmd := SetFrequencyPowerCommand{FreqHz: 2_400_000_000, PowerDBm: dbm}
		if _, err := Encode(cmd); !IsFieldOutOfRange(err) {
			t.Errorf("Encode(power=%v) error = %v, want field-out-of-range", dbm, err)
		}
	}
}

func TestPowerRoundTrip(t *testing.T) {
	// Every value must survive pack/unpack within the wire quantization
	// step.
	values := []float64{-60.0, -13.37, -0.25, 0.0, 0.25, 7.5, 10.33, 15.0, 655.35}

	for _, dbm := range values {
		var buf [3]byte
		if err := packPower(buf[:], dbm); err != nil {
			t.Fatalf("packPower(%v) error = %v", dbm, err)
		}
		got := unpackPower(buf[:])
		if math.Abs(got-dbm) > PowerResolution/2 {
			t.Errorf("round trip %v -> %v exceeds half a quantization step", dbm, got)
		}
	}
}

func TestFrequencyRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 1_000_000, 2_400_000_000, 6_000_000_000, MaxFrequencyHz}

	for _, hz := range values {
		var buf [5]byte
		if err := packFrequency(buf[:], hz); err != nil {
			t.Fatalf("packFrequency(%d) error = %v", hz, err)
		}
		if got := unpackFrequency(buf[:]); got != hz {
			t.Errorf("round trip %d -> %d", hz, got)
		}
	}
}

func TestUnpackFrequency_FourBytes(t *testing.T) {
	// The minimum-frequency field is only 4 bytes wide.
	got := unpackFrequency([]byte{0x00, 0x0f, 0x42, 0x40})
	if got != 1_000_000 {
		t.Errorf("unpackFrequency(4 bytes) = %d, want 1000000", got)
	}
}

func TestPackFrequency_OutOfRange(t *testing.T) {
	var buf [5]byte
	if err := packFrequency(buf[:], MaxFrequencyHz+1); !IsFieldOutOfRange(err) {
		t.Errorf("packFrequency(2^40) error = %v, want field-out-of-range", err)
	}
}
