package units

import "testing"

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{"1000000", 1_000_000, false},
		{"100Hz", 100, false},
		{"433.92MHz", 433_920_000, false},
		{"2.4GHz", 2_400_000_000, false},
		{"2.4 GHz", 2_400_000_000, false},
		{"915 mhz", 915_000_000, false},
		{"26.5ghz", 26_500_000_000, false},
		{"12kHz", 12_000, false},
		{"  6GHz  ", 6_000_000_000, false},
		{"", 0, true},
		{"GHz", 0, true},
		{"-1MHz", 0, true},
		{"ten MHz", 0, true},
		{"nan", 0, true},
		{"NaN GHz", 0, true},
		{"inf", 0, true},
		{"+Inf MHz", 0, true},
		{"1e30", 0, true},
		{"18446744073709551616", 0, true}, // 2^64 exactly
	}

	for _, tt := range tests {
		got, err := ParseFrequency(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFrequency(%q) = %d, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFrequency(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFrequency(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatFrequency(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 Hz"},
		{999, "999 Hz"},
		{12_000, "12 kHz"},
		{433_920_000, "433.92 MHz"},
		{2_400_000_000, "2.4 GHz"},
		{6_000_000_000, "6 GHz"},
		{5_800_000_001, "5.800000001 GHz"},
	}

	for _, tt := range tests {
		if got := FormatFrequency(tt.in); got != tt.want {
			t.Errorf("FormatFrequency(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePower(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"-10", -10.0, false},
		{"-10.5dBm", -10.5, false},
		{"+15 dBm", 15.0, false},
		{"0", 0, false},
		{"-60.25 DBM", -60.25, false},
		{"", 0, true},
		{"dBm", 0, true},
		{"loud", 0, true},
		{"nan", 0, true},
		{"inf dBm", 0, true},
		{"-inf", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePower(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePower(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePower(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePower(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatPower(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{-10.0, "-10.00 dBm"},
		{15.0, "+15.00 dBm"},
		{0, "+0.00 dBm"},
		{-12.75, "-12.75 dBm"},
	}

	for _, tt := range tests {
		if got := FormatPower(tt.in); got != tt.want {
			t.Errorf("FormatPower(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
