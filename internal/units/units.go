package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Frequency unit multipliers in Hz.
const (
	Hz  = 1
	KHz = 1_000
	MHz = 1_000_000
	GHz = 1_000_000_000
)

// ParseFrequency converts a human frequency string to hertz. A bare number
// is taken as hertz; a Hz/kHz/MHz/GHz suffix scales the value. The suffix
// may be separated from the number by a space.
func ParseFrequency(s string) (uint64, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, fmt.Errorf("empty frequency")
	}

	multiplier := float64(Hz)
	lower := strings.ToLower(text)
	for _, unit := range []struct {
		suffix string
		mult   float64
	}{
		{"ghz", GHz},
		{"mhz", MHz},
		{"khz", KHz},
		{"hz", Hz},
	} {
		if strings.HasSuffix(lower, unit.suffix) {
			text = strings.TrimSpace(text[:len(text)-len(unit.suffix)])
			multiplier = unit.mult
			break
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid frequency %q", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("frequency %q is negative", s)
	}

	// 1<<64 is exact in float64; >= keeps the conversion below defined.
	hz := math.Round(value * multiplier)
	if hz >= 1<<64 {
		return 0, fmt.Errorf("frequency %q is too large", s)
	}
	return uint64(hz), nil
}

// FormatFrequency renders hertz with the largest unit that keeps the value
// at or above 1, trimming trailing zeros.
func FormatFrequency(hz uint64) string {
	switch {
	case hz >= GHz:
		return trimZeros(float64(hz)/GHz) + " GHz"
	case hz >= MHz:
		return trimZeros(float64(hz)/MHz) + " MHz"
	case hz >= KHz:
		return trimZeros(float64(hz)/KHz) + " kHz"
	default:
		return fmt.Sprintf("%d Hz", hz)
	}
}

// ParsePower converts a human power string to dBm. A "dBm" suffix is
// accepted and ignored.
func ParsePower(s string) (float64, error) {
	text := strings.TrimSpace(s)
	lower := strings.ToLower(text)
	if strings.HasSuffix(lower, "dbm") {
		text = strings.TrimSpace(text[:len(text)-len("dbm")])
	}
	if text == "" {
		return 0, fmt.Errorf("empty power")
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("invalid power %q", s)
	}
	return value, nil
}

// FormatPower renders dBm at the 0.01 dB resolution the hardware works in,
// with an explicit sign.
func FormatPower(dbm float64) string {
	return fmt.Sprintf("%+.2f dBm", dbm)
}

func trimZeros(v float64) string {
	// 9 decimals keeps a GHz rendering exact to the hertz.
	s := strconv.FormatFloat(v, 'f', 9, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
