package frame

import (
	"encoding/binary"
	"math"
)

// Wire limits for packed numeric fields.
const (
	// MaxFrequencyHz is the largest frequency representable in the 5-byte
	// big-endian wire field (2^40-1 Hz, just over 1 THz).
	MaxFrequencyHz = uint64(1)<<40 - 1

	// PowerResolution is the wire quantization step for power fields.
	PowerResolution = 0.01 // dBm (centi-dBm on the wire)

	// maxPowerCenti is the largest absolute power magnitude representable
	// in the 2-byte base-256 split (655.35 dBm).
	maxPowerCenti = 256*0xff + 0xff
)

// packFrequency writes hz into dst as a 5-byte big-endian value.
func packFrequency(dst []byte, hz uint64) error {
	if hz > MaxFrequencyHz {
		return newFieldOutOfRange("frequency", "%d Hz exceeds the 40-bit wire field", hz)
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], hz)
	copy(dst, buf[3:])
	return nil
}

// unpackFrequency reads a big-endian frequency of 4 or 5 bytes. The firmware
// reports the minimum frequency in 4 bytes and everything else in 5.
func unpackFrequency(src []byte) uint64 {
	var buf [8]byte
	copy(buf[8-len(src):], src)
	return binary.BigEndian.Uint64(buf[:])
}

// packPower writes dbm into dst as the 3-byte sign/centi-dBm group.
// Rounds to the nearest centi-dBm, ties away from zero.
func packPower(dst []byte, dbm float64) error {
	centi := math.Floor(math.Abs(dbm)*100 + 0.5)
	// Inverted comparison so NaN fails it too; a NaN centi must never reach
	// the float-to-int conversion below.
	if !(centi <= maxPowerCenti) {
		return newFieldOutOfRange("power", "%v dBm is not representable on the wire", dbm)
	}
	if math.Signbit(dbm) && centi != 0 {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	dst[1] = byte(int(centi) / 256)
	dst[2] = byte(int(centi) % 256)
	return nil
}

// unpackPower reads the 3-byte sign/centi-dBm group.
func unpackPower(src []byte) float64 {
	dbm := float64(256*int(src[1])+int(src[2])) / 100
	if src[0] != 0 {
		dbm = -dbm
	}
	return dbm
}
