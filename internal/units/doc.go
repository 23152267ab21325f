// Package units parses and formats the physical quantities the tool works
// in: frequency in hertz and power in dBm.
//
// Frequency input accepts a bare hertz count or a decimal value with a unit
// suffix (Hz, kHz, MHz, GHz, case-insensitive, optional space):
//
//	ssgctl set --freq 2.4GHz --power -10
//	ssgctl set --freq 915MHz --power 0dBm
//
// Formatting picks the largest unit that keeps the value readable, so
// 2_400_000_000 Hz renders as "2.4 GHz".
package units
