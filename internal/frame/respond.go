package frame

import "encoding/binary"

// Device-side reply builders. The generator firmware produces these frames;
// on the host they back the emulator and the codec round-trip tests.

// EncodeAckResponse builds a success reply with an empty payload.
func EncodeAckResponse(op byte) []byte {
	report := make([]byte, ReportLen)
	report[0] = op
	return report
}

// EncodeRejectResponse builds a reply carrying a firmware rejection code.
func EncodeRejectResponse(op, code byte) []byte {
	report := make([]byte, ReportLen)
	report[0] = op
	report[1] = code
	return report
}

// EncodeStringResponse builds an identity reply with a NUL-terminated string.
func EncodeStringResponse(op byte, s string) ([]byte, error) {
	// Reserve one byte for the terminator.
	if len(s) > ReportLen-MinResponseLen-1 {
		return nil, newFieldOutOfRange("identity", "%q does not fit a report", s)
	}
	report := make([]byte, ReportLen)
	report[0] = op
	copy(report[2:], s)
	return report, nil
}

// EncodeMinFrequencyResponse builds a minimum-frequency reply (4-byte field).
func EncodeMinFrequencyResponse(hz uint64) ([]byte, error) {
	if hz > 1<<32-1 {
		return nil, newFieldOutOfRange("frequency", "%d Hz exceeds the 4-byte minimum-frequency field", hz)
	}
	report := make([]byte, ReportLen)
	report[0] = OpMinFrequency
	binary.BigEndian.PutUint32(report[2:6], uint32(hz))
	return report, nil
}

// EncodeMaxFrequencyResponse builds a maximum-frequency reply (5-byte field).
func EncodeMaxFrequencyResponse(hz uint64) ([]byte, error) {
	report := make([]byte, ReportLen)
	report[0] = OpMaxFrequency
	if err := packFrequency(report[2:7], hz); err != nil {
		return nil, err
	}
	return report, nil
}

// EncodePowerResponse builds a power-capability reply for OpMinPower or
// OpMaxPower.
func EncodePowerResponse(op byte, dbm float64) ([]byte, error) {
	report := make([]byte, ReportLen)
	report[0] = op
	if err := packPower(report[2:5], dbm); err != nil {
		return nil, err
	}
	return report, nil
}

// EncodeStatusResponse builds a status reply from a decoded status value.
func EncodeStatusResponse(st *DeviceStatus) ([]byte, error) {
	report := make([]byte, ReportLen)
	report[0] = OpStatus
	payload := report[2:]
	if st.RFEnabled {
		payload[statusOffRF] = 1
	}
	if st.TriggerEnabled {
		payload[statusOffTrigger] = 1
	}
	if err := packFrequency(payload[statusOffFreq:statusOffFreq+5], st.FreqHz); err != nil {
		return nil, err
	}
	if err := packPower(payload[statusOffPower:statusOffPower+3], st.PowerDBm); err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint16(payload[statusOffFaults:statusOffFaults+2], uint16(st.Faults))
	return report, nil
}
