package frame

import "fmt"

// ReportLen is the fixed length of every HID report exchanged with the
// generator, in both directions. Shorter writes are rejected by the firmware.
const ReportLen = 64

// Interrupt opcodes understood by the generator firmware.
const (
	OpModelName         byte = 40
	OpSerialNumber      byte = 41
	OpMinFrequency      byte = 42
	OpMaxFrequency      byte = 43
	OpMinPower          byte = 45
	OpMaxPower          byte = 46
	OpSetFrequencyPower byte = 103
	OpSetRFPower        byte = 104
	OpStatus            byte = 105
)

// Command is a single request the generator accepts. Concrete command types
// carry only the fields relevant to their operation; they are built
// transiently per call and never persisted.
type Command interface {
	// Opcode returns the interrupt code placed in the first report byte.
	Opcode() byte
}

// IdentifyField selects which identity or capability value an
// IdentifyCommand queries. The values are the firmware opcodes themselves.
type IdentifyField byte

const (
	FieldModelName    = IdentifyField(OpModelName)
	FieldSerialNumber = IdentifyField(OpSerialNumber)
	FieldMinFrequency = IdentifyField(OpMinFrequency)
	FieldMaxFrequency = IdentifyField(OpMaxFrequency)
	FieldMinPower     = IdentifyField(OpMinPower)
	FieldMaxPower     = IdentifyField(OpMaxPower)
)

// IdentifyCommand queries one identity or capability field.
type IdentifyCommand struct {
	Field IdentifyField
}

func (c IdentifyCommand) Opcode() byte { return byte(c.Field) }

// SetFrequencyPowerCommand programs the output frequency, output power, and
// trigger-out mode in a single exchange.
type SetFrequencyPowerCommand struct {
	FreqHz         uint64
	PowerDBm       float64
	TriggerEnabled bool
}

func (c SetFrequencyPowerCommand) Opcode() byte { return OpSetFrequencyPower }

// SetRFPowerCommand enables or disables the RF output stage.
type SetRFPowerCommand struct {
	On bool
}

func (c SetRFPowerCommand) Opcode() byte { return OpSetRFPower }

// StatusCommand queries the current output status.
type StatusCommand struct{}

func (c StatusCommand) Opcode() byte { return OpStatus }

// Encode builds the 64-byte report for a command.
//
// Encoding is deterministic and pure. Numeric fields that cannot be
// represented on the wire are rejected here with a FieldOutOfRange error so
// that no malformed report ever reaches the device.
func Encode(cmd Command) ([]byte, error) {
	report := make([]byte, ReportLen)
	report[0] = cmd.Opcode()

	switch c := cmd.(type) {
	case IdentifyCommand, StatusCommand:
		// Opcode only.

	case SetRFPowerCommand:
		if c.On {
			report[1] = 1
		}

	case SetFrequencyPowerCommand:
		if err := packFrequency(report[1:6], c.FreqHz); err != nil {
			return nil, err
		}
		if err := packPower(report[6:9], c.PowerDBm); err != nil {
			return nil, err
		}
		if c.TriggerEnabled {
			report[9] = 1
		}

	default:
		return nil, fmt.Errorf("unsupported command type %T", cmd)
	}

	return report, nil
}

// OpcodeName returns a human-readable name for an interrupt opcode.
func OpcodeName(op byte) string {
	switch op {
	case OpModelName:
		return "ModelName"
	case OpSerialNumber:
		return "SerialNumber"
	case OpMinFrequency:
		return "MinFrequency"
	case OpMaxFrequency:
		return "MaxFrequency"
	case OpMinPower:
		return "MinPower"
	case OpMaxPower:
		return "MaxPower"
	case OpSetFrequencyPower:
		return "SetFrequencyPower"
	case OpSetRFPower:
		return "SetRFPower"
	case OpStatus:
		return "Status"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", op)
	}
}
