package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rfbench/ssgctl/internal/frame"
	"github.com/rfbench/ssgctl/internal/logging"
	"github.com/rfbench/ssgctl/internal/transport"
)

// DefaultReadTimeout bounds the blocking read of each exchange. The
// generator normally answers within a few milliseconds; half a second
// covers USB scheduling hiccups without making a dead unit painful.
const DefaultReadTimeout = 500 * time.Millisecond

// Options configures Open.
type Options struct {
	// Serial selects a specific generator by serial number. Empty opens
	// the first attached generator.
	Serial string

	// Path opens an exact platform device path and takes precedence over
	// Serial. Used when serial numbers cannot disambiguate.
	Path string

	// ReadTimeout bounds the blocking read of each exchange. Zero means
	// DefaultReadTimeout.
	ReadTimeout time.Duration
}

// Capabilities is the generator's identity and operating envelope, fetched
// once at open and immutable afterwards.
type Capabilities struct {
	Model       string  `json:"model"`
	Serial      string  `json:"serial"`
	MinFreqHz   uint64  `json:"min_freq_hz"`
	MaxFreqHz   uint64  `json:"max_freq_hz"`
	MinPowerDBm float64 `json:"min_power_dbm"`
	MaxPowerDBm float64 `json:"max_power_dbm"`
}

// Session is an open connection to one generator. See the package
// documentation for the request/response and timeout model.
type Session struct {
	mu      sync.Mutex
	tr      transport.Transport
	timeout time.Duration
	caps    Capabilities
	closed  bool
}

// Open finds a generator, opens it, and performs the identification
// exchange. The device handle is released on every failure path so an
// aborted open never leaves a unit claimed.
func Open(opts Options) (*Session, error) {
	var (
		tr  transport.Transport
		err error
	)
	if opts.Path != "" {
		tr, err = transport.OpenPath(opts.Path)
	} else {
		tr, err = transport.Open(opts.Serial)
	}
	if err != nil {
		if errors.Is(err, transport.ErrDeviceNotFound) {
			return nil, newNotFoundError(opts.Serial)
		}
		return nil, newTransportError("open transport", err)
	}
	return New(tr, opts.ReadTimeout)
}

// New builds a session over an already-open transport and performs the
// identification exchange. The session takes ownership of tr and closes it
// if identification fails.
func New(tr transport.Transport, timeout time.Duration) (*Session, error) {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	s := &Session{tr: tr, timeout: timeout}

	if err := s.fetchCapabilities(); err != nil {
		_ = tr.Close()
		return nil, err
	}
	if s.caps.MinFreqHz > s.caps.MaxFreqHz {
		_ = tr.Close()
		return nil, newCapabilityError("frequency bounds inverted: min %d Hz > max %d Hz",
			s.caps.MinFreqHz, s.caps.MaxFreqHz)
	}
	if s.caps.MinPowerDBm > s.caps.MaxPowerDBm {
		_ = tr.Close()
		return nil, newCapabilityError("power bounds inverted: min %.2f dBm > max %.2f dBm",
			s.caps.MinPowerDBm, s.caps.MaxPowerDBm)
	}

	logging.Info("Session opened",
		zap.String("model", s.caps.Model),
		zap.String("serial", s.caps.Serial),
		zap.Uint64("min_freq_hz", s.caps.MinFreqHz),
		zap.Uint64("max_freq_hz", s.caps.MaxFreqHz),
		zap.Float64("min_power_dbm", s.caps.MinPowerDBm),
		zap.Float64("max_power_dbm", s.caps.MaxPowerDBm),
	)
	return s, nil
}

// fetchCapabilities runs the six identification exchanges.
func (s *Session) fetchCapabilities() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.caps.Model, err = s.queryString(frame.FieldModelName); err != nil {
		return err
	}
	if s.caps.Serial, err = s.queryString(frame.FieldSerialNumber); err != nil {
		return err
	}

	resp, err := s.exchange(frame.IdentifyCommand{Field: frame.FieldMinFrequency})
	if err != nil {
		return err
	}
	if s.caps.MinFreqHz, err = resp.DecodeMinFrequency(); err != nil {
		return newProtocolError(err)
	}

	resp, err = s.exchange(frame.IdentifyCommand{Field: frame.FieldMaxFrequency})
	if err != nil {
		return err
	}
	if s.caps.MaxFreqHz, err = resp.DecodeMaxFrequency(); err != nil {
		return newProtocolError(err)
	}

	if s.caps.MinPowerDBm, err = s.queryPower(frame.FieldMinPower); err != nil {
		return err
	}
	if s.caps.MaxPowerDBm, err = s.queryPower(frame.FieldMaxPower); err != nil {
		return err
	}
	return nil
}

func (s *Session) queryString(field frame.IdentifyField) (string, error) {
	resp, err := s.exchange(frame.IdentifyCommand{Field: field})
	if err != nil {
		return "", err
	}
	v, err := resp.DecodeString()
	if err != nil {
		return "", newProtocolError(err)
	}
	return v, nil
}

func (s *Session) queryPower(field frame.IdentifyField) (float64, error) {
	resp, err := s.exchange(frame.IdentifyCommand{Field: field})
	if err != nil {
		return 0, err
	}
	v, err := resp.DecodePower()
	if err != nil {
		return 0, newProtocolError(err)
	}
	return v, nil
}

// exchange performs one write/read round-trip. Callers must hold s.mu.
func (s *Session) exchange(cmd frame.Command) (*frame.Response, error) {
	if s.closed {
		return nil, newClosedError()
	}

	op := frame.OpcodeName(cmd.Opcode())
	report, err := frame.Encode(cmd)
	if err != nil {
		return nil, newProtocolError(err)
	}

	logging.LogReport("send", report)
	if err := s.tr.Send(report); err != nil {
		return nil, classifyExchangeError(op, s.timeout, err)
	}

	raw, err := s.tr.Receive(s.timeout)
	if err != nil {
		return nil, classifyExchangeError(op, s.timeout, err)
	}
	logging.LogReport("recv", raw)

	resp, err := frame.ParseResponse(cmd.Opcode(), raw)
	if err != nil {
		return nil, newProtocolError(err)
	}
	return resp, nil
}

// ModelName returns the cached model name. Never touches the transport.
func (s *Session) ModelName() string { return s.caps.Model }

// SerialNumber returns the cached serial number. Never touches the transport.
func (s *Session) SerialNumber() string { return s.caps.Serial }

// MinFrequency returns the minimum supported frequency in Hz.
func (s *Session) MinFrequency() uint64 { return s.caps.MinFreqHz }

// MaxFrequency returns the maximum supported frequency in Hz.
func (s *Session) MaxFrequency() uint64 { return s.caps.MaxFreqHz }

// MinPower returns the minimum supported output power in dBm.
func (s *Session) MinPower() float64 { return s.caps.MinPowerDBm }

// MaxPower returns the maximum supported output power in dBm.
func (s *Session) MaxPower() float64 { return s.caps.MaxPowerDBm }

// Capabilities returns a copy of the cached identity and envelope.
func (s *Session) Capabilities() Capabilities { return s.caps }

// Ping performs a fresh identification round-trip as a liveness check. The
// cached identity is not updated; a changed reply would mean a different
// unit, which a new session should handle.
func (s *Session) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.exchange(frame.IdentifyCommand{Field: frame.FieldModelName})
	return err
}

// SetFrequencyPowerTrigger programs the output frequency in Hz, the output
// power in dBm, and the trigger-out mode in one exchange.
//
// Both values are validated against the cached envelope first; a violation
// returns an OutOfRange error without touching the transport. Bounds are
// inclusive.
func (s *Session) SetFrequencyPowerTrigger(freqHz uint64, powerDBm float64, triggerEnabled bool) error {
	if freqHz < s.caps.MinFreqHz || freqHz > s.caps.MaxFreqHz {
		return newOutOfRangeError("frequency", "%d Hz outside [%d, %d] Hz",
			freqHz, s.caps.MinFreqHz, s.caps.MaxFreqHz)
	}
	// NaN compares false against both bounds, so non-finite values need an
	// explicit rejection before the interval check.
	if math.IsNaN(powerDBm) || math.IsInf(powerDBm, 0) {
		return newOutOfRangeError("power", "%v dBm is not a finite value", powerDBm)
	}
	if powerDBm < s.caps.MinPowerDBm || powerDBm > s.caps.MaxPowerDBm {
		return newOutOfRangeError("power", "%.2f dBm outside [%.2f, %.2f] dBm",
			powerDBm, s.caps.MinPowerDBm, s.caps.MaxPowerDBm)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.exchange(frame.SetFrequencyPowerCommand{
		FreqHz:         freqHz,
		PowerDBm:       powerDBm,
		TriggerEnabled: triggerEnabled,
	})
	if err != nil {
		return err
	}
	logging.Info("Output programmed",
		zap.Uint64("freq_hz", freqHz),
		zap.Float64("power_dbm", powerDBm),
		zap.Bool("trigger", triggerEnabled),
	)
	return nil
}

// SetRFPower enables or disables the RF output stage. No numeric range
// applies, so the command always goes to the wire.
func (s *Session) SetRFPower(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.exchange(frame.SetRFPowerCommand{On: on})
	if err != nil {
		return err
	}
	logging.Info("RF output switched", zap.Bool("on", on))
	return nil
}

// Status queries the current operating state. Always a fresh round-trip:
// the generator's state can change from external triggers or front-panel
// actions, so nothing here is ever cached.
func (s *Session) Status() (*frame.DeviceStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.exchange(frame.StatusCommand{})
	if err != nil {
		return nil, err
	}
	st, err := resp.DecodeStatus()
	if err != nil {
		return nil, newProtocolError(err)
	}
	return st, nil
}

// Close releases the device handle. Safe to call more than once; operations
// after Close fail with a Closed error.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.tr.Close()
}
