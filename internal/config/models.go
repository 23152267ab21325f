package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for generators and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device serial number
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single generator.
// This is keyed by the device's serial number in the Registry.
type Device struct {
	Nickname  string    `yaml:"nickname,omitempty"`   // User-friendly name
	LastModel string    `yaml:"last_model,omitempty"` // Model string from the last session
	LastSeen  time.Time `yaml:"last_seen,omitempty"`  // Last successful session time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ReadTimeoutMS int    `yaml:"read_timeout_ms"` // Per-exchange read timeout in milliseconds
	DefaultFormat string `yaml:"default_format"`  // Default output format: "text" or "json"
	LogLevel      string `yaml:"log_level"`       // Default log level when SSGCTL_LOG_LEVEL is unset
}

// Default preference values.
const (
	DefaultReadTimeoutMS = 500
	DefaultFormat        = "text"
)

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			ReadTimeoutMS: DefaultReadTimeoutMS,
			DefaultFormat: DefaultFormat,
		},
	}
}

// GetDevice retrieves device metadata by serial number.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(serial string) *Device {
	return r.Devices[serial]
}

// EnsureDevice ensures a device entry exists in the registry.
// If the device doesn't exist, creates a new entry with default values.
// Returns the device entry (existing or newly created).
func (r *Registry) EnsureDevice(serial string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}

	if device, exists := r.Devices[serial]; exists {
		return device
	}

	device := &Device{}
	r.Devices[serial] = device
	return device
}

// UpdateDeviceSeen records a successful session: the current time and the
// model string the device reported.
func (r *Registry) UpdateDeviceSeen(serial, model string) {
	device := r.EnsureDevice(serial)
	device.LastSeen = time.Now()
	device.LastModel = model
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(serial, nickname string) {
	device := r.EnsureDevice(serial)
	device.Nickname = nickname
}

// DisplayName returns the nickname if one is set, otherwise the serial.
func (r *Registry) DisplayName(serial string) string {
	if device := r.GetDevice(serial); device != nil && device.Nickname != "" {
		return device.Nickname
	}
	return serial
}
