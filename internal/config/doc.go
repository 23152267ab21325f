// Package config provides user configuration management for ssgctl.
//
// This package manages a YAML-based configuration file that stores
// user-defined metadata for known generators, keyed by serial number, along
// with application preferences. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/ssgctl/config.yaml or $HOME/.config/ssgctl/config.yaml
//   - macOS: $HOME/.config/ssgctl/config.yaml
//   - Windows: %LOCALAPPDATA%\ssgctl\config.yaml
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Record a generator the user just connected to
//	registry.UpdateDeviceSeen("11902250021", "SSG-6000RC")
//	registry.SetDeviceNickname("11902250021", "bench-6g")
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across
// goroutines. File operations are protected by a mutex to ensure atomic
// writes.
package config
