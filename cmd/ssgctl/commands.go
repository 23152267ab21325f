package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rfbench/ssgctl/internal/config"
	"github.com/rfbench/ssgctl/internal/discovery"
	"github.com/rfbench/ssgctl/internal/logging"
	"github.com/rfbench/ssgctl/internal/session"
	"github.com/rfbench/ssgctl/internal/ui"
	"github.com/rfbench/ssgctl/internal/units"
)

// Command flags
var (
	deviceQuery    string
	readTimeoutMS  int
	outputFormat   string
	triggerEnabled bool
)

func init() {
	// Common flags for device commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&deviceQuery, "device", "", "Generator serial number, unique serial suffix, or nickname")
	rootCmd.PersistentFlags().IntVar(&readTimeoutMS, "timeout", 0, "Per-exchange read timeout in milliseconds (0 uses the configured default)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (text, compact, json)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(rfCmd)
	rootCmd.AddCommand(nicknameCmd)
}

// scanCmd lists all attached generators
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List attached SSG generators",
	Long: `Enumerate all SSG generators attached over USB.

Lists each unit's serial number, firmware version, and product string,
along with any nickname assigned via 'ssgctl nickname'.`,
	Example: `  # List attached generators
  ssgctl scan`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	devices, err := discovery.Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No generators found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the generator is connected and powered on")
		fmt.Println("  - Check the USB cable (some charge-only cables carry no data)")
		fmt.Println("  - Close other software that may have the device open")
		fmt.Println("  - On Linux, verify udev permissions for hidraw devices")
		return nil
	}

	nickname := func(serial string) string { return serial }
	if registry, err := config.LoadRegistry(); err == nil {
		nickname = registry.DisplayName
	}

	fmt.Printf("Found %d generator(s):\n\n", len(devices))
	fmt.Println(ui.RenderDeviceList(devices, nickname))
	fmt.Println()
	fmt.Println("Use 'ssgctl status --device <serial>' to query a unit")
	return nil
}

// infoCmd shows a generator's identity and programmable envelope
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show generator identity and capabilities",
	Long: `Connect to a generator and display its identity and envelope.

The model name, serial number, and the frequency and power ranges are
read once when the session opens; this command prints that snapshot.`,
	Example: `  # First attached generator
  ssgctl info

  # Specific unit, JSON output for scripting
  ssgctl info --device 11902250021 --format json`,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	caps := s.Capabilities()
	switch resolveFormat() {
	case "json":
		return printJSON(caps)
	default:
		fmt.Println(ui.RenderCapabilities(&caps, ui.GetTerminalWidth()))
	}
	return nil
}

// statusCmd queries the generator's current output state
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the generator's current output state",
	Long: `Query the generator for its current operating state.

Reports the RF output stage, programmed frequency and power, trigger
mode, and any active fault flags. Every invocation is a fresh device
round trip; nothing is cached.`,
	Example: `  # Styled status panel
  ssgctl status

  # One-line summary
  ssgctl status --format compact

  # JSON output for scripting
  ssgctl status --format json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	st, err := s.Status()
	if err != nil {
		return fmt.Errorf("status query failed: %w", err)
	}

	switch resolveFormat() {
	case "json":
		return printJSON(st)
	case "compact":
		fmt.Println(ui.RenderStatusLine(st))
	default:
		caps := s.Capabilities()
		fmt.Println(ui.RenderStatus(&caps, st, ui.GetTerminalWidth()))
	}
	return nil
}

// setCmd programs the output frequency, power, and trigger mode
var setCmd = &cobra.Command{
	Use:   "set <frequency> <power>",
	Short: "Program output frequency and power",
	Long: `Program the generator's output frequency and power in one command.

Frequency accepts a bare hertz count or a value with a Hz/kHz/MHz/GHz
suffix. Power is in dBm; a "dBm" suffix is accepted. Both values are
checked against the unit's own envelope before anything is transmitted,
so an out-of-range request never reaches the hardware.

Programming the output does not switch the RF stage on; use 'ssgctl rf on'.`,
	Example: `  # 2.4 GHz at -10 dBm
  ssgctl set 2.4GHz -- -10

  # 915 MHz at 0 dBm with trigger output enabled
  ssgctl set 915MHz 0 --trigger`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVar(&triggerEnabled, "trigger", false, "Enable the trigger output mode")
}

func runSet(cmd *cobra.Command, args []string) error {
	freqHz, err := units.ParseFrequency(args[0])
	if err != nil {
		return err
	}
	powerDBm, err := units.ParsePower(args[1])
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	if err := s.SetFrequencyPowerTrigger(freqHz, powerDBm, triggerEnabled); err != nil {
		if session.IsOutOfRange(err) {
			return fmt.Errorf("%w\n  %s supports %s to %s at %s to %s", err,
				s.ModelName(),
				units.FormatFrequency(s.MinFrequency()), units.FormatFrequency(s.MaxFrequency()),
				units.FormatPower(s.MinPower()), units.FormatPower(s.MaxPower()))
		}
		return err
	}

	fmt.Printf("✓ Output programmed: %s at %s", units.FormatFrequency(freqHz), units.FormatPower(powerDBm))
	if triggerEnabled {
		fmt.Print(", trigger enabled")
	}
	fmt.Println()
	return nil
}

// rfCmd switches the RF output stage
var rfCmd = &cobra.Command{
	Use:   "rf <on|off>",
	Short: "Switch the RF output stage on or off",
	Long: `Enable or disable the generator's RF output stage.

The command is idempotent: switching an already-on output on again is
transmitted and acknowledged but changes nothing.`,
	Example: `  ssgctl rf on
  ssgctl rf off`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runRF,
}

func runRF(cmd *cobra.Command, args []string) error {
	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
		on = false
	default:
		return fmt.Errorf("invalid argument %q (use on or off)", args[0])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	if err := s.SetRFPower(on); err != nil {
		return err
	}
	if on {
		fmt.Println("✓ RF output ON")
	} else {
		fmt.Println("✓ RF output OFF")
	}
	return nil
}

// nicknameCmd assigns a local nickname to a generator
var nicknameCmd = &cobra.Command{
	Use:   "nickname <serial> <name>",
	Short: "Assign a nickname to a generator",
	Long: `Assign a user-friendly nickname to a generator by serial number.

Nicknames are stored in the local configuration file and shown by
'ssgctl scan'. The device itself is not touched.`,
	Example: `  ssgctl nickname 11902250021 bench-6g`,
	Args:    cobra.ExactArgs(2),
	RunE:    runNickname,
}

func runNickname(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	registry.SetDeviceNickname(args[0], args[1])
	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("✓ %s is now %q\n", args[0], args[1])
	return nil
}

// openSession resolves the --device query and opens a session, recording the
// unit in the local registry on success.
func openSession() (*session.Session, error) {
	opts := session.Options{ReadTimeout: resolveTimeout()}

	if deviceQuery != "" {
		query := deviceQuery
		// A nickname assigned via 'ssgctl nickname' resolves to its serial.
		if registry, err := config.LoadRegistry(); err == nil {
			for serial, device := range registry.Devices {
				if device.Nickname == query {
					query = serial
					break
				}
			}
		}

		devices, err := discovery.Scan()
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		device, err := discovery.Resolve(devices, query)
		if err != nil {
			return nil, err
		}
		opts.Path = device.Path
	}

	s, err := session.Open(opts)
	if err != nil {
		return nil, err
	}

	logging.LogDeviceEvent(s.SerialNumber(), "opened")
	if registry, err := config.LoadRegistry(); err == nil {
		registry.UpdateDeviceSeen(s.SerialNumber(), s.ModelName())
		// Best effort; a read-only home directory should not break commands.
		_ = registry.Save()
	}
	return s, nil
}

func closeSession(s *session.Session) {
	logging.LogDeviceEvent(s.SerialNumber(), "closed")
	_ = s.Close()
}

// resolveTimeout picks the per-exchange read timeout: the --timeout flag
// wins, then the configured preference, then the session default.
func resolveTimeout() time.Duration {
	if readTimeoutMS > 0 {
		return time.Duration(readTimeoutMS) * time.Millisecond
	}
	if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil {
		return time.Duration(registry.Preferences.ReadTimeoutMS) * time.Millisecond
	}
	return 0
}

// resolveFormat picks the output format: the --format flag wins, then the
// configured preference.
func resolveFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil {
		return registry.Preferences.DefaultFormat
	}
	return config.DefaultFormat
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
