package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rfbench/ssgctl/internal/discovery"
	"github.com/rfbench/ssgctl/internal/frame"
	"github.com/rfbench/ssgctl/internal/session"
	"github.com/rfbench/ssgctl/internal/units"
)

// RenderStatus renders the generator's current output state as a panel.
func RenderStatus(caps *session.Capabilities, st *frame.DeviceStatus, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string
	lines = append(lines, TitleStyle.Render(caps.Model+"  "+caps.Serial))
	lines = append(lines, MutedStyle.Render(strings.Repeat("─", width-8)))
	lines = append(lines, field("RF Output", renderRFState(st.RFEnabled)))
	lines = append(lines, field("Frequency", units.FormatFrequency(st.FreqHz)))
	lines = append(lines, field("Power", units.FormatPower(st.PowerDBm)))
	lines = append(lines, field("Trigger", renderEnabled(st.TriggerEnabled)))
	lines = append(lines, field("Faults", renderFaults(st.Faults)))

	return PanelStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderStatusLine renders a one-line status summary for the watch view.
func RenderStatusLine(st *frame.DeviceStatus) string {
	parts := []string{
		renderRFState(st.RFEnabled),
		ValueStyle.Render(units.FormatFrequency(st.FreqHz)),
		ValueStyle.Render(units.FormatPower(st.PowerDBm)),
	}
	if st.TriggerEnabled {
		parts = append(parts, MutedStyle.Render("trigger"))
	}
	if st.Faults != 0 {
		parts = append(parts, FaultStyle.Render(st.Faults.String()))
	}
	return strings.Join(parts, "  ")
}

// RenderCapabilities renders the device identity and programmable envelope.
func RenderCapabilities(caps *session.Capabilities, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string
	lines = append(lines, TitleStyle.Render(caps.Model))
	lines = append(lines, MutedStyle.Render(strings.Repeat("─", width-8)))
	lines = append(lines, field("Serial", caps.Serial))
	lines = append(lines, field("Frequency", fmt.Sprintf("%s to %s",
		units.FormatFrequency(caps.MinFreqHz), units.FormatFrequency(caps.MaxFreqHz))))
	lines = append(lines, field("Power", fmt.Sprintf("%s to %s",
		units.FormatPower(caps.MinPowerDBm), units.FormatPower(caps.MaxPowerDBm))))

	return PanelStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderDeviceList renders scan results as an aligned table. nickname looks
// up a user-assigned name by serial and may be nil.
func RenderDeviceList(devices []*discovery.Device, nickname func(serial string) string) string {
	if len(devices) == 0 {
		return MutedStyle.Render("No generators found.")
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-14s %-14s %-10s %s", "SERIAL", "NICKNAME", "FIRMWARE", "PRODUCT")
	b.WriteString(MutedStyle.Render(header))
	b.WriteString("\n")

	for _, d := range devices {
		name := ""
		if nickname != nil {
			if n := nickname(d.Serial); n != d.Serial {
				name = n
			}
		}
		line := fmt.Sprintf("  %-14s %-14s %-10s %s", d.Serial, name, d.FirmwareVersion(), d.Product)
		b.WriteString(ValueStyle.Render(line))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders an error banner box.
func RenderError(title string, err error, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string
	lines = append(lines, ErrorTitleStyle.Render("✗  "+title))
	if err != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(ErrorColor).Render(err.Error()))
	}
	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}

func field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + value
}

func renderRFState(on bool) string {
	if on {
		return OnStyle.Render("ON")
	}
	return OffStyle.Render("OFF")
}

func renderEnabled(on bool) string {
	if on {
		return ValueStyle.Render("enabled")
	}
	return MutedStyle.Render("disabled")
}

func renderFaults(m frame.FaultMask) string {
	if m == 0 {
		return OKStyle.Render("none")
	}
	return FaultStyle.Render(m.String())
}
