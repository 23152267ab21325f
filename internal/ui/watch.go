package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PollFunc fetches a fresh status line for the watch view.
type PollFunc func() (line string, err error)

// statusMsg carries one poll result into the model.
type statusMsg struct {
	line string
	err  error
}

type tickMsg time.Time

// WatchModel is a Bubble Tea model that polls the generator at a fixed
// interval and displays the latest status line. The generator's state can
// change underneath us from front-panel actions, so every tick is a real
// device round trip.
type WatchModel struct {
	title    string
	poll     PollFunc
	interval time.Duration

	spinner spinner.Model
	line    string
	err     error
	polls   int
	width   int
}

// NewWatchModel creates a watch model polling at the given interval.
func NewWatchModel(title string, interval time.Duration, poll PollFunc) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(PrimaryColor)

	return WatchModel{
		title:    title,
		poll:     poll,
		interval: interval,
		spinner:  sp,
		width:    GetTerminalWidth(),
	}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.doPoll())
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width < MinTerminalWidth {
			m.width = MinTerminalWidth
		}
		if m.width > MaxContentWidth {
			m.width = MaxContentWidth
		}
		return m, nil

	case statusMsg:
		m.polls++
		m.line = msg.line
		m.err = msg.err
		return m, m.scheduleTick()

	case tickMsg:
		return m, m.doPoll()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.err != nil {
		b.WriteString(ErrorTitleStyle.Render(m.err.Error()))
	} else if m.line == "" {
		b.WriteString(MutedStyle.Render("waiting for device..."))
	} else {
		b.WriteString(m.line)
	}
	b.WriteString("\n\n")

	b.WriteString(MutedStyle.Render(fmt.Sprintf("  every %s, %d polls  ·  q to quit", m.interval, m.polls)))
	b.WriteString("\n")
	return b.String()
}

func (m WatchModel) doPoll() tea.Cmd {
	return func() tea.Msg {
		line, err := m.poll()
		return statusMsg{line: line, err: err}
	}
}

func (m WatchModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
