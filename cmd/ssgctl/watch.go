package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rfbench/ssgctl/internal/ui"
)

var watchInterval time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Second, "Polling interval")
	rootCmd.AddCommand(watchCmd)
}

// watchCmd polls the generator and displays a live status line
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the generator's status live",
	Long: `Poll the generator at a fixed interval and display a live status line.

Each poll is a real device round trip, so state changes made from the
front panel or by external triggers show up within one interval.
Press q to quit.`,
	Example: `  # Poll every second (default)
  ssgctl watch

  # Faster polling on a specific unit
  ssgctl watch --device 11902250021 --interval 250ms`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchInterval < 50*time.Millisecond {
		return fmt.Errorf("interval %s is too short (minimum 50ms)", watchInterval)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	title := fmt.Sprintf("%s  %s", s.ModelName(), s.SerialNumber())
	model := ui.NewWatchModel(title, watchInterval, func() (string, error) {
		st, err := s.Status()
		if err != nil {
			return "", err
		}
		return ui.RenderStatusLine(st), nil
	})

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}
