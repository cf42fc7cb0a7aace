package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yumesaka/playtrack/internal/models"
	"github.com/yumesaka/playtrack/internal/tracker"
)

// RunSessionTUI shows the live session screen until the session
// ends or the user detaches. It returns the recorded minutes, or
// -1 when the UI was left before the session closed.
func RunSessionTUI(game *models.Game, bus *tracker.Bus, recorded <-chan int) (int, error) {
	sub := bus.Subscribe()
	defer sub.Cancel()

	model := NewSessionModel(game, sub, recorded)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return -1, err
	}

	m, ok := finalModel.(SessionModel)
	if !ok {
		return -1, nil
	}

	if m.Detached() {
		fmt.Println("👋 Detached from session UI, tracking continues in the background.")
		return -1, nil
	}

	return m.Recorded(), nil
}
