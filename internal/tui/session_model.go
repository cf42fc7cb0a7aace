package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yumesaka/playtrack/internal/models"
	"github.com/yumesaka/playtrack/internal/tracker"
)

// SessionModel renders a live play session: the game being
// tracked, a big clock driven by heartbeat events from the bus,
// and the session outcome once the process exits.
type SessionModel struct {
	width  int
	height int

	game         *models.Game
	sub          *tracker.Subscription
	spin         spinner.Model
	recordedFeed <-chan int

	startedAt    time.Time
	totalSeconds int64

	ended     bool
	recorded  int
	detaching bool
}

// sessionEventMsg wraps one bus event for the update loop.
type sessionEventMsg tracker.Event

// sessionFeedClosedMsg is sent when the subscription tears down.
type sessionFeedClosedMsg struct{}

// recordedMsg carries the minutes persisted for the finished
// session, delivered by the lifecycle listener's observer hook.
type recordedMsg int

// NewSessionModel creates a live session TUI model. recorded
// receives the observer's minutesRecorded value after the session
// closes.
func NewSessionModel(game *models.Game, sub *tracker.Subscription, recorded <-chan int) SessionModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	return SessionModel{
		game:         game,
		sub:          sub,
		spin:         sp,
		recordedFeed: recorded,
		startedAt:    time.Now(),
		recorded:     -1,
	}
}

// waitForEvent blocks on the next bus event.
func waitForEvent(sub *tracker.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-sub.C:
			return sessionEventMsg(ev)
		case <-sub.Done():
			return sessionFeedClosedMsg{}
		}
	}
}

// waitForRecorded blocks on the observer's session outcome.
func waitForRecorded(recorded <-chan int) tea.Cmd {
	return func() tea.Msg {
		minutes, ok := <-recorded
		if !ok {
			return recordedMsg(0)
		}
		return recordedMsg(minutes)
	}
}

// Init starts the spinner and the event feed.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitForEvent(m.sub))
}

// Update handles messages
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEventMsg:
		ev := tracker.Event(msg)
		switch ev.Kind {
		case tracker.SessionStarted:
			m.startedAt = time.Unix(ev.StartTime, 0)
		case tracker.TimeUpdate:
			m.totalSeconds = ev.TotalSeconds
		case tracker.SessionEnded:
			m.ended = true
			m.totalSeconds = ev.TotalSeconds
			return m, waitForRecorded(m.recordedFeed)
		}
		return m, waitForEvent(m.sub)

	case recordedMsg:
		m.recorded = int(msg)
		return m, tea.Quit

	case sessionFeedClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			// Detach the UI; tracking continues headless.
			m.detaching = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// Detached reports whether the user left the UI while the game was
// still running.
func (m SessionModel) Detached() bool {
	return m.detaching && !m.ended
}

// Recorded returns the minutes persisted for the session, or -1
// when the session had not closed before the UI exited.
func (m SessionModel) Recorded() int {
	if !m.ended {
		return -1
	}
	return m.recorded
}

// View renders the live session screen
func (m SessionModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	helpBar := m.renderHelpBar()
	contentHeight := m.height - 2

	var components []string

	headerText := fmt.Sprintf("%s TRACKING PLAYTIME %s", m.spin.View(), m.spin.View())
	if m.ended {
		headerText = "SESSION ENDED"
	}
	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, headerStyle.Render(headerText))

	idStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentMain)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, idStyle.Render(fmt.Sprintf("#%d", m.game.ID)))

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Bold(true).
		Align(lipgloss.Center).
		Width(m.width)
	title := m.game.Title
	if len(title) > m.width-4 && m.width > 7 {
		title = title[:m.width-7] + "..."
	}
	components = append(components, titleStyle.Render(title))

	clock := renderBigClock(m.totalSeconds)
	clockContent := ""
	for _, line := range strings.Split(clock, "\n") {
		clockContent += lipgloss.NewStyle().
			Align(lipgloss.Center).
			Width(m.width).
			Render(line) + "\n"
	}
	components = append(components, strings.TrimRight(clockContent, "\n"))

	infoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)
	components = append(components, infoStyle.Render(fmt.Sprintf("Started at %s", m.startedAt.Format("15:04:05"))))

	content := strings.Join(components, "\n\n")

	panelStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Align(lipgloss.Center, lipgloss.Center)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		panelStyle.Render(content),
		helpBar,
	)
}

// renderHelpBar renders the bottom key hints
func (m SessionModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Align(lipgloss.Center).
		Width(m.width)
	return helpStyle.Render("Q/ESC detach (tracking continues)")
}

// renderBigClock renders the elapsed active time as ASCII art
func renderBigClock(totalSeconds int64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds / 60) % 60
	seconds := totalSeconds % 60

	timeStr := fmt.Sprintf("%02d:%02d", minutes, seconds)
	if hours > 0 {
		timeStr = fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}

	// ASCII art for digits (5x5 characters each)
	digits := map[rune][]string{
		'0': {" ███ ", "█   █", "█   █", "█   █", " ███ "},
		'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
		'2': {" ███ ", "█   █", "   █ ", "  █  ", "█████"},
		'3': {" ███ ", "█   █", "  ██ ", "█   █", " ███ "},
		'4': {"█   █", "█   █", "█████", "    █", "    █"},
		'5': {"█████", "█    ", "████ ", "    █", "████ "},
		'6': {" ███ ", "█    ", "████ ", "█   █", " ███ "},
		'7': {"█████", "    █", "   █ ", "  █  ", " █   "},
		'8': {" ███ ", "█   █", " ███ ", "█   █", " ███ "},
		'9': {" ███ ", "█   █", " ████", "    █", " ███ "},
		':': {"     ", "  █  ", "     ", "  █  ", "     "},
	}

	var lines [5]strings.Builder
	for _, char := range timeStr {
		art, ok := digits[char]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			lines[i].WriteString(art[i])
			lines[i].WriteString(" ")
		}
	}

	clockStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true)

	var result strings.Builder
	for i := 0; i < 5; i++ {
		result.WriteString(clockStyle.Render(lines[i].String()))
		if i < 4 {
			result.WriteString("\n")
		}
	}

	return result.String()
}
