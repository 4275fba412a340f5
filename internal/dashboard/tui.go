package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bearwrap/internal/render"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	cleanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	issuesStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Run launches the dashboard and blocks until every analysis finished and
// the user quit. It returns the final task states.
func Run(ctx context.Context, paths []string, run RunFunc) ([]*Task, error) {
	program := tea.NewProgram(newModel(ctx, paths, run), tea.WithContext(ctx))
	finalModel, err := program.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(model).tasks, nil
}

type model struct {
	tasks    []*Task
	updates  <-chan TaskUpdate
	selected int
	viewport viewport.Model
	done     bool
	width    int
	height   int
}

func newModel(ctx context.Context, paths []string, run RunFunc) model {
	vp := viewport.New(0, 0)
	vp.SetContent("Select a file to view its diagnostics")
	tasks, updates := StartRuns(ctx, paths, run)
	return model{tasks: tasks, updates: updates, viewport: vp}
}

func (m model) Init() tea.Cmd {
	return m.listenUpdates()
}

type taskUpdateMsg TaskUpdate
type doneMsg struct{}

func (m model) listenUpdates() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.updates
		if !ok {
			return doneMsg{}
		}
		return taskUpdateMsg(update)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.done || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refreshViewport()
			}
		case "down", "j":
			if m.selected < len(m.tasks)-1 {
				m.selected++
				m.refreshViewport()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.detailWidth() - 4
		m.viewport.Height = msg.Height - 6
		m.refreshViewport()
	case taskUpdateMsg:
		if msg.Index == m.selected {
			m.refreshViewport()
		}
		return m, m.listenUpdates()
	case doneMsg:
		m.done = true
		m.refreshViewport()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var list strings.Builder
	for i, task := range m.tasks {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		line := marker + statusGlyph(task.Status()) + " " + task.Path
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		list.WriteString(line + "\n")
	}

	footer := mutedStyle.Render("j/k move · q quit")
	if !m.done {
		footer = mutedStyle.Render("analyzing…")
	}

	left := paneStyle.Width(m.listWidth()).Render(list.String())
	right := paneStyle.Width(m.detailWidth()).Render(m.viewport.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footer)
}

func (m *model) refreshViewport() {
	if m.selected >= len(m.tasks) {
		return
	}
	task := m.tasks[m.selected]
	switch task.Status() {
	case TaskPending:
		m.viewport.SetContent(mutedStyle.Render("pending"))
	case TaskRunning:
		m.viewport.SetContent(mutedStyle.Render("running…"))
	case TaskFailed:
		m.viewport.SetContent(failedStyle.Render(fmt.Sprintf("run failed: %v", task.Err())))
	case TaskClean:
		m.viewport.SetContent(cleanStyle.Render("no issues"))
	default:
		var sb strings.Builder
		for _, d := range task.Diagnostics() {
			sb.WriteString(render.PlainString(d) + "\n")
		}
		m.viewport.SetContent(sb.String())
	}
}

func (m model) listWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (m model) detailWidth() int {
	w := m.width - m.listWidth() - 2
	if w < 20 {
		w = 20
	}
	return w
}

func statusGlyph(s TaskStatus) string {
	switch s {
	case TaskRunning:
		return issuesStyle.Render("○")
	case TaskClean:
		return cleanStyle.Render("✓")
	case TaskIssues:
		return issuesStyle.Render("!")
	case TaskFailed:
		return failedStyle.Render("✗")
	default:
		return mutedStyle.Render("·")
	}
}
