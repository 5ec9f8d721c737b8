package tui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"trendbrief/internal/runs"
)

// model is the run browser state: a list of run IDs on the left, the
// selected run's artifacts on the right.
type model struct {
	dataDir     string
	runIDs      []string
	selectedIdx int
	width       int
	height      int
	quitting    bool
}

// InitialModel loads the run list for dataDir.
func InitialModel(dataDir string) model {
	ids, _ := runs.List(dataDir)
	return model{
		dataDir: dataDir,
		runIDs:  ids,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// Update handles key and resize messages.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "down", "j":
			if m.selectedIdx < len(m.runIDs)-1 {
				m.selectedIdx++
			}
		}
	}

	return m, nil
}

// View renders the two-pane run browser.
func (m model) View() string {
	if m.quitting {
		return "Quitting...\n"
	}

	docStyle := lipgloss.NewStyle().Margin(1, 2)
	listStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(m.width/3 - 4)
	detailStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(1).Width(2*m.width/3 - 4)

	listContent := "Runs\n\n"
	if len(m.runIDs) == 0 {
		listContent += "No runs yet. Start one with `trendbrief run`."
	} else {
		for i, id := range m.runIDs {
			cursor := " "
			if i == m.selectedIdx {
				cursor = ">"
			}
			listContent += fmt.Sprintf("%s %s\n", cursor, id)
		}
	}

	detailContent := "Run Detail\n\n"
	if m.selectedIdx < len(m.runIDs) {
		detailContent += m.runDetail(m.runIDs[m.selectedIdx])
	} else {
		detailContent += "Nothing selected."
	}

	leftPane := listStyle.Render(listContent)
	rightPane := detailStyle.Render(detailContent)

	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	help := "\n\n[↑/k] Up | [↓/j] Down | [q] Quit"

	return docStyle.Render(mainContent + help)
}

// runDetail reports which pipeline stages have produced artifacts for the
// run, plus a preview of the brief if one exists.
func (m model) runDetail(runID string) string {
	root := filepath.Join(m.dataDir, "runs", runID)

	out := ""
	out += stageLine("ingested", globExists(filepath.Join(root, "all_*.json")))
	out += stageLine("context", fileExists(filepath.Join(root, "context", "context.json")))
	out += stageLine("brief", fileExists(filepath.Join(root, "outputs", "weekly_brief.md")))
	out += stageLine("document", fileExists(filepath.Join(root, "outputs", "weekly_brief.docx")))

	if data, err := os.ReadFile(filepath.Join(root, "outputs", "weekly_brief.md")); err == nil {
		preview := string(data)
		if len(preview) > 800 {
			preview = preview[:800] + "..."
		}
		out += "\n" + preview
	}
	return out
}

func stageLine(name string, done bool) string {
	mark := "[ ]"
	if done {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %s\n", mark, name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func globExists(pattern string) bool {
	matches, err := filepath.Glob(pattern)
	return err == nil && len(matches) > 0
}

// StartTUI initializes and starts the Bubble Tea application.
func StartTUI(dataDir string) {
	p := tea.NewProgram(InitialModel(dataDir), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
