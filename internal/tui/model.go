// internal/tui/model.go
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/modelcompare/internal/logging"
	"github.com/mwiater/modelcompare/internal/report"
)

// PageBuilder produces report pages. *report.Builder satisfies it.
type PageBuilder interface {
	Build(id report.PageID) (report.Page, error)
}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Reload key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Reload, k.Up, k.Down, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next page")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab/←", "prev page")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var (
	activeTab   = lipgloss.NewStyle().Background(lipgloss.Color("#636EFA")).Foreground(lipgloss.Color("#FFFFFF")).Bold(true).Padding(0, 1)
	inactiveTab = lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("0")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
)

// pageLoadedMsg carries the result of building a page. seq identifies the
// load request; only the latest one is applied.
type pageLoadedMsg struct {
	id   report.PageID
	seq  int
	page report.Page
	err  error
}

// model is the Bubble Tea model of the report viewer.
type model struct {
	builder       PageBuilder
	current       int
	page          report.Page
	err           error
	loading       bool
	seq           int
	viewport      viewport.Model
	help          help.Model
	keys          keyMap
	width, height int
}

func initialModel(builder PageBuilder) *model {
	return &model{
		builder:  builder,
		loading:  true,
		viewport: viewport.New(120, 20),
		help:     help.New(),
		keys:     defaultKeys,
		width:    120,
		height:   24,
	}
}

func (m *model) currentID() report.PageID {
	return report.Pages[m.current]
}

// loadPageCmd builds the page off the update loop, so every switch or reload
// reruns the whole pipeline.
func loadPageCmd(builder PageBuilder, id report.PageID, seq int) tea.Cmd {
	return func() tea.Msg {
		page, err := builder.Build(id)
		return pageLoadedMsg{id: id, seq: seq, page: page, err: err}
	}
}

// requestLoad starts a new load of the current page and supersedes any load
// still in flight.
func (m *model) requestLoad() tea.Cmd {
	m.seq++
	m.loading = true
	return loadPageCmd(m.builder, m.currentID(), m.seq)
}

func (m *model) Init() tea.Cmd {
	return loadPageCmd(m.builder, m.currentID(), m.seq)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-4)
		m.refreshContent()
		return m, nil

	case pageLoadedMsg:
		if msg.seq != m.seq || msg.id != m.currentID() {
			return m, nil
		}
		m.loading = false
		m.page, m.err = msg.page, msg.err
		if msg.err != nil {
			logging.LogError("build page", msg.err)
		}
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.switchPage(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.switchPage(-1)
		case key.Matches(msg, m.keys.Reload):
			return m, m.requestLoad()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) switchPage(delta int) tea.Cmd {
	n := len(report.Pages)
	m.current = ((m.current+delta)%n + n) % n
	cmd := m.requestLoad()
	m.page, m.err = report.Page{}, nil
	m.refreshContent()
	return cmd
}

func (m *model) refreshContent() {
	switch {
	case m.loading:
		m.viewport.SetContent("Loading " + m.currentID().Label() + "...")
	case m.err != nil:
		m.viewport.SetContent(errorStyle.Render(fmt.Sprintf("%s could not be generated from the current metrics file.", m.currentID().Label())) +
			"\n\n" + m.err.Error())
	default:
		m.viewport.SetContent(RenderPage(m.page, m.width))
	}
}

func (m *model) View() string {
	tabs := make([]string, 0, len(report.Pages))
	for i, id := range report.Pages {
		style := inactiveTab
		if i == m.current {
			style = activeTab
		}
		tabs = append(tabs, style.Render(id.Label()))
	}
	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the interactive viewer and blocks until the user quits or ctx ends.
func Run(ctx context.Context, builder PageBuilder) error {
	p := tea.NewProgram(initialModel(builder), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
