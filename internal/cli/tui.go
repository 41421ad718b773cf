package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tocview/pkg/highlight"
	"github.com/matzehuels/tocview/pkg/layout"
	"github.com/matzehuels/tocview/pkg/render/sink"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Explorer styles
var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
	cardCursorStyle      = cardStyle.BorderForeground(colorWhite).Border(lipgloss.ThickBorder())
	cardHighlightedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4338ca"))
	cardHoveredStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1"))
	cardFadedStyle       = lipgloss.NewStyle().Foreground(colorDim)
	cardDetailStyle      = lipgloss.NewStyle().Foreground(colorGray)
)

const minColumnWidth = 16

// =============================================================================
// ExplorerModel - Interactive diagram explorer
// =============================================================================

// ExplorerModel is the bubbletea model for the view command. The cursor is
// the hovered node: moving it previews that node's neighbours, and space
// pins or unpins it.
type ExplorerModel struct {
	Graph    *toc.Graph
	State    highlight.State
	Expanded toc.Set

	col, row int
	width    int
	title    string
}

// NewExplorerModel creates an explorer with seeds pinned and the cursor on
// the first node.
func NewExplorerModel(g *toc.Graph, title string, seeds []string) ExplorerModel {
	m := ExplorerModel{
		Graph:    g,
		State:    highlight.NewState(seeds...),
		Expanded: toc.Set{},
		width:    120,
		title:    title,
	}
	m.col = m.nextColumn(-1, 1)
	if m.col < 0 {
		m.col = 0
	}
	m.hover()
	return m
}

func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.row > 0 {
				m.row--
			}
		case "down", "j":
			if m.row < len(m.nodes(m.col))-1 {
				m.row++
			}
		case "left", "h":
			if c := m.nextColumn(m.col, -1); c >= 0 {
				m.col = c
				m.clampRow()
			}
		case "right", "l":
			if c := m.nextColumn(m.col, 1); c >= 0 {
				m.col = c
				m.clampRow()
			}
		case " ", "enter":
			if id := m.Current(); id != "" {
				m.State.Toggle(id)
			}
		case "e":
			if id := m.Current(); id != "" {
				if m.Expanded.Has(id) {
					m.Expanded.Remove(id)
				} else {
					m.Expanded.Add(id)
				}
			}
		case "c":
			m.State.Clear()
		}
		m.hover()
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// Current returns the ID of the node under the cursor, or "" for an empty
// diagram.
func (m ExplorerModel) Current() string {
	nodes := m.nodes(m.col)
	if m.row < 0 || m.row >= len(nodes) {
		return ""
	}
	return nodes[m.row].ID
}

func (m *ExplorerModel) hover() {
	if id := m.Current(); id != "" {
		m.State.Hover(id)
	} else {
		m.State.Leave()
	}
}

func (m *ExplorerModel) clampRow() {
	if n := len(m.nodes(m.col)); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m ExplorerModel) nodes(col int) []toc.Node {
	c, ok := m.Graph.Column(col)
	if !ok {
		return nil
	}
	return c.Nodes
}

// nextColumn returns the nearest non-empty column after from in direction
// step, or -1.
func (m ExplorerModel) nextColumn(from, step int) int {
	for c := from + step; c >= 0 && c < m.Graph.ColumnCount(); c += step {
		if len(m.nodes(c)) > 0 {
			return c
		}
	}
	return -1
}

func (m ExplorerModel) View() string {
	var b strings.Builder

	title := m.title
	if title == "" {
		title = "Theory of Change"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←↑↓→ move  space pin  e expand  c clear  q quit"))
	b.WriteString("\n\n")

	snap := highlight.Resolve(m.Graph, m.State)
	n := m.Graph.ColumnCount()
	if n == 0 {
		b.WriteString(listDimStyle.Render("empty diagram"))
		return b.String()
	}

	colWidth := m.width/n - 2
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	cols := make([]string, n)
	for i, col := range m.Graph.Columns() {
		cols[i] = m.renderColumn(i, n, col, snap, colWidth)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n\n")
	b.WriteString(m.status(snap))

	return b.String()
}

func (m ExplorerModel) renderColumn(i, n int, col toc.Column, snap highlight.Snapshot, width int) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(sink.HeaderColor(i, n))).
		Width(width).
		Align(lipgloss.Center).
		Render(col.Title)

	parts := []string{header}
	for r, node := range col.Nodes {
		parts = append(parts, m.renderCard(node, snap, width, i == m.col && r == m.row))
	}
	return lipgloss.NewStyle().MarginRight(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m ExplorerModel) renderCard(node toc.Node, snap highlight.Snapshot, width int, cursor bool) string {
	label := node.Title
	if label == "" {
		label = node.ID
	}
	inner := width - 4
	lines := layout.Wrap(label, inner)
	if m.Expanded.Has(node.ID) && node.HasDetail() {
		for _, l := range layout.Wrap(node.Text, inner) {
			lines = append(lines, cardDetailStyle.Render(l))
		}
	}
	text := strings.Join(lines, "\n")

	style := snap.NodeStyle(node.ID)
	switch {
	case style.Faded:
		text = cardFadedStyle.Render(text)
	case style.State == highlight.NodeHighlighted:
		text = cardHighlightedStyle.Render(text)
	case style.State == highlight.NodeHovered || snap.Neighbors.Has(node.ID):
		text = cardHoveredStyle.Render(text)
	}

	box := cardStyle
	if cursor {
		box = cardCursorStyle
	}
	return box.Width(width - 2).Render(text)
}

func (m ExplorerModel) status(snap highlight.Snapshot) string {
	parts := []string{fmt.Sprintf("%d pinned", snap.Seeds.Len())}
	if snap.Seeds.Len() > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d connected", snap.Connected.Len(), m.Graph.NodeCount()))
	}
	if snap.Focus != "" {
		parts = append(parts, fmt.Sprintf("%s: %d neighbours", snap.Focus, snap.Neighbors.Len()-1))
	}
	return listDimStyle.Render(strings.Join(parts, " · "))
}

// listDimStyle is used for help and status lines.
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
