package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nodelens/nodelens/pkg/explore"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.inspecting {
		return m.inspectContent
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewSearch())
	b.WriteString("\n")

	listPane := m.theme.Pane.Render(m.viewNodeList())
	detailPane := m.theme.Pane.Render(m.viewDetail())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane))
	b.WriteString("\n")
	b.WriteString(m.viewStatus())

	return b.String()
}

func (m Model) viewHeader() string {
	title := m.theme.Header.Render("nodelens")
	src := ""
	if m.sourcePath != "" {
		src = m.theme.SubtleText.Render("  " + m.sourcePath)
	}
	counts := m.theme.SubtleText.Render(
		fmt.Sprintf("  %d nodes / %d edges", m.graph.NodeCount(), m.graph.EdgeCount()))
	return title + src + counts
}

func (m Model) viewSearch() string {
	line := m.searchInput.View()

	st := m.controller.State()
	if st.Suggestions == nil {
		return line
	}
	if len(st.Suggestions) == 0 {
		return line + "\n" + m.theme.MutedText.Render("  no matches")
	}

	labels := make([]string, 0, len(st.Suggestions))
	for id := range st.Suggestions {
		label, ok := m.graph.Label(id)
		if !ok {
			continue
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	const maxShown = 8
	shown := labels
	more := ""
	if len(shown) > maxShown {
		more = fmt.Sprintf(" (+%d more)", len(shown)-maxShown)
		shown = shown[:maxShown]
	}
	return line + "\n" + m.theme.MatchedText.Render("  "+strings.Join(shown, ", ")+more)
}

func (m Model) viewNodeList() string {
	frame := m.engine.Frame()
	st := m.controller.State()

	listWidth := m.paneWidth()
	var rows []string
	for i, n := range frame.Nodes {
		rows = append(rows, m.renderNodeRow(i, n.ID, n.Display, st, listWidth))
	}
	if len(rows) == 0 {
		return m.theme.MutedText.Render("empty graph")
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderNodeRow(i int, id string, d explore.Display, st *explore.State, width int) string {
	marker := "  "
	switch {
	case st.ClickMode && id == st.ClickedNode:
		marker = m.theme.PinnedMark.Render("● ")
	case d.Highlighted:
		marker = m.theme.MatchedText.Render("▸ ")
	}

	label := d.Label
	if label == "" {
		// Dimmed nodes lose their label but keep a muted id so the row
		// remains navigable.
		label = id
	}
	text := truncate(label, width-4)

	var styled string
	switch {
	case i == m.cursor:
		styled = m.theme.Selected.Render(text)
	case d.Label == "":
		styled = m.theme.MutedText.Render(text)
	case d.Highlighted:
		styled = m.theme.MatchedText.Render(text)
	default:
		styled = m.theme.Base.Render(text)
	}

	return marker + styled
}

func (m Model) viewDetail() string {
	st := m.controller.State()

	id := ""
	heading := ""
	switch {
	case st.ClickMode:
		id = st.ClickedNode
		heading = "pinned"
	case st.HoveredNode != "":
		id = st.HoveredNode
		heading = "hovered"
	case st.SelectedNode != "":
		id = st.SelectedNode
		heading = "selected"
	}
	if id == "" {
		return m.theme.MutedText.Render("hover or pin a node\nto see its neighborhood")
	}

	label, _ := m.graph.Label(id)
	var b strings.Builder
	b.WriteString(m.theme.Header.Render(label))
	b.WriteString("\n")
	b.WriteString(m.theme.SubtleText.Render(fmt.Sprintf("%s · %s", id, heading)))
	b.WriteString("\n")
	b.WriteString(m.theme.SubtleText.Render(
		fmt.Sprintf("rank %.3f · degree %d", m.scores.PageRank[id], m.scores.Degree[id])))
	b.WriteString("\n\n")

	neighbors := m.graph.Neighbors(id)
	if len(neighbors) == 0 {
		b.WriteString(m.theme.MutedText.Render("no neighbors"))
		return b.String()
	}

	b.WriteString(m.theme.SubtleText.Render(fmt.Sprintf("neighbors (%d)", len(neighbors))))
	b.WriteString("\n")
	ids := make([]string, 0, len(neighbors))
	for nid := range neighbors {
		ids = append(ids, nid)
	}
	for _, nid := range m.scores.ByProminence(ids) {
		nlabel, ok := m.graph.Label(nid)
		if !ok {
			continue
		}
		b.WriteString("  " + m.theme.Base.Render(truncate(nlabel, m.paneWidth()-4)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewStatus() string {
	if m.statusMsg != "" {
		return m.theme.StatusBar.Render(" " + m.statusMsg)
	}
	help := " / search · j/k move · enter pin · o inspect · y yank · s snapshot · q quit"
	return m.theme.StatusBar.Render(help)
}

func (m Model) paneWidth() int {
	if m.width <= 0 {
		return 40
	}
	w := m.width/2 - 4
	if w < 20 {
		w = 20
	}
	return w
}
