package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View satisfies tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading...\n"
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	status := m.renderStatus()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	listPane := m.styles.List.Width(m.width/2 - 2).Height(bodyHeight).Render(m.entryList.View())

	flameWidth := m.width - m.width/2 - 4
	if flameWidth < 1 {
		flameWidth = 1
	}
	var selectedID string
	if cur, ok := m.cursor.Current(); ok {
		selectedID = cur.Node.ID
	}
	flamePane := m.styles.Flame.Width(flameWidth).Height(bodyHeight).
		Render(RenderFlameBar(m.root, flameWidth-2, selectedID))

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, flamePane)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	exp := explanationFor(m.metadata.Kind)
	text := fmt.Sprintf("%s\n%s  (%s)", m.sourceInfo, exp.Title, m.metadata.Unit)
	return m.styles.Header.Width(m.width - 2).Render(text)
}

func (m Model) renderStatus() string {
	parts := []string{
		fmt.Sprintf("sort: %s", m.sort),
		fmt.Sprintf("frames: %d", len(m.entries)),
	}
	if m.isLiveMode {
		state := "live"
		if m.isPaused {
			state = "paused"
		}
		parts = append(parts, state)
	}
	if m.lastError != nil {
		parts = append(parts, "error: "+m.lastError.Error())
	}
	parts = append(parts, "? help  q quit")
	return m.styles.Status.Width(m.width - 2).Render(strings.Join(parts, "   "))
}

func (m Model) renderHelp() string {
	exp := explanationFor(m.metadata.Kind)
	body := fmt.Sprintf("%s\n\n%s\n\n%s\n\nKeys:\n  up/down, j/k  move selection\n  g/G           first/last\n  enter         sync flame graph to selection\n  s             cycle sort (self/total/name)\n  p             pause live polling\n  ?             toggle this help\n  q             quit\n",
		exp.Title, exp.Description, flatVsCumExplanation)
	return m.styles.Base.Width(m.width).Height(m.height).Render(body)
}
