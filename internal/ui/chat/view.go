// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete view: header, transcript row (history
// panel plus viewport in wide layouts), input area, status bar.
func (m Model) renderChat() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	input := m.renderInput()
	status := m.renderStatusBar()

	transcript := m.viewport.View()
	row := transcript
	if m.historyVisible() {
		row = lipgloss.JoinHorizontal(lipgloss.Top, m.history.View(), transcript)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, row, input, status)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("polichat")
	hint := m.theme.HeaderHint.Render("policy assistant")

	line := title + "  " + hint
	return m.theme.Header.Width(m.width).Render(line)
}

// =============================================================================
// INPUT AREA
// =============================================================================

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m Model) renderStatusBar() string {
	var parts []string

	switch {
	case m.orch.InFlight():
		parts = append(parts, m.spinner.View()+" "+m.theme.ThinkingText.Render("Thinking..."))
	case m.statusMsg != "":
		parts = append(parts, m.theme.ErrorText.Render(m.statusMsg))
	default:
		for _, binding := range m.keyMap.ShortHelp() {
			help := binding.Help()
			parts = append(parts,
				m.theme.ShortcutKey.Render(help.Key)+" "+m.theme.ShortcutDesc.Render(help.Desc))
		}
	}

	if selected := m.orch.SelectedPolicy(); selected != nil {
		parts = append(parts, m.theme.ShortcutDesc.Render("policy: ")+m.theme.ShortcutKey.Render(selected.Name))
	}

	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}
