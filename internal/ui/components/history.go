// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/polichat/internal/model"
	"github.com/jeranaias/polichat/internal/ui/styles"
)

// =============================================================================
// CHAT HISTORY PANEL
// =============================================================================

// HistoryPanel lists saved sessions with cursor selection and highlights
// the active one.
type HistoryPanel struct {
	Items    []model.ChatInfo
	Cursor   int
	ActiveID string
	Width    int
	Height   int
	Focused  bool
	Loading  bool

	theme *styles.Theme
}

// NewHistoryPanel creates an empty history panel.
func NewHistoryPanel(theme *styles.Theme) *HistoryPanel {
	return &HistoryPanel{Width: 28, Height: 20, theme: theme}
}

// SetItems replaces the listed sessions, keeping the cursor in range.
func (p *HistoryPanel) SetItems(items []model.ChatInfo) {
	p.Items = items
	p.Loading = false
	if p.Cursor >= len(items) {
		p.Cursor = len(items) - 1
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
}

// SetSize updates the panel dimensions.
func (p *HistoryPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height
}

// MoveUp moves the cursor toward the top.
func (p *HistoryPanel) MoveUp() {
	if p.Cursor > 0 {
		p.Cursor--
	}
}

// MoveDown moves the cursor toward the bottom.
func (p *HistoryPanel) MoveDown() {
	if p.Cursor < len(p.Items)-1 {
		p.Cursor++
	}
}

// Selected returns the session under the cursor.
func (p *HistoryPanel) Selected() (model.ChatInfo, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return model.ChatInfo{}, false
	}
	return p.Items[p.Cursor], true
}

// View renders the panel.
func (p *HistoryPanel) View() string {
	innerWidth := p.Width - 4
	if innerWidth < 8 {
		innerWidth = 8
	}

	var lines []string
	lines = append(lines, p.theme.HistoryTitle.Render("Chats"))

	switch {
	case p.Loading:
		lines = append(lines, p.theme.HistoryEmpty.Render("Loading..."))
	case len(p.Items) == 0:
		lines = append(lines, p.theme.HistoryEmpty.Render("No saved chats"))
	default:
		maxItems := p.Height - 3
		if maxItems < 1 {
			maxItems = 1
		}

		// Keep the cursor visible in a simple scrolling window.
		start := 0
		if p.Cursor >= maxItems {
			start = p.Cursor - maxItems + 1
		}
		end := minInt(start+maxItems, len(p.Items))

		for i := start; i < end; i++ {
			item := p.Items[i]
			title := item.Title
			if title == "" {
				title = item.ID
			}
			title = runewidth.Truncate(title, innerWidth, "...")

			style := p.theme.HistoryItem
			switch {
			case p.Focused && i == p.Cursor:
				style = p.theme.HistoryItemCursor
			case item.ID == p.ActiveID:
				style = p.theme.HistoryItemActive
			}
			lines = append(lines, style.Render(title))
		}
	}

	panel := p.theme.HistoryPanel
	if p.Focused {
		panel = p.theme.HistoryPanelFocused
	}
	return panel.Width(p.Width - 2).Height(p.Height - 2).Render(strings.Join(lines, "\n"))
}
