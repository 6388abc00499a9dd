// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/polichat/internal/model"
	"github.com/jeranaias/polichat/internal/ui/styles"
)

func TestHistoryPanelCursorStaysInRange(t *testing.T) {
	panel := NewHistoryPanel(styles.NewTheme())
	panel.SetItems([]model.ChatInfo{
		{ID: "c1", Title: "First chat"},
		{ID: "c2", Title: "Second chat"},
	})

	panel.MoveUp() // already at top
	if panel.Cursor != 0 {
		t.Errorf("cursor = %d after MoveUp at top", panel.Cursor)
	}

	panel.MoveDown()
	panel.MoveDown() // already at bottom
	if panel.Cursor != 1 {
		t.Errorf("cursor = %d after MoveDown at bottom", panel.Cursor)
	}

	selected, ok := panel.Selected()
	if !ok || selected.ID != "c2" {
		t.Errorf("Selected() = %v, %v", selected, ok)
	}

	// Shrinking the list pulls the cursor back in range.
	panel.SetItems([]model.ChatInfo{{ID: "c1", Title: "First chat"}})
	if panel.Cursor != 0 {
		t.Errorf("cursor = %d after shrink", panel.Cursor)
	}
}

func TestHistoryPanelEmptyState(t *testing.T) {
	panel := NewHistoryPanel(styles.NewTheme())
	panel.SetItems(nil)

	if _, ok := panel.Selected(); ok {
		t.Error("Selected() ok on empty panel")
	}
	if !strings.Contains(panel.View(), "No saved chats") {
		t.Error("empty state text missing")
	}
}

func TestHistoryPanelFallsBackToID(t *testing.T) {
	panel := NewHistoryPanel(styles.NewTheme())
	panel.SetItems([]model.ChatInfo{{ID: "chat-42"}})

	if !strings.Contains(panel.View(), "chat-42") {
		t.Error("untitled session not listed by id")
	}
}
