// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/polichat/internal/api"
	"github.com/jeranaias/polichat/internal/model"
)

// =============================================================================
// UI-LEVEL MESSAGES
// =============================================================================

// ChatsLoadedMsg delivers the saved-session list for the history panel.
type ChatsLoadedMsg struct {
	Chats []model.ChatInfo
	Err   error
}

// TypewriterTickMsg advances the typewriter reveal by one rune. Gen ties
// the tick to the reveal that scheduled it; ticks from a replaced target
// are discarded.
type TypewriterTickMsg struct {
	Gen int
}

// =============================================================================
// COMMANDS
// =============================================================================

// loadChatsCmd fetches the saved-session list.
func loadChatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		chats, err := client.ListChats(context.Background())
		return ChatsLoadedMsg{Chats: chats, Err: err}
	}
}
