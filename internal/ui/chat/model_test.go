// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	"github.com/jeranaias/polichat/internal/api"
	"github.com/jeranaias/polichat/internal/config"
	"github.com/jeranaias/polichat/internal/model"
	"github.com/jeranaias/polichat/internal/ui/styles"
)

func newTestModel() Model {
	cfg := config.DefaultConfig()
	cfg.UI.TypewriterIntervalMs = 0
	return New(cfg, api.NewClient("http://127.0.0.1:0"), styles.NewTheme())
}

func TestPolicyNumberParsing(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"9", 9, true},
		{"0", 0, false},
		{"10", 0, false},
		{"a", 0, false},
		{"", 0, false},
	}
	for _, tc := range tests {
		got, ok := policyNumber(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("policyNumber(%q) = %d, %v, want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSelectPolicyByNumberUsesDisplayedOrder(t *testing.T) {
	m := newTestModel()

	offer := model.NewAssistantMessage("Pick one:")
	offer.Recommended = []model.RecommendedPolicy{
		{Policy: model.Policy{ID: "a1", Name: "Acme Basic"}, InsurerMetrics: map[string]any{"insurer_name": "Acme"}},
		{Policy: model.Policy{ID: "b1", Name: "Beta Shield"}, InsurerMetrics: map[string]any{"insurer_name": "Beta"}},
		{Policy: model.Policy{ID: "a2", Name: "Acme Gold"}, InsurerMetrics: map[string]any{"insurer_name": "Acme"}},
	}
	m.orch.Transcript().Append(offer)

	// Rendering groups by insurer, so [2] is Acme Gold, not Beta Shield.
	if cmd := m.selectPolicyByNumber(2); cmd == nil {
		t.Fatal("selectPolicyByNumber(2) returned nil")
	}
	selected := m.orch.SelectedPolicy()
	if selected == nil || selected.ID != "a2" {
		t.Errorf("selected = %v, want a2", selected)
	}
}

func TestSelectPolicyByNumberOutOfRange(t *testing.T) {
	m := newTestModel()

	offer := model.NewAssistantMessage("Pick one:")
	offer.Policies = []model.Policy{{ID: "p1", Name: "Only"}}
	m.orch.Transcript().Append(offer)

	if cmd := m.selectPolicyByNumber(2); cmd != nil {
		t.Error("out-of-range number produced a selection")
	}
	if m.orch.SelectedPolicy() != nil {
		t.Error("policy selected despite out-of-range number")
	}
}

func TestSelectPolicyByNumberRequiresOffer(t *testing.T) {
	m := newTestModel()

	// Only the greeting is present; it carries no policies.
	if cmd := m.selectPolicyByNumber(1); cmd != nil {
		t.Error("selection command without an offered list")
	}
}

func TestSlashCommandSearchRequiresQuery(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.handleSlashCommand("/search   ")
	if cmd != nil {
		t.Error("blank search produced a command")
	}
	if updated.(Model).statusMsg == "" {
		t.Error("blank search left no usage hint")
	}
}

func TestSlashCommandUnknownSetsStatus(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.handleSlashCommand("/frobnicate")
	if cmd != nil {
		t.Error("unknown command produced a command")
	}
	if updated.(Model).statusMsg == "" {
		t.Error("unknown command left no status message")
	}
}

func TestStartNewChatClearsActiveHistoryEntry(t *testing.T) {
	m := newTestModel()
	m.history.ActiveID = "chat-7"

	updated, _ := m.startNewChat()
	if updated.(Model).history.ActiveID != "" {
		t.Error("active history id survived a new chat")
	}
}
