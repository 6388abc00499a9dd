// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/polichat/internal/model"
	"github.com/jeranaias/polichat/internal/ui/styles"
)

func TestRecommendationNumberingIsContinuous(t *testing.T) {
	msg := model.NewAssistantMessage("Here are my recommendations:")
	msg.Recommended = []model.RecommendedPolicy{
		{Policy: model.Policy{ID: "a1", Name: "Acme Basic"}, InsurerMetrics: map[string]any{"insurer_name": "Acme"}},
		{Policy: model.Policy{ID: "a2", Name: "Acme Gold"}, InsurerMetrics: map[string]any{"insurer_name": "Acme"}},
		{Policy: model.Policy{ID: "b1", Name: "Beta Shield"}, InsurerMetrics: map[string]any{"insurer_name": "Beta"}},
	}

	bubble := NewMessageBubble(msg, styles.NewTheme())
	out := bubble.View()

	for _, want := range []string{"[1]", "[2]", "[3]", "Acme", "Beta", "Beta Shield"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}
	if strings.Contains(out, "[4]") {
		t.Error("rendered output numbers past the policy count")
	}
}

func TestMetricsRenderInInsurerBlock(t *testing.T) {
	msg := model.NewAssistantMessage("recommendation")
	msg.Recommended = []model.RecommendedPolicy{
		{
			Policy: model.Policy{ID: "p1", Name: "Acme Basic"},
			InsurerMetrics: map[string]any{
				"insurer_name":           "Acme",
				"claim_settlement_ratio": float64(0.9812),
				"network":                map[string]any{"hospitals": float64(5000)},
			},
		},
	}

	out := NewMessageBubble(msg, styles.NewTheme()).View()

	if !strings.Contains(out, "0.9812") {
		t.Error("numeric metric not fixed to 4 decimals")
	}
	if !strings.Contains(out, `{"hospitals":5000}`) {
		t.Error("nested metric not rendered as literal JSON")
	}
	if strings.Contains(out, "insurer_name") {
		t.Error("insurer_name rendered as a table row")
	}
}

func TestTypewriterHidesAttachmentsMidReveal(t *testing.T) {
	msg := model.NewAssistantMessage("Pick a policy:")
	msg.Policies = []model.Policy{{ID: "p1", Name: "Acme Basic"}}

	bubble := NewMessageBubble(msg, styles.NewTheme()).WithVisibleText("Pick")
	out := bubble.View()
	if strings.Contains(out, "Acme Basic") {
		t.Error("policy list shown while text is still revealing")
	}

	bubble = NewMessageBubble(msg, styles.NewTheme()).WithVisibleText(msg.Text)
	out = bubble.View()
	if !strings.Contains(out, "Acme Basic") {
		t.Error("policy list missing after full reveal")
	}
}

func TestMessageListMarksOnlyNewestAssistant(t *testing.T) {
	theme := styles.NewTheme()
	list := NewMessageList(theme)
	list.SetMessages([]model.Message{
		model.NewAssistantMessage("older answer stays complete"),
		model.NewUserMessage("a question"),
		model.NewAssistantMessage("newest answer"),
	})
	list.TypewriterActive = true
	list.TypewriterPrefix = "newest"

	out := list.View()
	if !strings.Contains(out, "older answer stays complete") {
		t.Error("older assistant message truncated by typewriter")
	}
	if strings.Contains(out, "newest answer") {
		t.Error("newest message shown in full while typewriter active")
	}
}

func TestWordWrapRespectsWidth(t *testing.T) {
	wrapped := wordWrap("alpha beta gamma delta", 11)
	for _, line := range strings.Split(wrapped, "\n") {
		if maxLineWidth(line) > 11 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}
