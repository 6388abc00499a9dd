// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/polichat/internal/model"
	"github.com/jeranaias/polichat/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry.
type MessageBubble struct {
	Message model.Message
	Width   int

	// VisibleText overrides the message text while the typewriter effect is
	// revealing it. Empty means show the full text.
	VisibleText string
	UseVisible  bool

	theme *styles.Theme
}

// NewMessageBubble creates a bubble for the given message.
func NewMessageBubble(msg model.Message, theme *styles.Theme) *MessageBubble {
	return &MessageBubble{
		Message: msg,
		Width:   80,
		theme:   theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// WithVisibleText limits the rendered text to the typewriter prefix.
func (b *MessageBubble) WithVisibleText(prefix string) *MessageBubble {
	b.VisibleText = prefix
	b.UseVisible = true
	return b
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.Role == model.RoleUser {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// revealing reports whether the typewriter is still mid-reveal.
func (b *MessageBubble) revealing() bool {
	return b.UseVisible && b.VisibleText != b.Message.Text
}

// ==========================================================================
// USER BUBBLE - Teal tones, right-aligned
// ==========================================================================

// renderUserBubble shows the user's text literally; user input is never
// interpreted as markdown.
func (b *MessageBubble) renderUserBubble() string {
	content := b.Message.Text
	if content == "" {
		content = "..."
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}
	wrapped := wordWrap(content, maxContentWidth)
	contentWidth := minInt(maxLineWidth(wrapped)+4, b.Width-8)

	bubble := b.theme.UserBubble.Width(contentWidth).Render(wrapped)

	roleStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
	header := roleStyle.Render("you")

	leftMargin := b.Width - contentWidth - 4
	if leftMargin < 0 {
		leftMargin = 0
	}
	marginStyle := lipgloss.NewStyle().MarginLeft(leftMargin)

	return lipgloss.JoinVertical(lipgloss.Right,
		marginStyle.Render(header),
		marginStyle.Render(bubble),
	)
}

// ==========================================================================
// ASSISTANT BUBBLE - Indigo tones, markdown, attachments
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	text := b.Message.Text
	if b.UseVisible {
		text = b.VisibleText
	}

	maxContentWidth := b.Width - 12
	if maxContentWidth < 20 {
		maxContentWidth = 20
	}

	content := RenderMarkdown(text, maxContentWidth)
	if content == "" {
		content = "..."
	}

	contentWidth := minInt(maxLineWidth(content)+4, b.Width-8)
	bubble := b.theme.AssistantBubble.Width(contentWidth).Render(content)

	roleStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)
	header := roleStyle.Render("assistant")

	parts := []string{header, bubble}

	// Policy lists appear once the text is fully revealed.
	if !b.revealing() {
		if attachment := b.renderAttachments(); attachment != "" {
			parts = append(parts, attachment)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderAttachments renders the offered-policy list or the grouped
// recommendation blocks carried by the message.
func (b *MessageBubble) renderAttachments() string {
	switch {
	case b.Message.HasPolicies():
		return b.renderPolicyList(b.Message.Policies, 1)
	case b.Message.HasRecommendations():
		return b.renderRecommendations()
	default:
		return ""
	}
}

// renderPolicyList renders a numbered selectable policy list starting at
// the given number.
func (b *MessageBubble) renderPolicyList(policies []model.Policy, start int) string {
	var lines []string
	for i, policy := range policies {
		number := b.theme.PolicyNumber.Render(fmt.Sprintf("[%d]", start+i))
		name := b.theme.PolicyName.Render(policy.Name)
		lines = append(lines, "  "+number+" "+name)

		if policy.Summary != "" {
			summaryWidth := b.Width - 10
			if summaryWidth < 20 {
				summaryWidth = 20
			}
			summary := wordWrap(policy.Summary, summaryWidth)
			for _, line := range strings.Split(summary, "\n") {
				lines = append(lines, "      "+b.theme.PolicySummary.Render(line))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// renderRecommendations renders one block per insurer: the heading, the
// metrics table, then that insurer's policies. Numbering runs continuously
// across blocks so selection keys stay unambiguous.
func (b *MessageBubble) renderRecommendations() string {
	groups := model.GroupByInsurer(b.Message.Recommended)

	var blocks []string
	number := 1
	for _, group := range groups {
		var lines []string
		lines = append(lines, "  "+b.theme.InsurerHeading.Render(group.Insurer))

		rows := MetricRows(group.Metrics)
		keyWidth := 0
		for _, row := range rows {
			if w := runewidth.StringWidth(row.Key); w > keyWidth {
				keyWidth = w
			}
		}
		for _, row := range rows {
			key := b.theme.MetricKey.Render(runewidth.FillRight(row.Key, keyWidth))
			value := b.theme.MetricValue.Render(row.Value)
			lines = append(lines, "    "+key+"  "+value)
		}

		lines = append(lines, b.renderPolicyList(group.Policies, number))
		number += len(group.Policies)

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	return strings.Join(blocks, "\n\n")
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the full transcript.
type MessageList struct {
	Messages []model.Message
	Width    int

	// TypewriterPrefix is the visible prefix of the newest assistant
	// message while the typewriter effect runs; empty string with
	// TypewriterActive false means render everything in full.
	TypewriterPrefix string
	TypewriterActive bool

	theme *styles.Theme
}

// NewMessageList creates a MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{Width: 80, theme: theme}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages. Only the final message may carry the
// typewriter prefix; everything older always shows in full.
func (ml *MessageList) View() string {
	var bubbles []string
	for i, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme)
		bubble.SetWidth(ml.Width)

		if ml.TypewriterActive && i == len(ml.Messages)-1 && msg.IsAssistant() {
			bubble.WithVisibleText(ml.TypewriterPrefix)
		}

		bubbles = append(bubbles, bubble.View())
	}
	return strings.Join(bubbles, "\n")
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// wordWrap wraps text to fit within the specified width.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	for lineIdx, line := range strings.Split(text, "\n") {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}

// maxLineWidth returns the display width of the widest line. lipgloss.Width
// ignores ANSI sequences, which matters for glamour output.
func maxLineWidth(text string) int {
	maxWidth := 0
	for _, line := range strings.Split(text, "\n") {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
