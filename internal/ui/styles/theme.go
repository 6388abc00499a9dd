// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	ErrorText       lipgloss.Style

	// ==========================================================================
	// POLICY LIST AND METRICS STYLES
	// ==========================================================================

	PolicyNumber   lipgloss.Style
	PolicyName     lipgloss.Style
	PolicySummary  lipgloss.Style
	InsurerHeading lipgloss.Style
	MetricKey      lipgloss.Style
	MetricValue    lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// HISTORY PANEL STYLES
	// ==========================================================================

	HistoryPanel        lipgloss.Style
	HistoryPanelFocused lipgloss.Style
	HistoryTitle        lipgloss.Style
	HistoryItem         lipgloss.Style
	HistoryItemCursor   lipgloss.Style
	HistoryItemActive   lipgloss.Style
	HistoryEmpty        lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND LOADING STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	t.HeaderHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Policy lists and metrics
	t.PolicyNumber = lipgloss.NewStyle().
		Foreground(PolicyNumber).
		Bold(true)

	t.PolicyName = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.PolicySummary = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.InsurerHeading = lipgloss.NewStyle().
		Foreground(InsurerHeading).
		Bold(true).
		Underline(true)

	t.MetricKey = lipgloss.NewStyle().
		Foreground(MetricKey)

	t.MetricValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// History panel
	t.HistoryPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HistoryPanelFocused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Teal).
		Padding(0, 1)

	t.HistoryTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.HistoryItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.HistoryItemCursor = lipgloss.NewStyle().
		Background(Indigo).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	t.HistoryItemActive = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true).
		Padding(0, 1)

	t.HistoryEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(0, 1)

	// Status bar and loading
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns, history panel hidden
	LayoutWide
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	return LayoutWide
}
