// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the polichat TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Teal - Brand color, headers, the active history entry
var Teal = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

// TealDeep - Darker teal for backgrounds
var TealDeep = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#134E4A"}

// Indigo - Assistant accent, selections
var Indigo = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// IndigoDeep - Darker indigo for backgrounds
var IndigoDeep = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#312E81"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors and failure messages
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, pending states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Slightly darker/lighter surface for headers/footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// Overlay - Borders, separators, subtle backgrounds
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, timestamps, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// =============================================================================
// MESSAGE BUBBLE COLORS
// =============================================================================

// User message bubble - Teal tones
var UserBubbleBg = lipgloss.AdaptiveColor{Light: "#CCFBF1", Dark: "#115E59"}
var UserBubbleFg = lipgloss.AdaptiveColor{Light: "#115E59", Dark: "#CCFBF1"}
var UserBubbleBorder = lipgloss.AdaptiveColor{Light: "#14B8A6", Dark: "#14B8A6"}

// Assistant message bubble - Soft indigo tones (muted, not saturated)
var AssistantBubbleBg = lipgloss.AdaptiveColor{Light: "#EEF2FF", Dark: "#33315C"}
var AssistantBubbleFg = lipgloss.AdaptiveColor{Light: "#3730A3", Dark: "#E0E7FF"}
var AssistantBubbleBorder = lipgloss.AdaptiveColor{Light: "#A5B4FC", Dark: "#818CF8"}

// =============================================================================
// POLICY LIST AND METRICS
// =============================================================================

// PolicyNumber - The 1-9 selection index in offered policy lists
var PolicyNumber = lipgloss.AdaptiveColor{Light: "#0D9488", Dark: "#2DD4BF"}

// InsurerHeading - Per-insurer block headings in recommendations
var InsurerHeading = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

// MetricKey - Metric names in the insurer table
var MetricKey = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
