// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the polichat TUI.
//
// All components are pure view code: they read transcript and history state
// and produce strings, never mutating anything. Policy numbering is shared
// between rendering and key handling through OrderedPolicies so the number a
// user sees is always the number their keypress selects.
package components
