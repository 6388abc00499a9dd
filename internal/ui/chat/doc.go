// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat is the Bubble Tea model for the polichat terminal client.
//
// The package follows the Elm split: model.go holds the state and the
// Update loop, view.go the rendering, keys.go the key bindings,
// messages.go the UI-level messages, and typewriter.go the progressive
// reveal of assistant replies. All session semantics live in
// internal/session; this package only translates key presses into
// orchestrator calls and orchestrator results into screen updates.
package chat
