// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the chat session orchestrator.
//
// The Orchestrator is the sole owner of session state: the transcript, the
// selected policy, the active session id, and the in-flight flag. Every
// operation follows the same shape: mutate state synchronously, then return
// a tea.Cmd that performs one network call and yields a result message,
// which the caller feeds back through the matching Handle method.
//
// There is no cancellation. The in-flight flag only prevents starting a new
// question or policy selection while one is outstanding; it never aborts
// the outstanding call. Every Handle method clears the flag on every path
// so the UI stays usable after failures.
package session
