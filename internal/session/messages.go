// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"github.com/jeranaias/polichat/internal/api"
	"github.com/jeranaias/polichat/internal/model"
)

// =============================================================================
// RESULT MESSAGES
// =============================================================================

// AnswerMsg delivers the outcome of a question round trip.
type AnswerMsg struct {
	// Index is the transcript position of the placeholder to replace.
	Index int
	Resp  *api.AskResponse
	Err   error
}

// TermsMsg delivers the crucial terms fetched after a policy selection.
type TermsMsg struct {
	Policy model.Policy
	Terms  []model.ImportantTerm
	Err    error
}

// SearchMsg delivers the outcome of a policy search.
type SearchMsg struct {
	Index    int
	Query    string
	Policies []model.Policy
	Err      error
}

// SessionLoadedMsg delivers a session fetched by id.
type SessionLoadedMsg struct {
	ID      string
	Session *api.ChatSession
	Err     error
}

// SessionSavedMsg confirms a fire-and-forget save. The UI uses it to
// refresh the history list; failures are logged, never shown in the
// transcript.
type SessionSavedMsg struct {
	Err error
}
