// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"fmt"

	"github.com/jeranaias/polichat/internal/model"
)

// =============================================================================
// ACTIONS
// =============================================================================

// Action is the discriminator the backend attaches to every answer.
const (
	ActionShowPolicies      = "show_policies"
	ActionAskClarification  = "ask_clarification"
	ActionRecommendPolicies = "recommend_policies"
	ActionGeneralQuery      = "general_insurance_query"
	ActionUnrelated         = "unrelated_to_health_insurance"
	ActionError             = "error"
)

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

// AskRequest is the payload for the question-answering endpoint.
type AskRequest struct {
	Question string          `json:"question"`
	PolicyID string          `json:"policy_id,omitempty"`
	History  []model.Message `json:"history"`
}

// AskResponse is the backend's answer to a question.
//
// Fields beyond Action are populated depending on the action; absent fields
// decode to zero values and the caller degrades gracefully.
type AskResponse struct {
	Action      string                    `json:"action"`
	Answer      string                    `json:"answer,omitempty"`
	Message     string                    `json:"message,omitempty"`
	Policies    []model.Policy            `json:"policies,omitempty"`
	Recommended []model.RecommendedPolicy `json:"recommended_policies_with_metrics,omitempty"`
}

// NeedsClarification reports whether the answer offers policies for the
// user to choose from instead of a direct reply.
func (r *AskResponse) NeedsClarification() bool {
	switch r.Action {
	case ActionShowPolicies, ActionAskClarification:
		return len(r.Policies) > 0
	}
	return false
}

// Reply returns the best available free-text answer.
func (r *AskResponse) Reply() string {
	if r.Answer != "" {
		return r.Answer
	}
	return r.Message
}

// ChatSession is a persisted session as returned by the backend.
type ChatSession struct {
	ID             string          `json:"id"`
	Messages       []model.Message `json:"messages"`
	SelectedPolicy *model.Policy   `json:"selected_policy"`
}

// SaveChatRequest persists or updates a session.
type SaveChatRequest struct {
	ChatID         string          `json:"chat_id,omitempty"`
	Messages       []model.Message `json:"messages"`
	SelectedPolicy *model.Policy   `json:"selected_policy"`
}

// crucialTermsRequest is the payload for the crucial-terms endpoint.
type crucialTermsRequest struct {
	PolicyID string `json:"policy_id"`
}

// =============================================================================
// ERRORS
// =============================================================================

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}
