// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLES
// =============================================================================

// Role identifies the origin of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "ai"
)

// =============================================================================
// BACKEND VALUE TYPES
// =============================================================================

// Policy is an insurance policy as described by the backend.
// Treated as immutable value data; polichat never modifies policies.
type Policy struct {
	ID      string `json:"id"`
	Name    string `json:"policy_name"`
	Summary string `json:"policy_summary"`
}

// ImportantTerm is a backend-extracted key clause of a policy.
type ImportantTerm struct {
	Term         string   `json:"term"`
	Description  string   `json:"description"`
	Details      []string `json:"details,omitempty"`
	UserMustKnow string   `json:"user_must_know"`
}

// RecommendedPolicy pairs a policy with the per-insurer metrics the backend
// computed for it. Metric values are free-form JSON: numbers, strings, or
// nested objects.
type RecommendedPolicy struct {
	Policy         Policy         `json:"policy"`
	InsurerMetrics map[string]any `json:"insurer_metrics"`
}

// ChatInfo is a saved session summary for the history list.
type ChatInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is one transcript entry. Messages are never mutated after
// creation; the transcript replaces entries wholesale instead.
type Message struct {
	ID          string              `json:"-"`
	Role        Role                `json:"from"`
	Text        string              `json:"text"`
	Policies    []Policy            `json:"policies,omitempty"`
	Recommended []RecommendedPolicy `json:"recommended_policies_with_metrics,omitempty"`
	Timestamp   time.Time           `json:"-"`
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(text string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// IsAssistant reports whether the message came from the assistant.
func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// HasPolicies reports whether the message offers selectable policies.
func (m Message) HasPolicies() bool {
	return len(m.Policies) > 0
}

// HasRecommendations reports whether the message carries grouped
// policy recommendations with insurer metrics.
func (m Message) HasRecommendations() bool {
	return len(m.Recommended) > 0
}

// =============================================================================
// INSURER GROUPING
// =============================================================================

// UnknownInsurer is the group name used when a recommendation entry has no
// insurer_name metric.
const UnknownInsurer = "Unknown Insurer"

// InsurerNameKey is the metrics key holding the insurer display name.
const InsurerNameKey = "insurer_name"

// InsurerGroup collects the recommendations belonging to one insurer.
type InsurerGroup struct {
	Insurer  string
	Metrics  map[string]any
	Policies []Policy
}

// GroupByInsurer groups recommendation entries by their insurer_name metric,
// defaulting to UnknownInsurer when the metric is absent or not a string.
// Group order follows first appearance so rendering stays deterministic.
func GroupByInsurer(recs []RecommendedPolicy) []InsurerGroup {
	var order []string
	byName := make(map[string]*InsurerGroup)

	for _, rec := range recs {
		name := UnknownInsurer
		if v, ok := rec.InsurerMetrics[InsurerNameKey]; ok {
			if s, ok := v.(string); ok && s != "" {
				name = s
			}
		}

		group, ok := byName[name]
		if !ok {
			group = &InsurerGroup{
				Insurer: name,
				Metrics: rec.InsurerMetrics,
			}
			byName[name] = group
			order = append(order, name)
		}
		group.Policies = append(group.Policies, rec.Policy)
	}

	groups := make([]InsurerGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, *byName[name])
	}
	return groups
}
