// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/jeranaias/polichat/internal/model"
)

func TestFormatMetricValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"json number", float64(0.87), "0.8700"},
		{"whole number", float64(3), "3.0000"},
		{"go int", 12, "12.0000"},
		{"string", "AA rated", "AA rated"},
		{"nested map", map[string]any{"claims": float64(120)}, `{"claims":120}`},
		{"array", []any{"a", "b"}, `["a","b"]`},
		{"bool", true, "true"},
		{"nil", nil, "<nil>"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatMetricValue(tc.in); got != tc.want {
				t.Errorf("FormatMetricValue(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMetricRowsExcludesInsurerName(t *testing.T) {
	rows := MetricRows(map[string]any{
		"insurer_name":           "Acme",
		"claim_settlement_ratio": float64(0.9812),
		"avg_premium":            float64(4500),
	})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	// Sorted key order.
	if rows[0].Key != "avg_premium" || rows[1].Key != "claim_settlement_ratio" {
		t.Errorf("row order = %q, %q", rows[0].Key, rows[1].Key)
	}
	if rows[1].Value != "0.9812" {
		t.Errorf("ratio = %q, want 0.9812", rows[1].Value)
	}
}

func TestOrderedPoliciesFollowsGroupOrder(t *testing.T) {
	msg := model.NewAssistantMessage("recommendations")
	msg.Recommended = []model.RecommendedPolicy{
		{Policy: model.Policy{ID: "a1"}, InsurerMetrics: map[string]any{"insurer_name": "Acme"}},
		{Policy: model.Policy{ID: "b1"}, InsurerMetrics: map[string]any{"insurer_name": "Beta"}},
		{Policy: model.Policy{ID: "a2"}, InsurerMetrics: map[string]any{"insurer_name": "Acme"}},
	}

	got := OrderedPolicies(msg)
	wantIDs := []string{"a1", "a2", "b1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d policies, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestOrderedPoliciesPrefersOfferList(t *testing.T) {
	msg := model.NewAssistantMessage("offers")
	msg.Policies = []model.Policy{{ID: "p1"}, {ID: "p2"}}

	got := OrderedPolicies(msg)
	if len(got) != 2 || got[0].ID != "p1" {
		t.Errorf("got %v", got)
	}
}
