// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jeranaias/polichat/internal/model"
)

// =============================================================================
// METRIC FORMATTING
// =============================================================================

// FormatMetricValue renders a single insurer metric value:
//   - numbers are fixed to 4 decimal places
//   - nested maps and arrays become their literal JSON form
//   - strings pass through unchanged
//   - everything else uses its default textual form
func FormatMetricValue(v any) string {
	switch val := v.(type) {
	case float64:
		return fmt.Sprintf("%.4f", val)
	case float32:
		return fmt.Sprintf("%.4f", val)
	case int:
		return fmt.Sprintf("%.4f", float64(val))
	case int64:
		return fmt.Sprintf("%.4f", float64(val))
	case string:
		return val
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// MetricRow is one key/value pair of the insurer metrics table.
type MetricRow struct {
	Key   string
	Value string
}

// MetricRows flattens an insurer's metrics into sorted table rows. The
// insurer_name key is excluded; it is the block heading, not a row.
func MetricRows(metrics map[string]any) []MetricRow {
	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		if key == model.InsurerNameKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]MetricRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, MetricRow{Key: key, Value: FormatMetricValue(metrics[key])})
	}
	return rows
}

// OrderedPolicies returns the selectable policies of a message in display
// order: the plain offer list, or the recommendation groups flattened in
// insurer order. Key handling and rendering both use this so policy number
// N always selects the policy labeled N.
func OrderedPolicies(msg model.Message) []model.Policy {
	if msg.HasPolicies() {
		return msg.Policies
	}
	if !msg.HasRecommendations() {
		return nil
	}

	var out []model.Policy
	for _, group := range model.GroupByInsurer(msg.Recommended) {
		out = append(out, group.Policies...)
	}
	return out
}
