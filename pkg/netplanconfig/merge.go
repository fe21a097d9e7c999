package netplanconfig

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultIdentifiers defines the field names used to match sequence elements during merge.
// When merging sequences of mappings (routes, routing-policy, ...), elements are
// considered "the same" if they have matching values for any of these fields
// (checked in order).
var DefaultIdentifiers = []string{"to", "from", "name"}

// MergeYAML merges multiple netplan documents with later documents overriding earlier ones,
// the way netplan layers files in lexical order.
//
// Merge rules:
//   - Scalars: later value overwrites earlier
//   - Mappings: recursively merged, with later keys overriding earlier
//   - Sequences: merged using identifier matching (see DefaultIdentifiers)
//
// Empty documents are skipped. Returns the merged document as YAML with sorted keys.
func MergeYAML(configs [][]byte, identifiers []string) ([]byte, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("no configs to merge")
	}

	if identifiers == nil {
		identifiers = DefaultIdentifiers
	}

	result := make(map[string]any)
	for i, cfg := range configs {
		var m map[string]any
		if err := yaml.Unmarshal(cfg, &m); err != nil {
			return nil, fmt.Errorf("unmarshal config[%d]: %w", i, err)
		}
		result = deepMerge(result, m, identifiers)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("encode merged config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode merged config: %w", err)
	}
	return buf.Bytes(), nil
}

// deepMerge performs a deep merge of two maps, with override taking precedence over base.
func deepMerge(base, override map[string]any, identifiers []string) map[string]any {
	if base == nil {
		return deepCopy(override)
	}
	if override == nil {
		return deepCopy(base)
	}

	result := deepCopy(base)

	for key, overrideVal := range override {
		baseVal, exists := result[key]

		if !exists {
			result[key] = deepCopyValue(overrideVal)
			continue
		}

		switch overrideVal := overrideVal.(type) {
		case map[string]any:
			if baseMap, ok := baseVal.(map[string]any); ok {
				result[key] = deepMerge(baseMap, overrideVal, identifiers)
			} else {
				result[key] = deepCopyValue(overrideVal)
			}

		case []any:
			if baseSlice, ok := baseVal.([]any); ok {
				result[key] = mergeSlices(baseSlice, overrideVal, identifiers)
			} else {
				result[key] = deepCopyValue(overrideVal)
			}

		default:
			result[key] = deepCopyValue(overrideVal)
		}
	}

	return result
}

// mergeSlices merges two sequences.
//
// Mapping elements sharing an identifier value are merged together; exact
// duplicates are skipped; everything else is appended.
//
// Example with identifiers=["to"]:
//
//	base:     [{"to": "default", "via": "10.0.0.1"}]
//	override: [{"to": "default", "via": "10.0.0.254"}, {"to": "10.1.0.0/16", ...}]
//	result:   [{"to": "default", "via": "10.0.0.254"}, {"to": "10.1.0.0/16", ...}]
func mergeSlices(base, override []any, identifiers []string) []any {
	if len(base) == 0 {
		return deepCopySlice(override)
	}
	if len(override) == 0 {
		return deepCopySlice(base)
	}

	baseIndex := make(map[any]int)
	for i, el := range base {
		if m, ok := el.(map[string]any); ok {
			if id := extractIdentifier(m, identifiers); id != nil {
				baseIndex[id] = i
			}
		}
	}

	result := deepCopySlice(base)

	for _, overrideEl := range override {
		if isDuplicate(result, overrideEl) {
			continue
		}

		if m, ok := overrideEl.(map[string]any); ok {
			if id := extractIdentifier(m, identifiers); id != nil {
				if idx, found := baseIndex[id]; found {
					if baseMap, ok := result[idx].(map[string]any); ok {
						result[idx] = deepMerge(baseMap, m, identifiers)
						continue
					}
				}
			}
		}

		result = append(result, deepCopyValue(overrideEl))
	}

	return result
}

// extractIdentifier returns the first non-empty identifier value found in m.
func extractIdentifier(m map[string]any, identifiers []string) any {
	for _, key := range identifiers {
		if val, ok := m[key]; ok && val != nil && val != "" {
			if isComparable(val) {
				return val
			}
		}
	}
	return nil
}

func isComparable(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}

// isDuplicate checks if an element already exists in a slice (exact match).
// Uses YAML serialization for deep equality comparison.
func isDuplicate(slice []any, el any) bool {
	elYAML, err := yaml.Marshal(el)
	if err != nil {
		return false
	}

	for _, item := range slice {
		itemYAML, err := yaml.Marshal(item)
		if err != nil {
			continue
		}
		if bytes.Equal(elYAML, itemYAML) {
			return true
		}
	}
	return false
}

func deepCopy(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = deepCopyValue(v)
	}
	return result
}

func deepCopySlice(s []any) []any {
	if s == nil {
		return nil
	}
	result := make([]any, len(s))
	for i, v := range s {
		result[i] = deepCopyValue(v)
	}
	return result
}

// deepCopyValue recursively copies mappings and sequences; scalars are returned as-is.
func deepCopyValue(v any) any {
	if v == nil {
		return nil
	}

	switch val := v.(type) {
	case map[string]any:
		return deepCopy(val)
	case []any:
		return deepCopySlice(val)
	default:
		return val
	}
}
