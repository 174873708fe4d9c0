package config

import (
	"gopkg.in/yaml.v3"
)

// Merge applies user overrides (a YAML document) over the built-in
// defaults and returns the resolved configuration.
//
// Precedence is deliberately simple: user leaf values win, nested
// mappings merge key-wise, and keys absent from the user document keep
// their default. Keys the schema does not know are dropped silently on
// the round-trip back into RuleConfig, so a stale config file degrades
// to defaults instead of failing.
//
// Design decision: we merge generic maps rather than struct fields
// because a struct-level merge cannot distinguish "user set this to
// false" from "user omitted this" for booleans. Going through the YAML
// node representation preserves that distinction.
func Merge(overrides []byte) (*RuleConfig, error) {
	base, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	var user map[string]any
	if err := yaml.Unmarshal(overrides, &user); err != nil {
		return nil, err
	}

	merged := mergeMaps(base, user)

	out, err := yaml.Marshal(merged)
	if err != nil {
		return nil, err
	}
	var cfg RuleConfig
	if err := yaml.Unmarshal(out, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeMaps recursively merges src into dst and returns dst. Nested
// mappings merge key-wise; any other value kind (bool, number, string,
// sequence) is a leaf and the src value replaces the dst value.
func mergeMaps(dst, src map[string]any) map[string]any {
	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = srcVal
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = mergeMaps(dstMap, srcMap)
			continue
		}

		// Leaf value, or a type mismatch between the two trees. Either
		// way the user value wins.
		dst[key] = srcVal
	}
	return dst
}

// toMap converts a RuleConfig into its generic map representation via a
// YAML round-trip.
func toMap(cfg *RuleConfig) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
