package config

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// detectUnknownFields reports root fields other than "tolerance" and
// tolerance names westcheck does not use. Names are matched without regard
// to case, as the loader does.
func detectUnknownFields(data []byte) []string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse parameters for unknown field detection"}
	}

	var warnings []string
	for _, key := range sortedRawKeys(raw) {
		if key == "$schema" || strings.EqualFold(key, "tolerance") {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
	}

	for key, section := range raw {
		if !strings.EqualFold(key, "tolerance") {
			continue
		}
		var tolerances map[string]json.RawMessage
		if err := json.Unmarshal(section, &tolerances); err != nil {
			continue
		}
		for _, name := range sortedRawKeys(tolerances) {
			if !isToleranceName(name) {
				warnings = append(warnings, fmt.Sprintf("unknown tolerance %q (ignored)", name))
			}
		}
	}
	return warnings
}

func isToleranceName(name string) bool {
	for _, known := range ToleranceNames {
		if strings.EqualFold(name, known) {
			return true
		}
	}
	return false
}

func sortedRawKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
