package mysql

import (
	"encoding/json"
	"strings"
)

// jsonStrings marshal slice string ke kolom JSON; nil jadi []
func jsonStrings(ss []string) []byte {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return b
}

// jsonMap marshal metadata map ke kolom JSON; nil jadi {}
func jsonMap(m map[string]any) []byte {
	if m == nil {
		m = map[string]any{}
	}
	b, _ := json.Marshal(m)
	return b
}

func scanStrings(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	if json.Unmarshal(b, &out) != nil {
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func scanMap(b []byte) map[string]any {
	if len(b) == 0 {
		return nil
	}
	var out map[string]any
	if json.Unmarshal(b, &out) != nil {
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// escapeLikePattern escapes special characters in LIKE patterns to prevent SQL injection
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
