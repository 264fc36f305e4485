package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// MaxImportBytes batas ukuran body import CSV (4 MB)
const MaxImportBytes = 4 << 20

var orgPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

// ValidateOrg checks the organization slug from the URL
func ValidateOrg(org string) error {
	if org == "" {
		return fmt.Errorf("organization is required")
	}
	if !orgPattern.MatchString(strings.ToLower(org)) {
		return fmt.Errorf("invalid organization: %s", org)
	}
	return nil
}

// ValidateID checks an entity id path segment (uuid atau id opaque lain,
// yang penting tidak kosong dan tidak aneh-aneh)
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	if len(id) > 128 {
		return fmt.Errorf("id too long")
	}
	if strings.ContainsAny(id, " \t\n/\\") {
		return fmt.Errorf("invalid id: %s", id)
	}
	return nil
}

// ClampLimit normalisasi limit query param ke range masuk akal
func ClampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
