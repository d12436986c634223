package slug

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxLength = 50
	fallback  = "untitled"
)

var separatorRun = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-safe slug from a string. Column IDs and snapshot
// names both go through it.
func Generate(s string) string {
	slug := separatorRun.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return fallback
	}

	if len(slug) > maxLength {
		slug = strings.TrimRight(slug[:maxLength], "-")
	}

	return slug
}

// Unique returns Generate(s), suffixed with -2, -3, ... until it is not in taken
func Unique(s string, taken map[string]bool) string {
	base := Generate(s)
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}
