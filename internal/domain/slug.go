package domain

import "strings"

const (
	// DefaultProjectName is used when no project name is given at all.
	DefaultProjectName = "default_project"

	// FallbackSlug replaces a project name that slugifies to nothing.
	FallbackSlug = "silly_goose"
)

// Slugify turns a project name into a file-name-safe slug: trimmed,
// lowercased, spaces replaced by underscores, and everything outside
// [a-z0-9_-] dropped.
func Slugify(name string) string {
	formatted := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")

	var b strings.Builder
	b.Grow(len(formatted))
	for _, r := range formatted {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return FallbackSlug
	}
	return b.String()
}

// ProjectNameOrDefault returns the trimmed name, or DefaultProjectName when
// it is blank.
func ProjectNameOrDefault(name string) string {
	return CoalesceStr(strings.TrimSpace(name), DefaultProjectName)
}
