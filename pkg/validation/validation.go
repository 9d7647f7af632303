package validation

import (
	"path"
	"regexp"
	"strings"
)

var (
	usernameRegex     = regexp.MustCompile("^[a-zA-Z0-9_-]+$")
	filenameCharRegex = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// ValidateContactEmail performs the minimal syntactic check used by the
// contact form: the address must contain both "@" and ".". Deliberately
// not RFC-compliant; delivery failures catch the rest.
func ValidateContactEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// ValidateUsername validates username format
func ValidateUsername(username string) bool {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 30 {
		return false
	}
	return usernameRegex.MatchString(username)
}

// ValidatePassword enforces a minimum length. The site has a single real
// account; complexity rules beyond length are not worth the friction.
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// SanitizeFilename reduces an uploaded filename to a safe basename:
// path components are stripped, spaces become underscores, and anything
// outside [A-Za-z0-9._-] is removed. Returns "" if nothing safe remains.
func SanitizeFilename(name string) string {
	// Strip any path components, from either separator convention.
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = filenameCharRegex.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return ""
	}
	return name
}

// SanitizeString removes potentially harmful characters
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")
	return input
}
