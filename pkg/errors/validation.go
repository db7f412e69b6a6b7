package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme: %q", rawURL)
	}

	return nil
}

// ValidatePath validates a snapshot or layout file path supplied over the API.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// placementNameRegex matches placement names such as "newtab_spocs" or "sponsored-topsites".
var placementNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

// ValidatePlacementName validates a spoc placement name.
func ValidatePlacementName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayout, "placement name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidLayout, "placement name too long (max 128 characters)")
	}
	if !placementNameRegex.MatchString(name) {
		return New(ErrCodeInvalidLayout, "invalid placement name: %q", name)
	}
	return nil
}

// snapshotIDRegex matches canonical UUID strings.
var snapshotIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateSnapshotID validates a stored snapshot identifier.
// Snapshot IDs are used as file names, so anything but a lowercase UUID is rejected.
func ValidateSnapshotID(id string) error {
	if !snapshotIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid snapshot id: %q", id)
	}
	return nil
}
