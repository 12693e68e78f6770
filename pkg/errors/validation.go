package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MapExtension is appended to map names that carry no extension.
const MapExtension = ".map"

// maxMapNameLength bounds map names across all storage backends.
const maxMapNameLength = 128

// ValidateMapName validates a map name for safety.
// Names are used as file names, redis keys, object keys and document ids,
// so the rules are the intersection of what all backends accept:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
//   - No hidden names (leading dot)
func ValidateMapName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "map name cannot be empty")
	}

	if len(name) > maxMapNameLength {
		return New(ErrCodeInvalidName, "map name too long (max %d characters)", maxMapNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "map name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "map name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "map name cannot contain %q", "..")
	}

	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "map name cannot start with a dot")
	}

	return nil
}

// NormalizeMapName appends [MapExtension] when name has no extension and
// validates the result. A user-supplied extension is kept as-is.
func NormalizeMapName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" && filepath.Ext(name) == "" {
		name += MapExtension
	}
	if err := ValidateMapName(name); err != nil {
		return "", err
	}
	return name, nil
}
