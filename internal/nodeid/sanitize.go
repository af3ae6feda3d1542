package nodeid

import "regexp"

// disallowedChars matches everything outside the character set the delivery
// service accepts in action names.
var disallowedChars = regexp.MustCompile(`[^a-zA-Z0-9.@_-]`)

// Sanitize replaces every character the delivery service rejects with '_'.
func Sanitize(segment string) string {
	return disallowedChars.ReplaceAllString(segment, "_")
}
