package answerhtml

import (
	"regexp"
	"strings"
)

// forbiddenIdentifierSequences are substrings that mark an identifier as an
// injection attempt. Checked case-insensitively.
var forbiddenIdentifierSequences = []string{
	"<script",
	"javascript:",
	"../../",
	"\x00",
	"%00",
}

// identifierStripPattern removes the disallowed character classes during
// sanitization: angle brackets, quotes, null bytes and traversal slashes.
var identifierStripPattern = regexp.MustCompile("[<>'\"\x00]|%00|\\.\\./")

// ValidIdentifierFormat reports whether an externally supplied conversation
// identifier is structurally safe to use. It rejects empty strings and
// anything carrying script fragments, unsafe schemes, path traversal, null
// bytes, or angle-bracket/quote characters. This is the first of two gates;
// IdentifierExists is the second.
func ValidIdentifierFormat(id string) bool {
	if id == "" {
		return false
	}
	lower := strings.ToLower(id)
	for _, seq := range forbiddenIdentifierSequences {
		if strings.Contains(lower, seq) {
			return false
		}
	}
	return !strings.ContainsAny(id, "<>'\"")
}

// SanitizeIdentifier strips the disallowed character classes from an
// identifier. Stripping removes the characters, keeping the rest:
// SanitizeIdentifier("id<script>") == "idscript".
func SanitizeIdentifier(id string) string {
	return identifierStripPattern.ReplaceAllString(id, "")
}

// IdentifierExists reports whether the sanitized identifier is a member of
// the caller's known-valid set. Unknown identifiers are simply not found;
// no error ever distinguishes "malformed" from "absent", so nothing about
// the set leaks to the caller of the boundary.
func IdentifierExists(id string, known map[string]struct{}) bool {
	if !ValidIdentifierFormat(id) {
		return false
	}
	_, ok := known[SanitizeIdentifier(id)]
	return ok
}
