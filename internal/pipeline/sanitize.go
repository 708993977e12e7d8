package pipeline

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultAllowedTags is the markup the render layer understands. Everything
// else is stripped regardless of where it came from.
var DefaultAllowedTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "div", "span", "br",
	"strong", "b", "em", "i",
	"ul", "ol", "li",
	"table", "thead", "tbody", "tr", "th", "td", "caption",
	"pre", "code",
}

// DefaultAllowedAttrs are the only attributes that survive sanitization.
// None of them can carry executable content.
var DefaultAllowedAttrs = []string{"class", "style", "dir"}

// allowedStyleProps are the CSS properties permitted inside a style
// attribute. RTL layout hints only.
var allowedStyleProps = []string{"direction", "text-align", "width"}

// unsafeMarkers are substrings that must never appear in sanitized output.
// Finding one after sanitization means the allowlist was bypassed, and the
// sanitizer fails closed to text-only content.
var unsafeMarkers = []string{
	"<script", "<iframe", "<object", "<embed", "<form", "<input", "<button",
	"javascript:", "data:text/html", "vbscript:",
	"onclick=", "onerror=", "onload=", "onmouseover=", "onfocus=", "onblur=",
}

// unsafeMarkerPattern strips marker substrings out of fallback text output.
var unsafeMarkerPattern = regexp.MustCompile(`(?i)javascript:|vbscript:|data:text/html|on(?:click|error|load|mouseover|focus|blur)=`)

// Sanitizer neutralizes untrusted markup down to the allowlist.
type Sanitizer interface {
	Sanitize(markup string) string
}

// AllowlistSanitizer enforces the tag/attribute allowlist via bluemonday,
// with a fail-closed fallback: if sanitized output still carries an unsafe
// marker, every tag is discarded and text-only content is returned. The
// operation is idempotent.
type AllowlistSanitizer struct {
	policy     *bluemonday.Policy
	strict     *bluemonday.Policy
	onFallback func(reason string)
}

// NewAllowlistSanitizer builds a sanitizer for the given allowlist. Empty
// slices select the defaults. onFallback, if non-nil, is invoked when the
// fail-closed path triggers.
func NewAllowlistSanitizer(tags, attrs []string, onFallback func(reason string)) *AllowlistSanitizer {
	if len(tags) == 0 {
		tags = DefaultAllowedTags
	}
	if len(attrs) == 0 {
		attrs = DefaultAllowedAttrs
	}

	policy := bluemonday.NewPolicy()
	policy.AllowElements(tags...)
	for _, attr := range attrs {
		if attr == "style" {
			policy.AllowAttrs("style").Globally()
			policy.AllowStyles(allowedStyleProps...).Globally()
			continue
		}
		policy.AllowAttrs(attr).Globally()
	}

	return &AllowlistSanitizer{
		policy:     policy,
		strict:     bluemonday.StrictPolicy(),
		onFallback: onFallback,
	}
}

// Sanitize applies the allowlist. Script, iframe, object, embed, form and
// event-handler attributes can never survive because they are simply not in
// the policy; the marker check afterwards guards against anything that
// slips through as text, such as a javascript: scheme in prose.
func (s *AllowlistSanitizer) Sanitize(markup string) string {
	out := s.policy.Sanitize(markup)
	if marker := findUnsafeMarker(out); marker != "" {
		if s.onFallback != nil {
			s.onFallback(marker)
		}
		return s.failClosed(markup)
	}
	return out
}

// failClosed discards all markup and removes the marker substrings
// themselves, so the output is plain escaped text with nothing executable
// left in it.
func (s *AllowlistSanitizer) failClosed(markup string) string {
	text := s.strict.Sanitize(markup)
	text = unsafeMarkerPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// findUnsafeMarker returns the first unsafe marker present, or "".
func findUnsafeMarker(markup string) string {
	lower := strings.ToLower(markup)
	for _, marker := range unsafeMarkers {
		if strings.Contains(lower, marker) {
			return marker
		}
	}
	return ""
}
