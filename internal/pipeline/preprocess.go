package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Literal bold wrappers emitted by the model instead of markdown emphasis
	boldArtifact = regexp.MustCompile(`(?i)</?(?:b|strong)>`)

	// ATX heading glued to the end of the previous sentence, e.g. "النص.## العنوان"
	gluedHeading = regexp.MustCompile(`([^#\n\s])(#{1,6}[ \t]*\p{L})`)

	// Digit-dot list marker glued to preceding text, e.g. "التالية:1. البند"
	gluedNumbered = regexp.MustCompile(`([^\d\s])(\d{1,2}\.[ \t])`)

	// Arabic ordinal word followed by a colon, glued after punctuation
	gluedOrdinal = regexp.MustCompile(`([^\s\p{L}])[ \t]*((?:أولاً|أولا|ثانياً|ثانيا|ثالثاً|ثالثا|رابعاً|رابعا|خامساً|خامسا|سادساً|سادسا|سابعاً|سابعا|ثامناً|ثامنا|تاسعاً|تاسعا|عاشراً|عاشرا)[ \t]*[:：])`)

	// Arabic section-starter word followed by a colon, glued after punctuation
	gluedStarter = regexp.MustCompile(`([^\s\p{L}])[ \t]*((?:ملاحظة|الخلاصة|باختصار|مثال|تنبيه)[ \t]*[:：])`)

	// Bullet glued to preceding text on the same line
	gluedBullet = regexp.MustCompile(`(\S)[ \t]*[•◦][ \t]*`)

	// Bullet characters at line start, normalized to "- "
	bulletMarker = regexp.MustCompile(`(?m)^[•◦][ \t]*`)

	// ATX heading without the space after the hashes, e.g. "#العنوان"
	headingNoSpace = regexp.MustCompile(`(?m)^(#{1,6})([^#\s])`)
)

// bidiControls are directional formatting and BOM-class characters that models
// leak into Arabic output. They are invisible and break marker detection.
var bidiControls = map[rune]bool{
	'‎': true, // LRM
	'‏': true, // RLM
	'‪': true, // LRE
	'‫': true, // RLE
	'‬': true, // PDF
	'‭': true, // LRO
	'‮': true, // RLO
	'⁦': true, // LRI
	'⁧': true, // RLI
	'⁨': true, // FSI
	'⁩': true, // PDI
	'؜': true, // ALM
	// BOM / ZWNBSP; written as an escape because a literal U+FEFF is only
	// valid at the very start of a Go source file.
	'\uFEFF': true,
}

// AnswerPreprocessor defines the contract for raw answer normalization.
type AnswerPreprocessor interface {
	Normalize(content string) string
}

// ModelOutputPreprocessor normalizes raw model output before structural parsing.
type ModelOutputPreprocessor struct{}

// Normalize applies all cleanup passes to raw model output.
// Order matters: invisible characters are removed first so the boundary
// repairs see the real text, then glued markers are split onto their own
// lines, then marker spellings are canonicalized. The whole sequence is
// idempotent: markers repaired once end up preceded by a newline and no
// longer match the glued patterns.
func (p *ModelOutputPreprocessor) Normalize(content string) string {
	content = normalizeLineEndings(content)
	content = stripBidiControls(content)
	content = stripBoldArtifacts(content)
	content = repairLines(content)
	content = compressBlankLines(content)
	return content
}

// repairLines applies the marker repairs line by line, skipping fenced code
// blocks so code samples are never rewritten.
func repairLines(content string) string {
	lines := strings.Split(content, "\n")
	inFence := false
	for i, line := range lines {
		if fenceLine.MatchString(strings.TrimSpace(line)) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		line = repairGluedMarkers(line)
		lines[i] = normalizeMarkers(line)
	}
	return strings.Join(lines, "\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// stripBidiControls removes directional marks and BOM-class characters.
func stripBidiControls(content string) string {
	return strings.Map(func(r rune) rune {
		if bidiControls[r] {
			return -1
		}
		return r
	}, content)
}

// stripBoldArtifacts removes literal <b>/<strong> wrappers that the model
// emits instead of markdown emphasis. This is a targeted cleanup of a known
// generation artifact, not general tag stripping; the sanitizer owns that.
func stripBoldArtifacts(content string) string {
	return boldArtifact.ReplaceAllString(content, "")
}

// repairGluedMarkers inserts a line break wherever a structural marker is
// concatenated directly to preceding text, which the model does when it
// omits newlines between sections.
func repairGluedMarkers(content string) string {
	content = gluedHeading.ReplaceAllString(content, "$1\n$2")
	content = gluedNumbered.ReplaceAllString(content, "$1\n$2")
	content = gluedOrdinal.ReplaceAllString(content, "$1\n$2")
	content = gluedStarter.ReplaceAllString(content, "$1\n$2")
	content = gluedBullet.ReplaceAllString(content, "$1\n- ")
	return content
}

// normalizeMarkers canonicalizes marker spellings so the converter only has
// to recognize one form: "#عنوان" gains its space, "•" bullets become "- ".
func normalizeMarkers(content string) string {
	content = headingNoSpace.ReplaceAllString(content, "$1 $2")
	content = bulletMarker.ReplaceAllString(content, "- ")
	return content
}
