package pipeline

import (
	"regexp"
	"strings"
)

// lineKind is the structural classification of a single input line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineHeading
	lineBullet
	lineNumbered
	lineFence
	lineRaw // placeholder-protected markup, emitted verbatim
	lineText
)

// Line classification patterns.
var (
	headingLine  = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletLine   = regexp.MustCompile(`^[-*]\s+(.*)$`)
	numberedLine = regexp.MustCompile(`^\d{1,3}[.)]\s+(.*)$`)
	fenceLine    = regexp.MustCompile("^(```|~~~)")
)

// classifiedLine pairs a line with its structural kind. For headings, level
// holds the hash count; for list items, content holds the marker-stripped
// text.
type classifiedLine struct {
	kind    lineKind
	content string
	level   int
}

// classifyLine determines the structural kind of one line. Classification is
// structural rather than lexical: a line is exactly one kind, decided once,
// so later passes never re-scan for markers inside already-claimed text.
func classifyLine(line string) classifiedLine {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return classifiedLine{kind: lineBlank}
	case strings.Contains(trimmed, rawStartMarker):
		return classifiedLine{kind: lineRaw, content: trimmed}
	case fenceLine.MatchString(trimmed):
		return classifiedLine{kind: lineFence, content: trimmed}
	}

	if m := headingLine.FindStringSubmatch(trimmed); m != nil {
		return classifiedLine{kind: lineHeading, content: strings.TrimSpace(m[2]), level: len(m[1])}
	}
	if m := bulletLine.FindStringSubmatch(trimmed); m != nil {
		return classifiedLine{kind: lineBullet, content: m[1]}
	}
	if m := numberedLine.FindStringSubmatch(trimmed); m != nil {
		return classifiedLine{kind: lineNumbered, content: m[1]}
	}

	return classifiedLine{kind: lineText, content: trimmed}
}

// classifyLines runs the single classification pass over the whole text.
func classifyLines(content string) []classifiedLine {
	lines := strings.Split(content, "\n")
	out := make([]classifiedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, classifyLine(line))
	}
	return out
}
