package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// Raw-markup placeholders use Unicode Private Use Area characters, so table
// HTML produced here passes through the markdown converter untouched and is
// restored afterwards. They cannot collide with any real answer text.
const (
	rawStartMarker = "\uE000"
	rawEndMarker   = "\uE001"
)

// emptyCell is the sentinel rendered for a missing table cell.
const emptyCell = "-"

// Default column headers for heuristic comparison tables that never declare
// their own.
const (
	defaultFirstHeader  = "العنصر الأول"
	defaultSecondHeader = "العنصر الثاني"
)

// Captions for the two table sources.
const (
	markdownTableCaption   = "جدول"
	comparisonTableCaption = "جدول مقارنة"
)

// Markdown table detection patterns.
var (
	pipeRow      = regexp.MustCompile(`^\s*\|?.*\|.*$`)
	separatorRow = regexp.MustCompile(`^\s*\|?[\s:\-|]+\|?\s*$`)
)

// Comparison block patterns, in fixed priority order. The first pattern that
// matches a line wins for that line.
var (
	// "جانب: قيمة | جانب: قيمة"
	sideBySide = regexp.MustCompile(`^(.*?)[:：](.*?)\|(?:(.*?)[:：])?(.*)$`)
	// "- معيار: قيمة"
	labeledBullet = regexp.MustCompile(`^[-*]\s*(.+?)[:：]\s*(.+)$`)
	// "1. قيمة"
	numberedValue = regexp.MustCompile(`^\d{1,3}[.)]\s*(.+)$`)
	// "الجانب الأول | الجانب الثاني" with no colons: an explicit header line
	headerPair = regexp.MustCompile(`^([^|:：]{1,60})\|([^|:：]{1,60})$`)
)

// comparisonKeywords gate the heuristic detector. Without one of these in
// the text, no comparison extraction is attempted at all.
var comparisonKeywords = []string{"مقارنة", "الفرق", "جدول"}

// TableData is the structured form shared by both detectors. Finalization
// pads headers and rows to a single cardinality with the empty-cell
// sentinel; nothing is ever truncated.
type TableData struct {
	Caption string
	Headers []string
	Rows    [][]string
}

// Finalize pads headers and every row to the widest cardinality observed.
func (t *TableData) Finalize() {
	width := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	t.Headers = padCells(t.Headers, width)
	for i, row := range t.Rows {
		t.Rows[i] = padCells(row, width)
	}
}

func padCells(cells []string, width int) []string {
	for len(cells) < width {
		cells = append(cells, emptyCell)
	}
	return cells
}

// TableExtractor detects tabular content in preprocessed text and replaces
// it with rendered, placeholder-protected table markup. Text without tables
// passes through unchanged; extraction never fails.
type TableExtractor struct{}

// Extract runs both detectors in sequence: the strict markdown pipe-table
// detector first, then the heuristic Arabic comparison detector over
// whatever text remains unclaimed.
func (e *TableExtractor) Extract(content string) string {
	content = extractMarkdownTables(content)
	content = extractComparisonBlocks(content)
	return content
}

// fencedMask marks the lines that sit inside fenced code blocks, including
// the fence delimiters. Both detectors leave those lines alone.
func fencedMask(lines []string) []bool {
	mask := make([]bool, len(lines))
	inFence := false
	for i, line := range lines {
		if fenceLine.MatchString(strings.TrimSpace(line)) {
			inFence = !inFence
			mask[i] = true
			continue
		}
		mask[i] = inFence
	}
	return mask
}

// extractMarkdownTables replaces every header/separator/data-row span with
// rendered table markup.
func extractMarkdownTables(content string) string {
	lines := strings.Split(content, "\n")
	fenced := fencedMask(lines)
	var out []string

	i := 0
	for i < len(lines) {
		end := -1
		if !fenced[i] {
			end = matchMarkdownTable(lines, i)
		}
		if end < 0 {
			out = append(out, lines[i])
			i++
			continue
		}

		data := TableData{Caption: markdownTableCaption, Headers: splitPipeRow(lines[i])}
		for _, row := range lines[i+2 : end] {
			data.Rows = append(data.Rows, splitPipeRow(row))
		}
		out = append(out, protectRawMarkup(renderTable(data)))
		i = end
	}

	return strings.Join(out, "\n")
}

// matchMarkdownTable reports the exclusive end index of a strict markdown
// table starting at index start, or -1. A table is a header row, a
// separator row of dashes/colons/pipes, and at least one data row.
func matchMarkdownTable(lines []string, start int) int {
	if start+2 >= len(lines) {
		return -1
	}
	if !isPipeRow(lines[start]) || isSeparatorRow(lines[start]) {
		return -1
	}
	if !isSeparatorRow(lines[start+1]) {
		return -1
	}
	end := start + 2
	for end < len(lines) && isPipeRow(lines[end]) && !isSeparatorRow(lines[end]) {
		end++
	}
	if end == start+2 {
		return -1
	}
	return end
}

func isPipeRow(line string) bool {
	return strings.Contains(line, "|") && pipeRow.MatchString(line)
}

func isSeparatorRow(line string) bool {
	return strings.Contains(line, "-") && strings.Contains(line, "|") && separatorRow.MatchString(line)
}

// splitPipeRow splits a pipe-delimited row into trimmed cells, dropping the
// empty leading/trailing cells produced by boundary pipes.
func splitPipeRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

// extractComparisonBlocks applies the heuristic Arabic comparison detector.
// It is deliberately conservative: it needs a comparison keyword in the
// text, at least one colon-delimited two-sided line, and at least two
// extractable rows; otherwise the text passes through unchanged. A false
// negative costs plain paragraphs; a false positive costs a garbled table.
func extractComparisonBlocks(content string) string {
	if !containsComparisonKeyword(content) {
		return content
	}

	lines := strings.Split(content, "\n")
	start, end := longestComparisonRun(lines, fencedMask(lines))
	if end-start < 2 || !hasTwoPartLine(lines[start:end]) {
		return content
	}

	data := TableData{
		Caption: comparisonTableCaption,
		Headers: []string{defaultFirstHeader, defaultSecondHeader},
	}
	for _, line := range lines[start:end] {
		if h := matchHeaderPair(line); h != nil {
			data.Headers = h
			continue
		}
		if row := matchComparisonRow(line); row != nil {
			data.Rows = append(data.Rows, row)
		}
	}
	if len(data.Rows) == 0 {
		return content
	}

	replaced := append([]string{}, lines[:start]...)
	replaced = append(replaced, protectRawMarkup(renderTable(data)))
	replaced = append(replaced, lines[end:]...)
	return strings.Join(replaced, "\n")
}

// hasTwoPartLine reports whether the run contains at least one
// colon-delimited two-part line. Numbered values alone never trigger a
// table: without a two-sided line there is nothing to compare.
func hasTwoPartLine(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "|") && sideBySide.MatchString(trimmed) {
			return true
		}
		if labeledBullet.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func containsComparisonKeyword(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, rawStartMarker) {
			continue // already-extracted table markup does not count
		}
		for _, kw := range comparisonKeywords {
			if strings.Contains(line, kw) {
				return true
			}
		}
	}
	return false
}

// longestComparisonRun finds the longest run of consecutive lines that match
// a comparison pattern, returning its [start, end) bounds. Lines outside the
// run are never touched, so ambiguous prose around the block survives.
func longestComparisonRun(lines []string, fenced []bool) (int, int) {
	bestStart, bestEnd := 0, 0
	i := 0
	for i < len(lines) {
		if fenced[i] || !isComparisonLine(lines[i]) {
			i++
			continue
		}
		j := i
		for j < len(lines) && !fenced[j] && isComparisonLine(lines[j]) {
			j++
		}
		if j-i > bestEnd-bestStart {
			bestStart, bestEnd = i, j
		}
		i = j
	}
	return bestStart, bestEnd
}

func isComparisonLine(line string) bool {
	if strings.Contains(line, rawStartMarker) {
		return false
	}
	return matchHeaderPair(strings.TrimSpace(line)) != nil ||
		matchComparisonRow(line) != nil
}

// matchHeaderPair recognizes an explicit two-part header line.
func matchHeaderPair(line string) []string {
	m := headerPair.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil
	}
	left, right := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	if left == "" || right == "" {
		return nil
	}
	return []string{left, right}
}

// matchComparisonRow scans one line against the candidate patterns in fixed
// priority order and returns a two-cell row, or nil. Sides that are absent
// come back as the empty-cell sentinel.
func matchComparisonRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	if strings.Contains(trimmed, "|") {
		if m := sideBySide.FindStringSubmatch(trimmed); m != nil {
			left := strings.TrimSpace(m[2])
			right := strings.TrimSpace(m[4])
			return []string{orSentinel(left), orSentinel(right)}
		}
	}
	if m := labeledBullet.FindStringSubmatch(trimmed); m != nil {
		return []string{strings.TrimSpace(m[1]), strings.TrimSpace(m[2])}
	}
	if m := numberedValue.FindStringSubmatch(trimmed); m != nil {
		return []string{strings.TrimSpace(m[1]), emptyCell}
	}
	return nil
}

func orSentinel(cell string) string {
	if cell == "" {
		return emptyCell
	}
	return cell
}

// renderTable emits the shared table markup: caption, header row, body rows.
// Cell text is escaped here; the sanitizer downstream only ever sees table
// markup this function produced.
func renderTable(data TableData) string {
	data.Finalize()

	var b strings.Builder
	b.WriteString(`<table class="comparison-table">`)
	b.WriteString("<caption>" + html.EscapeString(data.Caption) + "</caption>")
	b.WriteString("<thead><tr>")
	for _, h := range data.Headers {
		b.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range data.Rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// protectRawMarkup wraps markup in placeholder markers so the converter
// passes it through verbatim.
func protectRawMarkup(markup string) string {
	return rawStartMarker + markup + rawEndMarker
}

// restoreRawMarkup strips the placeholder markers after conversion.
func restoreRawMarkup(content string) string {
	content = strings.ReplaceAll(content, rawStartMarker, "")
	return strings.ReplaceAll(content, rawEndMarker, "")
}
