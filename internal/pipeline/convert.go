package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// MarkupConverter defines the contract for turning preprocessed text into
// block-level markup.
type MarkupConverter interface {
	Convert(content string) string
}

// Inline emphasis patterns, applied to classified text content only. Table
// cells and code blocks never reach this pass, so their markers survive
// untouched.
var (
	strongSpan   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	emphasisSpan = regexp.MustCompile(`\*([^*]+)\*`)
)

// BlockConverter converts classified answer text into block-level markup.
// Headings map directly to h1..h6; bulleted runs become <ul>, numbered runs
// become <ol>; fenced code is delegated to the code renderer; everything
// unrecognized degrades to paragraph text. It never fails on malformed
// input.
type BlockConverter struct {
	code CodeRenderer
}

// NewBlockConverter creates a BlockConverter. A nil code renderer falls back
// to escaped <pre> blocks.
func NewBlockConverter(code CodeRenderer) *BlockConverter {
	return &BlockConverter{code: code}
}

// Convert runs the three conversion passes: classify each line, group
// consecutive same-kind lines into elements, then emit markup.
func (c *BlockConverter) Convert(content string) string {
	lines := strings.Split(content, "\n")
	classified := classifyLines(content)

	var out strings.Builder
	i := 0
	for i < len(classified) {
		cl := classified[i]

		switch cl.kind {
		case lineBlank:
			i++

		case lineRaw:
			out.WriteString(restoreRawMarkup(cl.content))
			out.WriteString("\n")
			i++

		case lineHeading:
			emitElement(&out, Element{
				Type:     TypeHeading,
				Level:    cl.level,
				Children: parseInline(cl.content),
			})
			i++

		case lineBullet, lineNumbered:
			list := Element{Type: TypeList, Ordered: cl.kind == lineNumbered}
			for i < len(classified) && classified[i].kind == cl.kind {
				list.Children = append(list.Children, Element{
					Type:     TypeListItem,
					Children: parseInline(classified[i].content),
				})
				i++
			}
			emitElement(&out, list)

		case lineFence:
			block, next := collectFence(lines, i)
			out.WriteString(c.renderCode(block))
			out.WriteString("\n")
			i = next

		default: // lineText
			var parts []string
			for i < len(classified) && classified[i].kind == lineText {
				parts = append(parts, classified[i].content)
				i++
			}
			emitParagraph(&out, parts)
		}
	}

	return strings.TrimSpace(out.String())
}

// collectFence gathers the fenced block starting at index start (the opening
// fence) through its closing fence. An unterminated fence runs to the end of
// input rather than being dropped.
func collectFence(lines []string, start int) (block string, next int) {
	end := start + 1
	for end < len(lines) {
		if fenceLine.MatchString(strings.TrimSpace(lines[end])) {
			end++
			return strings.Join(lines[start:end], "\n"), end
		}
		end++
	}
	return strings.Join(lines[start:], "\n") + "\n```", end
}

// renderCode delegates a fenced block to the code renderer, falling back to
// an escaped <pre> when rendering is unavailable or fails.
func (c *BlockConverter) renderCode(block string) string {
	if c.code != nil {
		if markup, err := c.code.Render(block); err == nil {
			return markup
		}
	}
	body := strings.TrimPrefix(block, "```")
	if idx := strings.Index(body, "\n"); idx >= 0 {
		body = body[idx+1:]
	}
	body = strings.TrimSuffix(strings.TrimSuffix(body, "```"), "\n")
	return "<pre><code>" + html.EscapeString(body) + "</code></pre>"
}

// parseInline splits content into text/strong/emphasis leaves. Bold is
// resolved before italic so "**x**" is never read as two emphasis spans.
// Leaves hold raw text; escaping happens at emission.
func parseInline(content string) []Element {
	return splitSpans(content, strongSpan, TypeStrong, func(rest string) []Element {
		return splitSpans(rest, emphasisSpan, TypeEmphasis, func(text string) []Element {
			if text == "" {
				return nil
			}
			return []Element{{Type: TypeText, Content: text}}
		})
	})
}

// splitSpans extracts every match of pattern as an element of kind, running
// inner on the text between matches.
func splitSpans(content string, pattern *regexp.Regexp, kind ElementType, inner func(string) []Element) []Element {
	var out []Element
	rest := content
	for {
		loc := pattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		out = append(out, inner(rest[:loc[0]])...)
		out = append(out, Element{Type: kind, Content: rest[loc[2]:loc[3]]})
		rest = rest[loc[1]:]
	}
	return append(out, inner(rest)...)
}

// emitElement renders one block element as markup.
func emitElement(out *strings.Builder, el Element) {
	switch el.Type {
	case TypeHeading:
		tag := headingTag(el.Level)
		out.WriteString("<" + tag + ">")
		emitInline(out, el.Children)
		out.WriteString("</" + tag + ">\n")

	case TypeList:
		tag := "ul"
		if el.Ordered {
			tag = "ol"
		}
		out.WriteString("<" + tag + ">\n")
		for _, item := range el.Children {
			out.WriteString("<li>")
			emitInline(out, item.Children)
			out.WriteString("</li>\n")
		}
		out.WriteString("</" + tag + ">\n")
	}
}

// emitParagraph renders one blank-line-delimited text block as a single
// paragraph, preserving internal line breaks as <br/>.
func emitParagraph(out *strings.Builder, lines []string) {
	out.WriteString("<p>")
	for i, line := range lines {
		if i > 0 {
			out.WriteString("<br/>")
		}
		emitInline(out, parseInline(line))
	}
	out.WriteString("</p>\n")
}

// emitInline renders leaf elements, escaping their text content.
func emitInline(out *strings.Builder, elements []Element) {
	for _, el := range elements {
		switch el.Type {
		case TypeStrong:
			out.WriteString("<strong>" + html.EscapeString(el.Content) + "</strong>")
		case TypeEmphasis:
			out.WriteString("<em>" + html.EscapeString(el.Content) + "</em>")
		default:
			out.WriteString(html.EscapeString(el.Content))
		}
	}
}

// headingTag maps a heading level to its tag. Levels map directly to h1..h6;
// out-of-range levels clamp to the nearest bound. One policy everywhere.
func headingTag(level int) string {
	switch {
	case level < 1:
		level = 1
	case level > 6:
		level = 6
	}
	return "h" + string(rune('0'+level))
}
