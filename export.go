package answerhtml

import (
	"fmt"
	"html"
	"strings"
)

// defaultDocumentTitle is used when no title is configured.
const defaultDocumentTitle = "إجابة المستشار القانوني"

// documentTemplate wraps formatted answer markup in a complete RTL HTML5
// document.
const documentTemplate = `<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// defaultDocumentCSS is the stylesheet injected into exported documents
// when none is configured. Kept to RTL layout and table legibility.
const defaultDocumentCSS = `body{direction:rtl;font-family:"Noto Naskh Arabic","Amiri",serif;line-height:1.8;margin:2rem}
table.comparison-table{border-collapse:collapse;width:100%}
table.comparison-table th,table.comparison-table td{border:1px solid #999;padding:.4rem .6rem;text-align:right}
table.comparison-table caption{font-weight:bold;margin-bottom:.5rem}
pre{direction:ltr;text-align:left;overflow-x:auto}`

// ExportHTML formats raw model output and wraps it in a standalone RTL
// document with the configured stylesheet injected. Returns
// ErrEmptyDocument when the input formats to nothing.
func (s *Service) ExportHTML(raw string) (string, error) {
	markup := s.Format(raw)
	if strings.TrimSpace(markup) == "" {
		return "", ErrEmptyDocument
	}

	doc := fmt.Sprintf(documentTemplate, html.EscapeString(s.cfg.documentTitle), markup)

	css := s.cfg.documentCSS
	if css == "" {
		css = defaultDocumentCSS
	}
	return s.cssInjector.InjectCSS(doc, css), nil
}
