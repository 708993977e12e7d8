package answerhtml

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hashem-Al-Qurashi/arabic-legal-ai-sub000/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.AnswerPreprocessor = (*pipeline.ModelOutputPreprocessor)(nil)
	_ pipeline.MarkupConverter    = (*pipeline.BlockConverter)(nil)
	_ pipeline.CodeRenderer       = (*pipeline.GoldmarkCodeRenderer)(nil)
	_ pipeline.Sanitizer          = (*pipeline.AllowlistSanitizer)(nil)
	_ pipeline.CSSInjector        = (*pipeline.CSSInjection)(nil)
	_ pdfConverter                = (*rodConverter)(nil)
)

// Service orchestrates the answer rendering pipeline. Create with New,
// render with Format, and Close when done if PDF export was used. A Service
// is safe for concurrent use: every stage is stateless given its input.
type Service struct {
	cfg          serviceConfig
	preprocessor pipeline.AnswerPreprocessor
	extractor    *pipeline.TableExtractor
	converter    pipeline.MarkupConverter
	sanitizer    pipeline.Sanitizer
	cssInjector  pipeline.CSSInjector
	pdfConverter pdfConverter
	notifier     Notifier
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithAllowlist).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:        defaultTimeout,
			highlightStyle: DefaultHighlightStyle,
			documentTitle:  defaultDocumentTitle,
		},
		preprocessor: &pipeline.ModelOutputPreprocessor{},
		extractor:    &pipeline.TableExtractor{},
		cssInjector:  &pipeline.CSSInjection{},
		notifier:     noopNotifier{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.converter = pipeline.NewBlockConverter(
		pipeline.NewGoldmarkCodeRenderer(s.cfg.highlightStyle),
	)
	s.sanitizer = pipeline.NewAllowlistSanitizer(
		s.cfg.allowedTags,
		s.cfg.allowedAttrs,
		func(marker string) {
			s.notifier.Notify(
				fmt.Sprintf("unsafe content stripped from answer (%s)", marker),
				LevelWarn,
			)
		},
	)

	// Create PDF converter if not injected (e.g., by tests)
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s
}

// Format renders raw model output as sanitized HTML. It never fails on
// untrusted input: unparseable structure degrades to plain paragraphs, and
// unsafe markup is stripped fail-closed. Empty or whitespace-only input
// yields an empty string.
func (s *Service) Format(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	text := s.preprocessor.Normalize(raw)
	text = s.extractor.Extract(text)
	markup := s.converter.Convert(text)
	return s.sanitizer.Sanitize(markup)
}

// Sanitize applies only the sanitization stage to already-assembled markup.
// Sanitizing sanitized output is a no-op.
func (s *Service) Sanitize(markup string) string {
	return s.sanitizer.Sanitize(markup)
}

// ExportPDF formats raw model output and renders the standalone document to
// PDF via headless Chrome. The context bounds the rendering time.
func (s *Service) ExportPDF(ctx context.Context, raw string) ([]byte, error) {
	doc, err := s.ExportHTML(raw)
	if err != nil {
		return nil, err
	}

	pdf, err := s.pdfConverter.ToPDF(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	return pdf, nil
}

// Close releases resources held for PDF export (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdfConverter != nil {
		return s.pdfConverter.Close()
	}
	return nil
}
