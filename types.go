package answerhtml

import "time"

// Notification levels passed to a Notifier.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Notifier receives user-facing notifications from the pipeline, such as
// sanitizer fail-closed events. Implementations must not block; the
// pipeline runs synchronously on the render path.
type Notifier interface {
	Notify(message, level string)
}

// noopNotifier is the default sink.
type noopNotifier struct{}

func (noopNotifier) Notify(string, string) {}

// defaultTimeout bounds PDF rendering when no timeout is configured.
const defaultTimeout = 30 * time.Second

// DefaultHighlightStyle is the chroma style used for fenced code blocks.
const DefaultHighlightStyle = "monokai"

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout        time.Duration
	highlightStyle string
	allowedTags    []string
	allowedAttrs   []string
	documentCSS    string
	documentTitle  string
}

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("answerhtml: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithNotifier installs a notification sink. The default discards
// notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithAllowlist overrides the sanitizer's allowed tags and attributes.
// Empty slices keep the defaults.
func WithAllowlist(tags, attrs []string) Option {
	return func(s *Service) {
		s.cfg.allowedTags = tags
		s.cfg.allowedAttrs = attrs
	}
}

// WithHighlightStyle sets the chroma style for fenced code blocks.
func WithHighlightStyle(style string) Option {
	return func(s *Service) {
		if style != "" {
			s.cfg.highlightStyle = style
		}
	}
}

// WithDocumentCSS sets the stylesheet injected into exported documents.
func WithDocumentCSS(css string) Option {
	return func(s *Service) {
		s.cfg.documentCSS = css
	}
}

// WithDocumentTitle sets the title of exported documents.
func WithDocumentTitle(title string) Option {
	return func(s *Service) {
		s.cfg.documentTitle = title
	}
}
