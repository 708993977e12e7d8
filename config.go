package answerhtml

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/Hashem-Al-Qurashi/arabic-legal-ai-sub000/internal/yamlutil"
)

// Config holds file-based configuration for the rendering service.
type Config struct {
	Sanitizer SanitizerConfig `yaml:"sanitizer"`
	Code      CodeConfig      `yaml:"code"`
	Export    ExportConfig    `yaml:"export"`
}

// SanitizerConfig overrides the markup allowlist. Empty slices keep the
// built-in defaults.
type SanitizerConfig struct {
	Tags  []string `yaml:"tags"`
	Attrs []string `yaml:"attrs"`
}

// CodeConfig controls fenced code block rendering.
type CodeConfig struct {
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name (empty = default)
}

// ExportConfig controls standalone document and PDF export.
type ExportConfig struct {
	Title          string `yaml:"title"`          // document title (empty = default)
	CSSPath        string `yaml:"cssPath"`        // stylesheet file (empty = built-in RTL styles)
	TimeoutSeconds int    `yaml:"timeoutSeconds"` // PDF rendering timeout (0 = default)
}

// DefaultConfig returns a neutral configuration: built-in allowlist,
// default highlight style, built-in export styles.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks config values that can fail late and confusingly
// otherwise. The highlight style must exist in chroma's registry; an
// unknown name would silently fall back at render time.
func (c *Config) Validate() error {
	if name := c.Code.HighlightStyle; name != "" {
		if _, ok := styles.Registry[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
		}
	}
	if c.Export.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: negative export timeout", ErrConfigParse)
	}
	return nil
}

// Options converts the config into service options. The export stylesheet
// is read here so a missing file fails at startup, not mid-export.
func (c *Config) Options() ([]Option, error) {
	var opts []Option

	if len(c.Sanitizer.Tags) > 0 || len(c.Sanitizer.Attrs) > 0 {
		opts = append(opts, WithAllowlist(c.Sanitizer.Tags, c.Sanitizer.Attrs))
	}
	if c.Code.HighlightStyle != "" {
		opts = append(opts, WithHighlightStyle(c.Code.HighlightStyle))
	}
	if c.Export.Title != "" {
		opts = append(opts, WithDocumentTitle(c.Export.Title))
	}
	if c.Export.TimeoutSeconds > 0 {
		opts = append(opts, WithTimeout(time.Duration(c.Export.TimeoutSeconds)*time.Second))
	}
	if c.Export.CSSPath != "" {
		css, err := os.ReadFile(c.Export.CSSPath)
		if err != nil {
			return nil, fmt.Errorf("%w: reading export stylesheet: %v", ErrConfigParse, err)
		}
		opts = append(opts, WithDocumentCSS(string(css)))
	}

	return opts, nil
}
