package answerhtml

import "errors"

// Sentinel errors for library operations. The Format pipeline itself never
// returns errors; these cover export, PDF rendering and configuration.
var (
	ErrEmptyDocument  = errors.New("document content cannot be empty")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Config validation errors.
	ErrConfigNotFound        = errors.New("config file not found")
	ErrConfigParse           = errors.New("failed to parse config")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
)
