// Package answerhtml renders raw Arabic legal-assistant model output into
// bounded, sanitized HTML ready for direct injection into a page.
//
// # Quick Start
//
// Create a service and format an answer:
//
//	svc := answerhtml.New()
//	markup := svc.Format(rawModelOutput)
//
// Format never fails: malformed markdown degrades to plain paragraphs and
// unsafe markup is stripped, fail-closed. The returned string only ever
// contains tags and attributes from the configured allowlist.
//
// # Rendering Pipeline
//
// Each call runs four synchronous stages:
//
//  1. Preprocessing (bidi/control stripping, glued-marker repair)
//  2. Table extraction (markdown pipe tables, Arabic comparison blocks)
//  3. Block conversion (headings, lists, code fences, paragraphs)
//  4. Allowlist sanitization (bluemonday, fail-closed fallback)
//
// The pipeline holds no state between calls; rendering the same raw text
// twice, including partial text during streaming, produces the same output.
//
// # Export
//
// ExportHTML wraps formatted markup in a standalone RTL HTML document with
// an injected stylesheet, and ExportPDF renders that document to PDF via
// headless Chrome (go-rod).
//
// # Identifier Validation
//
// ValidIdentifierFormat, SanitizeIdentifier and IdentifierExists implement
// the boundary checks callers apply to conversation identifiers before any
// content is fetched and handed to the pipeline.
package answerhtml
