// Package pipeline implements the answer rendering pipeline stages.
//
// Raw model output flows through four stages:
//   - Preprocessing (bidi/control stripping, glued-marker repair)
//   - Table extraction (strict markdown tables, heuristic Arabic
//     comparison blocks)
//   - Block conversion (line classification into headings, lists, code and
//     paragraphs, then markup emission)
//   - Sanitization (allowlist enforcement with a fail-closed fallback)
//
// Every stage accepts arbitrary untrusted input and degrades gracefully
// instead of erroring: unparseable structure renders as plain paragraphs,
// and unsafe markup is stripped rather than partially kept.
package pipeline
