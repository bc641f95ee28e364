package catalogclient

import "github.com/microcosm-cc/bluemonday"

// Sanitizer makes HTML-bearing text safe to render.
type Sanitizer interface {
	Sanitize(html string) string
}

// HTMLSanitizer allows user-generated-content markup and strips scripts,
// event handlers and unsafe URLs.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewHTMLSanitizer creates a sanitizer with the UGC policy.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: bluemonday.UGCPolicy()}
}

// Sanitize returns html with disallowed elements and attributes removed.
func (s *HTMLSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
