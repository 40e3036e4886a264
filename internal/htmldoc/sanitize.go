package htmldoc

import (
	"io"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// utilityClasses accepts utility class lists including variants ("md:ml-4"),
// fractions ("w-1/2") and arbitrary values ("ms-[3px]").
var utilityClasses = regexp.MustCompile(`^[\s\p{L}\p{N}_\-:/.\[\]%#!]+$`)

// Sanitizer strips unsafe markup from user supplied HTML while keeping the
// attributes direction handling relies on.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a sanitizer based on the UGC policy. The UGC policy
// already keeps dir and lang; class is allowed on every element as well.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(utilityClasses).Globally()
	return &Sanitizer{policy: p}
}

// Sanitize returns a sanitized copy of r.
func (s *Sanitizer) Sanitize(r io.Reader) io.Reader {
	return s.policy.SanitizeReader(r)
}

// SanitizeString sanitizes an HTML string.
func (s *Sanitizer) SanitizeString(input string) string {
	return s.policy.Sanitize(input)
}
