package i18n

import (
	"golang.org/x/text/language"
)

// Matcher negotiates a supported language from an Accept-Language header.
type Matcher struct {
	codes   []string
	matcher language.Matcher
}

// NewMatcher builds a matcher over the given codes. The first code is the
// fallback x/text reports for unrelated tags; MatchAcceptLanguage rejects it.
func NewMatcher(codes []string) *Matcher {
	tags := make([]language.Tag, 0, len(codes))
	kept := make([]string, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		kept = append(kept, Normalize(code))
	}
	return &Matcher{codes: kept, matcher: language.NewMatcher(tags)}
}

// NewEnabledMatcher builds a matcher over the enabled languages with the
// default language first.
func NewEnabledMatcher() *Matcher {
	codes := []string{DefaultLanguage}
	for _, cfg := range GetEnabledLanguages() {
		if cfg.Code != DefaultLanguage {
			codes = append(codes, cfg.Code)
		}
	}
	return NewMatcher(codes)
}

// Supported reports whether code is one of the matcher's languages.
func (m *Matcher) Supported(code string) bool {
	code = Normalize(code)
	for _, c := range m.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Codes returns the languages the matcher negotiates between.
func (m *Matcher) Codes() []string {
	out := make([]string, len(m.codes))
	copy(out, m.codes)
	return out
}

// MatchAcceptLanguage returns the best supported language for the header.
// ok is false when the header is empty or malformed, or when the best match
// is only the matcher's fallback (Low confidence, e.g. "sw" against "en").
func (m *Matcher) MatchAcceptLanguage(header string) (string, bool) {
	if header == "" || len(m.codes) == 0 {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, index, confidence := m.matcher.Match(tags...)
	if confidence <= language.Low {
		return "", false
	}
	return m.codes[index], true
}
