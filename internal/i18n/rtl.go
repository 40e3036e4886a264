package i18n

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// LanguageDirection represents text direction
type LanguageDirection string

const (
	// LTR represents left-to-right text direction
	LTR LanguageDirection = "ltr"
	// RTL represents right-to-left text direction
	RTL LanguageDirection = "rtl"
)

// String returns the attribute value for the direction.
func (d LanguageDirection) String() string {
	return string(d)
}

// DefaultLanguage is used whenever no language can be resolved.
const DefaultLanguage = "en"

// rtlLanguages is the fixed set of right-to-left languages.
var rtlLanguages = map[string]struct{}{
	"fa": {},
	"ar": {},
	"he": {},
	"ur": {},
}

// LanguageConfig contains display metadata for a language
type LanguageConfig struct {
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	NativeName string            `json:"native_name"`
	Direction  LanguageDirection `json:"direction"`
	Enabled    bool              `json:"enabled"`
}

// SupportedLanguages contains configuration for all supported languages
var SupportedLanguages = map[string]LanguageConfig{
	"en": {Code: "en", Name: "English", NativeName: "English", Direction: LTR, Enabled: true},
	"de": {Code: "de", Name: "German", NativeName: "Deutsch", Direction: LTR, Enabled: true},
	"es": {Code: "es", Name: "Spanish", NativeName: "Español", Direction: LTR, Enabled: true},
	"fr": {Code: "fr", Name: "French", NativeName: "Français", Direction: LTR, Enabled: true},
	"tr": {Code: "tr", Name: "Turkish", NativeName: "Türkçe", Direction: LTR, Enabled: true},
	"ar": {Code: "ar", Name: "Arabic", NativeName: "العربية", Direction: RTL, Enabled: true},
	"fa": {Code: "fa", Name: "Persian", NativeName: "فارسی", Direction: RTL, Enabled: true},
	"he": {Code: "he", Name: "Hebrew", NativeName: "עברית", Direction: RTL, Enabled: true},
	"ur": {Code: "ur", Name: "Urdu", NativeName: "اردو", Direction: RTL, Enabled: true},
	"zh": {Code: "zh", Name: "Chinese", NativeName: "中文", Direction: LTR, Enabled: true},
	"ja": {Code: "ja", Name: "Japanese", NativeName: "日本語", Direction: LTR, Enabled: false},
}

// Normalize reduces a language tag such as "ar-EG" or "fa_IR" to its base
// language code. Input that is not a valid tag is lowercased and returned.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return strings.ToLower(code)
	}
	base, _ := tag.Base()
	return base.String()
}

// GetLanguageConfig returns configuration for a language
func GetLanguageConfig(code string) (LanguageConfig, bool) {
	config, exists := SupportedLanguages[Normalize(code)]
	return config, exists
}

// IsRTL checks if a language is right-to-left
func IsRTL(code string) bool {
	_, ok := rtlLanguages[Normalize(code)]
	return ok
}

// GetDirection returns the text direction for a language
func GetDirection(code string) LanguageDirection {
	if IsRTL(code) {
		return RTL
	}
	return LTR
}

// GetDocumentDirection returns the value for the root element's dir attribute.
func GetDocumentDirection(code string) string {
	return string(GetDirection(code))
}

// GetTextAlignment returns the physical side text starts from.
func GetTextAlignment(code string) string {
	if IsRTL(code) {
		return "right"
	}
	return "left"
}

// GetEnabledLanguages returns only enabled languages, ordered by code
func GetEnabledLanguages() []LanguageConfig {
	var enabled []LanguageConfig
	for _, config := range SupportedLanguages {
		if config.Enabled {
			enabled = append(enabled, config)
		}
	}
	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].Code < enabled[j].Code
	})
	return enabled
}

// GetCSSClass returns CSS classes for language-specific styling
func GetCSSClass(code string) string {
	lang := Normalize(code)
	if _, exists := SupportedLanguages[lang]; !exists {
		lang = DefaultLanguage
	}
	return "lang-" + lang + " " + string(GetDirection(lang))
}

// GetHTMLAttributes returns HTML attributes for language support
func GetHTMLAttributes(code string) map[string]string {
	lang := Normalize(code)
	if lang == "" {
		lang = DefaultLanguage
	}
	return map[string]string{
		"lang": lang,
		"dir":  string(GetDirection(lang)),
	}
}
