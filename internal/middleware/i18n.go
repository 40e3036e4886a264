package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/gotrs-io/gotrs-rtl/internal/config"
	"github.com/gotrs-io/gotrs-rtl/internal/direction"
	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
)

const (
	// LanguageContextKey is the key for storing language in context
	LanguageContextKey = "language"
	// AdapterContextKey is the key for storing the request's direction adapter
	AdapterContextKey = "direction_adapter"
)

// DirectionMiddleware detects the request language and attaches a
// direction adapter for it.
type DirectionMiddleware struct {
	mu              sync.RWMutex
	matcher         *i18n.Matcher
	defaultLanguage string
	cookieName      string
	cookieMaxAge    int
	options         []direction.Option
}

// NewDirectionMiddleware creates the middleware. opts are passed to every
// adapter it builds.
func NewDirectionMiddleware(cfg config.I18nConfig, opts ...direction.Option) *DirectionMiddleware {
	m := &DirectionMiddleware{
		matcher: i18n.NewEnabledMatcher(),
		options: opts,
	}
	m.UpdateConfig(cfg)
	return m
}

// UpdateConfig applies a reloaded i18n section to subsequent requests.
func (m *DirectionMiddleware) UpdateConfig(cfg config.I18nConfig) {
	defaultLanguage := i18n.Normalize(cfg.DefaultLanguage)
	if defaultLanguage == "" {
		defaultLanguage = i18n.DefaultLanguage
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "lang"
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultLanguage = defaultLanguage
	m.cookieName = cookieName
	m.cookieMaxAge = cfg.CookieMaxAge
}

func (m *DirectionMiddleware) settings() (defaultLanguage, cookieName string, cookieMaxAge int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLanguage, m.cookieName, m.cookieMaxAge
}

// Handle returns the middleware handler function
func (m *DirectionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.detectLanguage(c)

		c.Set(LanguageContextKey, lang)
		c.Set(AdapterContextKey, direction.ForLanguage(lang, m.options...))

		c.Header("Content-Language", lang)
		c.Header("Vary", "Accept-Language, Cookie")

		c.Next()
	}
}

// detectLanguage picks, in order: ?lang=, the language cookie, the
// Accept-Language header, the configured default.
func (m *DirectionMiddleware) detectLanguage(c *gin.Context) string {
	defaultLanguage, cookieName, cookieMaxAge := m.settings()

	if lang := c.Query("lang"); lang != "" && m.matcher.Supported(lang) {
		lang = i18n.Normalize(lang)
		c.SetCookie(cookieName, lang, cookieMaxAge, "/", "", false, true)
		return lang
	}

	if lang, err := c.Cookie(cookieName); err == nil && m.matcher.Supported(lang) {
		return i18n.Normalize(lang)
	}

	if lang, ok := m.matcher.MatchAcceptLanguage(c.GetHeader("Accept-Language")); ok {
		return lang
	}

	return defaultLanguage
}

// GetLanguage gets the current language from context
func GetLanguage(c *gin.Context) string {
	if lang, exists := c.Get(LanguageContextKey); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return i18n.DefaultLanguage
}

// GetAdapter returns the request's adapter, building one from the request
// language when the middleware did not run.
func GetAdapter(c *gin.Context) *direction.Adapter {
	if v, exists := c.Get(AdapterContextKey); exists {
		if a, ok := v.(*direction.Adapter); ok {
			return a
		}
	}
	return direction.ForLanguage(GetLanguage(c))
}

// Supported reports whether code is one of the languages the middleware
// negotiates between.
func (m *DirectionMiddleware) Supported(code string) bool {
	return m.matcher.Supported(code)
}

// SetLanguageCookie sets the language preference cookie
func (m *DirectionMiddleware) SetLanguageCookie(c *gin.Context, lang string) {
	_, cookieName, cookieMaxAge := m.settings()
	c.SetCookie(cookieName, lang, cookieMaxAge, "/", "", false, true)
}

// ClearLanguageCookie clears the language preference cookie
func (m *DirectionMiddleware) ClearLanguageCookie(c *gin.Context) {
	_, cookieName, _ := m.settings()
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
}
