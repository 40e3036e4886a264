package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
)

// LanguageSelector validates languages and stores the visitor's choice.
type LanguageSelector interface {
	Supported(code string) bool
	SetLanguageCookie(c *gin.Context, lang string)
	ClearLanguageCookie(c *gin.Context)
}

// LanguageHandler lets clients pick the language used for later requests.
type LanguageHandler struct {
	selector LanguageSelector
}

func NewLanguageHandler(selector LanguageSelector) *LanguageHandler {
	return &LanguageHandler{selector: selector}
}

// RegisterRoutes mounts POST /api/v1/language.
func (h *LanguageHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/v1/language", h.SetLanguage)
}

type setLanguageRequest struct {
	Language string `json:"language"`
}

// SetLanguage handles POST /api/v1/language. An empty language clears the
// stored choice so detection falls back to Accept-Language and the default.
func (h *LanguageHandler) SetLanguage(c *gin.Context) {
	var req setLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		h.selector.ClearLanguageCookie(c)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"cleared": true},
		})
		return
	}

	if !h.selector.Supported(lang) {
		badRequest(c, "Language not supported")
		return
	}

	lang = i18n.Normalize(lang)
	h.selector.SetLanguageCookie(c, lang)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"language":  lang,
			"direction": i18n.GetDirection(lang),
		},
	})
}
