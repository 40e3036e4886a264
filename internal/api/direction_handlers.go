package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gotrs-io/gotrs-rtl/internal/direction"
	"github.com/gotrs-io/gotrs-rtl/internal/htmldoc"
	"github.com/gotrs-io/gotrs-rtl/internal/i18n"
	"github.com/gotrs-io/gotrs-rtl/internal/metrics"
	"github.com/gotrs-io/gotrs-rtl/internal/middleware"
)

// DirectionHandler exposes the direction adapter over JSON.
type DirectionHandler struct {
	metrics   *metrics.Metrics
	sanitizer *htmldoc.Sanitizer
	options   []direction.Option
}

// NewDirectionHandler creates the handler. opts are applied to adapters
// built from an explicit request language.
func NewDirectionHandler(m *metrics.Metrics, opts ...direction.Option) *DirectionHandler {
	if m == nil {
		m = metrics.New()
	}
	return &DirectionHandler{
		metrics:   m,
		sanitizer: htmldoc.NewSanitizer(),
		options:   opts,
	}
}

// RegisterRoutes mounts the handlers under /api/v1.
func (h *DirectionHandler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.GET("/languages", h.ListLanguages)
	v1.GET("/direction/:lang", h.GetDirection)

	adapt := v1.Group("/direction")
	adapt.POST("/classes", h.AdaptClasses)
	adapt.POST("/layout", h.Layout)
	adapt.POST("/spacing", h.Spacing)
	adapt.POST("/chart", h.AdaptChart)
	adapt.POST("/html", h.AdaptHTML)
}

// adapterRequest selects the adapter for a request. Language defaults to the
// language detected by middleware; Direction, when set, overrides the
// direction derived from the language.
type adapterRequest struct {
	Language  string `json:"language"`
	Direction string `json:"direction"`
}

func (h *DirectionHandler) adapter(c *gin.Context, req adapterRequest) *direction.Adapter {
	switch {
	case req.Language == "" && req.Direction == "":
		return middleware.GetAdapter(c)
	case req.Language == "":
		req.Language = middleware.GetLanguage(c)
	}
	if req.Direction == "" {
		return direction.ForLanguage(req.Language, h.options...)
	}
	return direction.NewAdapter(req.Language, i18n.LanguageDirection(strings.ToLower(req.Direction)), h.options...)
}

func (h *DirectionHandler) observe(op string, a *direction.Adapter) {
	h.metrics.ObserveAdaptation(op, string(a.Direction()))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   msg,
	})
}

// ListLanguages handles GET /api/v1/languages
func (h *DirectionHandler) ListLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    i18n.GetEnabledLanguages(),
	})
}

// GetDirection handles GET /api/v1/direction/:lang
func (h *DirectionHandler) GetDirection(c *gin.Context) {
	lang := c.Param("lang")
	_, supported := i18n.GetLanguageConfig(lang)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"language":           lang,
			"supported":          supported,
			"rtl":                i18n.IsRTL(lang),
			"direction":          i18n.GetDirection(lang),
			"document_direction": i18n.GetDocumentDirection(lang),
			"text_alignment":     i18n.GetTextAlignment(lang),
			"css_class":          i18n.GetCSSClass(lang),
			"html_attributes":    i18n.GetHTMLAttributes(lang),
		},
	})
}

type classesRequest struct {
	adapterRequest
	Classes string `json:"classes"`
	// Marker appends the direction marker class, as LayoutClasses does.
	Marker *bool `json:"marker"`
}

// AdaptClasses handles POST /api/v1/direction/classes
func (h *DirectionHandler) AdaptClasses(c *gin.Context) {
	var req classesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	a := h.adapter(c, req.adapterRequest)
	h.observe("classes", a)

	var out string
	if req.Marker == nil || *req.Marker {
		out = a.LayoutClasses(req.Classes)
	} else {
		tokens := strings.Fields(req.Classes)
		for i, token := range tokens {
			tokens[i] = a.AdaptClass(token)
		}
		out = strings.Join(tokens, " ")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"direction": a.Direction(),
			"classes":   out,
			"physical":  a.PhysicalClasses(req.Classes),
		},
	})
}

type layoutRequest struct {
	adapterRequest
	Flex      string `json:"flex"`
	Align     string `json:"align"`
	Icon      string `json:"icon"`
	Component string `json:"component"`
}

// Layout handles POST /api/v1/direction/layout
func (h *DirectionHandler) Layout(c *gin.Context) {
	var req layoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid input")
		return
	}

	a := h.adapter(c, req.adapterRequest)
	h.observe("layout", a)

	data := gin.H{"direction": a.Direction()}
	if req.Flex != "" {
		data["flex"] = a.FlexDirection(req.Flex)
	}
	if req.Align != "" {
		data["text_align"] = a.TextAlign(req.Align)
	}
	data["icon"] = a.IconClasses(req.Icon)
	if req.Component != "" {
		data["component"] = a.DirectionalClasses(req.Component)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

type spacingRequest struct {
	adapterRequest
	Property string `json:"property" binding:"required"`
	Value    string `json:"value"`
}

// Spacing handles POST /api/v1/direction/spacing
func (h *DirectionHandler) Spacing(c *gin.Context) {
	var req spacingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Property is required")
		return
	}

	a := h.adapter(c, req.adapterRequest)
	h.observe("spacing", a)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.MarginPadding(req.Property, req.Value),
	})
}

type chartRequest struct {
	adapterRequest
	Config direction.ChartConfig `json:"config"`
}

// AdaptChart handles POST /api/v1/direction/chart
func (h *DirectionHandler) AdaptChart(c *gin.Context) {
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid chart configuration")
		return
	}

	a := h.adapter(c, req.adapterRequest)
	h.observe("chart", a)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a.AdaptChartConfig(req.Config),
	})
}

type htmlRequest struct {
	adapterRequest
	HTML     string `json:"html" binding:"required"`
	Mirror   bool   `json:"mirror"`
	Sanitize bool   `json:"sanitize"`
}

// AdaptHTML handles POST /api/v1/direction/html. The document gets dir and
// lang on its root element and, with mirror set, logical classes.
func (h *DirectionHandler) AdaptHTML(c *gin.Context) {
	var req htmlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "HTML is required")
		return
	}

	a := h.adapter(c, req.adapterRequest)
	h.observe("html", a)

	input := strings.NewReader(req.HTML)
	var doc *htmldoc.Document
	var err error
	if req.Sanitize {
		doc, err = htmldoc.Parse(h.sanitizer.Sanitize(input))
	} else {
		doc, err = htmldoc.Parse(input)
	}
	if err != nil {
		badRequest(c, "Invalid HTML")
		return
	}

	a.ApplyDocumentDirection(doc)
	rewritten := 0
	if req.Mirror {
		rewritten = doc.MirrorClasses(a)
		h.metrics.AddRewrittenClasses(rewritten)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"direction": a.Direction(),
			"rewritten": rewritten,
			"html":      doc.String(),
		},
	})
}
