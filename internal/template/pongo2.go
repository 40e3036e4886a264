package template

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gotrs-io/gotrs-rtl/internal/direction"
	"github.com/gotrs-io/gotrs-rtl/internal/middleware"
)

// Pongo2Renderer renders pongo2 templates with direction helpers in scope
type Pongo2Renderer struct {
	Debug       bool
	TemplateDir string
	set         *pongo2.TemplateSet
	logger      *zap.Logger
}

// NewPongo2Renderer creates a new Pongo2 renderer. In debug mode templates
// are reloaded from disk on every render.
func NewPongo2Renderer(templateDir string, debug bool, logger *zap.Logger) (*Pongo2Renderer, error) {
	if templateDir == "" {
		return nil, fmt.Errorf("template directory is required")
	}
	if _, err := os.Stat(templateDir); err != nil {
		return nil, fmt.Errorf("template directory not found: %w", err)
	}
	abs, err := filepath.Abs(templateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template directory: %w", err)
	}
	loader, err := pongo2.NewLocalFileSystemLoader(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to create template loader: %w", err)
	}

	set := pongo2.NewSet("gotrs-rtl", loader)
	set.Debug = debug

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pongo2Renderer{
		Debug:       debug,
		TemplateDir: abs,
		set:         set,
		logger:      logger,
	}, nil
}

// Instance returns the named template, using the set's cache unless in debug mode
func (r *Pongo2Renderer) Instance(name string) (*pongo2.Template, error) {
	if r.Debug {
		return r.set.FromFile(name)
	}
	return r.set.FromCache(name)
}

// DirectionContext returns the template helpers bound to adapter.
func DirectionContext(a *direction.Adapter) pongo2.Context {
	lang := a.Language()
	dir := string(a.Direction())
	return pongo2.Context{
		"Lang":      lang,
		"Direction": dir,
		"IsRTL":     a.IsRTL(),

		"getLang":            func() string { return lang },
		"getDirection":       func() string { return dir },
		"isRTL":              func() bool { return a.IsRTL() },
		"layoutClasses":      a.LayoutClasses,
		"adaptClass":         a.AdaptClass,
		"textAlign":          a.TextAlign,
		"flexDirection":      a.FlexDirection,
		"iconClasses":        a.IconClasses,
		"directionalClasses": a.DirectionalClasses,
		"htmlAttrs": func() *pongo2.Value {
			return pongo2.AsSafeValue(formatAttrs(a.HTMLAttributes()))
		},
	}
}

func formatAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf(`%s="%s"`, k, html.EscapeString(attrs[k])))
	}
	return strings.Join(parts, " ")
}

// Render renders a Pongo2 template for the request's language
func (r *Pongo2Renderer) Render(c *gin.Context, code int, name string, data interface{}) error {
	ctx := DirectionContext(middleware.GetAdapter(c))

	switch v := data.(type) {
	case nil:
	case pongo2.Context:
		ctx = ctx.Update(v)
	case gin.H:
		ctx = ctx.Update(pongo2.Context(v))
	case map[string]interface{}:
		ctx = ctx.Update(pongo2.Context(v))
	default:
		ctx["Data"] = data
	}

	tmpl, err := r.Instance(name)
	if err != nil {
		return fmt.Errorf("failed to load template %s: %w", name, err)
	}

	out, err := tmpl.ExecuteBytes(ctx)
	if err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	c.Data(code, "text/html; charset=utf-8", out)
	return nil
}

// HTML renders an HTML template, answering 500 when rendering fails
func (r *Pongo2Renderer) HTML(c *gin.Context, code int, name string, data interface{}) {
	if err := r.Render(c, code, name, data); err != nil {
		r.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
		c.String(http.StatusInternalServerError, "Template error")
	}
}
