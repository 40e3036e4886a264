package template

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/gotrs-rtl/internal/config"
	"github.com/gotrs-io/gotrs-rtl/internal/direction"
	"github.com/gotrs-io/gotrs-rtl/internal/middleware"
)

func templateDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestNewPongo2Renderer_Errors(t *testing.T) {
	_, err := NewPongo2Renderer("", false, nil)
	assert.Error(t, err)

	_, err = NewPongo2Renderer(filepath.Join(t.TempDir(), "missing"), false, nil)
	assert.Error(t, err)
}

func TestDirectionContext(t *testing.T) {
	tmpl, err := pongo2.FromString(`<html {{ htmlAttrs() }}><div class="{{ layoutClasses("ml-2 text-left") }}">` +
		`{{ textAlign("right") }}|{{ flexDirection("row") }}|{{ iconClasses("end") }}|{{ directionalClasses("sidebar") }}|` +
		`{{ getLang() }}|{{ getDirection() }}|{% if isRTL() %}mirrored{% endif %}|{{ adaptClass("rounded-l-lg") }}</div>`)
	require.NoError(t, err)

	out, err := tmpl.Execute(DirectionContext(direction.ForLanguage("fa")))
	require.NoError(t, err)

	assert.Equal(t, `<html dir="rtl" lang="fa"><div class="me-2 text-end rtl">`+
		`text-start|flex-row-reverse|btn-icon-end-rtl|sidebar-rtl start-0|fa|rtl|mirrored|rounded-e-lg</div>`, out)
}

func TestRender(t *testing.T) {
	dir := templateDir(t, map[string]string{
		"page.pongo2": `<p class="{{ adaptClass("ml-4") }}">{{ Title }} {{ Direction }}</p>`,
		"data.pongo2": `{{ Data }}`,
		"bad.pongo2":  `{{ missing( }}`,
	})
	renderer, err := NewPongo2Renderer(dir, false, nil)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.NewDirectionMiddleware(config.I18nConfig{DefaultLanguage: "en", CookieName: "lang"}).Handle())
	r.GET("/page", func(c *gin.Context) { renderer.HTML(c, http.StatusOK, "page.pongo2", gin.H{"Title": "Hello"}) })
	r.GET("/data", func(c *gin.Context) { renderer.HTML(c, http.StatusOK, "data.pongo2", 42) })
	r.GET("/bad", func(c *gin.Context) { renderer.HTML(c, http.StatusOK, "bad.pongo2", nil) })
	r.GET("/missing", func(c *gin.Context) { renderer.HTML(c, http.StatusOK, "nope.pongo2", nil) })

	t.Run("rtl page", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page?lang=he", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `<p class="me-4">Hello rtl</p>`, w.Body.String())
	})

	t.Run("ltr page", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
		assert.Equal(t, `<p class="ms-4">Hello ltr</p>`, w.Body.String())
	})

	t.Run("non map data", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
		assert.Equal(t, "42", w.Body.String())
	})

	t.Run("template errors answer 500", func(t *testing.T) {
		for _, path := range []string{"/bad", "/missing"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		}
	})
}

func TestPreviewTemplateRenders(t *testing.T) {
	renderer, err := NewPongo2Renderer("../../templates", true, nil)
	require.NoError(t, err)

	tmpl, err := renderer.Instance("preview.pongo2")
	require.NoError(t, err)

	ctx := DirectionContext(direction.ForLanguage("ar")).Update(pongo2.Context{
		"Languages": []map[string]string{{"Code": "ar", "NativeName": "العربية"}},
	})
	out, err := tmpl.Execute(ctx)
	require.NoError(t, err)

	assert.Contains(t, out, `<html dir="rtl" lang="ar">`)
	assert.Contains(t, out, `class="me-64 p-6 rtl"`)
	assert.Contains(t, out, "sidebar-rtl start-0")
	assert.Contains(t, out, "?lang=ar")
}
