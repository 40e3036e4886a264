package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/gotrs-rtl/internal/config"
	"github.com/gotrs-io/gotrs-rtl/internal/middleware"
)

func languageRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	mw := middleware.NewDirectionMiddleware(config.I18nConfig{DefaultLanguage: "en", CookieName: "lang", CookieMaxAge: 3600})
	r := gin.New()
	r.Use(mw.Handle())
	NewLanguageHandler(mw).RegisterRoutes(r)
	return r
}

func postLanguage(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/language", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func langCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "lang" {
			return c
		}
	}
	return nil
}

func TestSetLanguage(t *testing.T) {
	r := languageRouter()

	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantCookie string
		wantMaxAge int
		wantBody   string
	}{
		{name: "supported", body: `{"language":"fa"}`, wantCode: http.StatusOK, wantCookie: "fa", wantMaxAge: 3600, wantBody: `"direction":"rtl"`},
		{name: "regional tag normalized", body: `{"language":"de-AT"}`, wantCode: http.StatusOK, wantCookie: "de", wantMaxAge: 3600, wantBody: `"language":"de"`},
		{name: "empty clears", body: `{"language":""}`, wantCode: http.StatusOK, wantMaxAge: -1, wantBody: `"cleared":true`},
		{name: "unsupported", body: `{"language":"ja"}`, wantCode: http.StatusBadRequest, wantBody: "Language not supported"},
		{name: "invalid json", body: `{`, wantCode: http.StatusBadRequest, wantBody: "Invalid input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLanguage(r, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)

			cookie := langCookie(w)
			if tt.wantCode != http.StatusOK {
				assert.Nil(t, cookie)
				return
			}
			require.NotNil(t, cookie)
			assert.Equal(t, tt.wantCookie, cookie.Value)
			assert.Equal(t, tt.wantMaxAge, cookie.MaxAge)
		})
	}
}
