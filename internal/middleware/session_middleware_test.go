package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMiddleware_AssignsSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())

	var sessionID string
	var hadSession bool
	router.GET("/probe", func(c *gin.Context) {
		sessionID, hadSession = GetSessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.True(t, hadSession)
	assert.NotEmpty(t, sessionID)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, sessionID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestSessionMiddleware_ReusesExistingCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionMiddleware())

	var sessionID string
	router.GET("/probe", func(c *gin.Context) {
		sessionID, _ = GetSessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "existing-session", sessionID)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionMiddleware_ViewportWidth(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantWidth int
		wantOK    bool
	}{
		{name: "tablet width", header: "1024", wantWidth: 1024, wantOK: true},
		{name: "missing header", header: "", wantOK: false},
		{name: "malformed header", header: "wide", wantOK: false},
		{name: "non-positive width", header: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(SessionMiddleware())

			var width int
			var ok bool
			router.GET("/probe", func(c *gin.Context) {
				width, ok = GetViewportWidth(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.header != "" {
				req.Header.Set(ViewportWidthHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantWidth, width)
			}
		})
	}
}
