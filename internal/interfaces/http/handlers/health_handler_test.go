package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newHealthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHealthHandler()
	r := gin.New()
	r.GET("/healthz", h.Healthz)
	r.GET("/ping", h.Ping)
	return r
}

func TestHealthHandler_Healthz(t *testing.T) {
	r := newHealthRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
}

func TestHealthHandler_Ping(t *testing.T) {
	r := newHealthRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"message":"pong"`)
}

func TestHealthHandler_RejectsQueryAndBody(t *testing.T) {
	r := newHealthRouter()

	for _, target := range []string{"/healthz?probe=1", "/ping?probe=1"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, "target=%s", target)
	}

	for _, target := range []string{"/healthz", "/ping"} {
		req := httptest.NewRequest(http.MethodGet, target, strings.NewReader("payload"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, "target=%s", target)
	}
}
