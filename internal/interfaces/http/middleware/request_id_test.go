package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())

	var ctxID string
	r.GET("/", func(c *gin.Context) {
		ctxID = c.GetString(RequestIDKey)
		if v, ok := c.Request.Context().Value("request_id").(string); ok {
			require.Equal(t, ctxID, v)
		} else {
			t.Error("request context must carry the id")
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NotEmpty(t, ctxID)
	_, err := uuid.Parse(ctxID)
	require.NoError(t, err)
	require.Equal(t, ctxID, w.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddleware_HonorsInboundID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "trace-42", w.Header().Get("X-Request-ID"))
}
