package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func brotliRouter(body string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/payload", func(c *gin.Context) {
		c.String(http.StatusOK, body)
	})
	return r
}

func TestBrotliEncodesLargeBodies(t *testing.T) {
	payload := strings.Repeat("seat availability ", 200)
	r := brotliRouter(payload)

	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", w.Header().Get("Vary"))

	decoded, err := io.ReadAll(brotli.NewReader(w.Body))
	require.NoError(t, err)
	assert.Equal(t, payload, string(decoded))
}

func TestBrotliPassesSmallBodiesPlain(t *testing.T) {
	r := brotliRouter("ok")

	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())
}

func TestBrotliSkipsClientsWithoutSupport(t *testing.T) {
	payload := strings.Repeat("x", 4096)
	r := brotliRouter(payload)

	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, payload, w.Body.String())
}

func TestBrotliSkipsWebSocketUpgrades(t *testing.T) {
	r := brotliRouter(strings.Repeat("x", 4096))

	req := httptest.NewRequest(http.MethodGet, "/payload", nil)
	req.Header.Set("Accept-Encoding", "br")
	req.Header.Set("Upgrade", "websocket")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Content-Encoding"))
}
