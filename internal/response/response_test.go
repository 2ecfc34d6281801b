package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSuccessEnvelopeCarriesMeta(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"pong": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "trace-123", w.Header().Get("X-Request-ID"))

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Error)
	assert.Equal(t, "trace-123", body.Meta.RequestID)
	assert.NotEmpty(t, body.Meta.ServedAt)
}

func TestRequestIDMintsWhenHeaderMissing(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		Success(c, http.StatusOK, nil)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	minted := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, minted)

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, minted, body.Meta.RequestID)
}

func TestFailEnvelope(t *testing.T) {
	r := gin.New()
	r.GET("/missing", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrNotFound, body.Error.Code)
	assert.Equal(t, GetMessage(ErrNotFound), body.Error.Message)
	assert.Nil(t, body.Data)
	// The meta block still carries an ID even without the middleware.
	assert.NotEmpty(t, body.Meta.RequestID)
}

func TestFailWithFieldsIncludesFieldMessages(t *testing.T) {
	r := gin.New()
	r.POST("/form", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{
			"email": "email must be a valid email address",
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/form", nil))

	var body Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, "email must be a valid email address", body.Error.Fields["email"])
}
