package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
}

func bindOn(t *testing.T, body string) (signupForm, map[string]string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var form signupForm
	return form, Bind(c, &form)
}

func TestBindAcceptsValidPayload(t *testing.T) {
	form, fields := bindOn(t, `{"email":"ana@example.edu","full_name":"Ana Silva"}`)
	require.Nil(t, fields)
	assert.Equal(t, "ana@example.edu", form.Email)
	assert.Equal(t, "Ana Silva", form.FullName)
}

func TestBindReportsFieldsByJSONName(t *testing.T) {
	_, fields := bindOn(t, `{"email":"not-an-address"}`)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "full_name")
	assert.NotContains(t, fields, "FullName")
}

func TestBindReportsMalformedJSON(t *testing.T) {
	_, fields := bindOn(t, `{"email":`)
	require.NotNil(t, fields)
	assert.Contains(t, fields, "detail")
}
