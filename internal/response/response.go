package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Body is the JSON shape every endpoint answers with. Exactly one of Data
// and Error carries content; Meta is always present so clients can quote a
// request ID when reporting problems.
type Body struct {
	Data  interface{} `json:"data"`
	Error *ErrorBody  `json:"error,omitempty"`
	Meta  Meta        `json:"meta"`
}

// ErrorBody pairs a stable machine code with a display message. Fields is
// only set for validation failures, keyed by the offending JSON field.
type ErrorBody struct {
	Code    ErrCode           `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Meta carries per-request tracing information.
type Meta struct {
	RequestID string `json:"request_id"`
	ServedAt  string `json:"served_at"`
}

// Success writes data under the envelope with the given status code.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Body{Data: data, Meta: metaFor(c)})
}

// Fail writes an error envelope for the given code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, failBody(c, code, nil))
}

// FailWithFields writes a validation error envelope with per-field messages.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, failBody(c, code, fields))
}

// AbortFail writes an error envelope and stops the middleware chain. Used
// by auth middleware so handlers never run on a rejected request.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, failBody(c, code, nil))
}

func failBody(c *gin.Context, code ErrCode, fields map[string]string) Body {
	return Body{
		Error: &ErrorBody{Code: code, Message: GetMessage(code), Fields: fields},
		Meta:  metaFor(c),
	}
}

func metaFor(c *gin.Context) Meta {
	return Meta{
		RequestID: requestID(c),
		ServedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}
