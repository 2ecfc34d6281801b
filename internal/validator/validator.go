// Package validator wires English-translated validation messages into Gin's
// binding engine and exposes a single Bind helper for handlers.
package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var translator ut.Translator

// Setup configures the shared binding validator: field names in messages
// come from JSON tags, and rule violations translate to English sentences.
// Must run once before the router starts serving.
func Setup() {
	engine, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	engine.RegisterTagNameFunc(jsonFieldName)

	locale := en.New()
	translator, _ = ut.New(locale, locale).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(engine, translator)
}

// Bind decodes the request body into dst and validates it. A nil return
// means dst is populated and valid; otherwise the map holds one message per
// failing field, ready for a validation error response.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	return translate(err)
}

func translate(err error) map[string]string {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		// Malformed JSON and type mismatches arrive here.
		return map[string]string{"detail": err.Error()}
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(translator)
	}
	return fields
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
