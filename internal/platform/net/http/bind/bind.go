// Package bind decodes and validates JSON request bodies
package bind

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "labqc/internal/platform/errors"
	"labqc/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps a decoded request body
const MaxBody = 1 << 20

// ScoreMin and ScoreMax bound a single QC score
const (
	ScoreMin = 0
	ScoreMax = 2
)

var (
	once  sync.Once
	valid *validator.Validate
	trans ut.Translator
)

func setup() {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		valid = validator.New(validator.WithRequiredStructEnabled())
		valid.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		_ = en_translations.RegisterDefaultTranslations(valid, trans)
		_ = valid.RegisterValidation("score", func(fl validator.FieldLevel) bool {
			n := fl.Field().Int()
			return n >= ScoreMin && n <= ScoreMax
		})

		translate(map[string]string{
			"min":   "{0} must be at least {1}",
			"max":   "{0} must be at most {1}",
			"score": "{0} must be between 0 and 2",
		})
	})
}

func translate(msgs map[string]string) {
	for tag, text := range msgs {
		_ = valid.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			},
		)
	}
}

// Struct validates v and returns the first failure as a field-level validation error
func Struct(v any) error {
	setup()
	err := valid.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		logger.Get().Error().Err(err).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	fe := verrs[0]
	return perr.WithField(perr.Validationf("%s", fe.Translate(trans)), fe.Field())
}

// ParseJSON decodes the body into T, rejecting unknown fields and trailing data, then validates it
// an empty body yields the zero T on GET and DELETE and a JSON error otherwise
func ParseJSON[T any](r *http.Request) (T, error) {
	var zero T
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	first := make([]byte, 1)
	if n, _ := r.Body.Read(first); n == 0 {
		switch r.Method {
		case http.MethodGet, http.MethodDelete, http.MethodHead:
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(io.LimitReader(io.MultiReader(bytes.NewReader(first), r.Body), MaxBody))
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}
