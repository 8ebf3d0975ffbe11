package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxBodyBytes = 1 << 20

type fieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// maxbytes bounds the encoded length; max counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	return v
}

// humanize turns a snake_case field name into "Title Case".
func humanize(field string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(field, "_", " "))
}

// decodeAndValidate writes a 400 problem and returns false when the body is
// not valid JSON for dst or fails its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Malformed body", err.Error())
		return false
	}

	err := validate.Struct(dst)
	if err == nil {
		return true
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		writeProblem(w, http.StatusBadRequest, "Validation failed", err.Error())
		return false
	}
	writeProblemFields(w, http.StatusBadRequest, "Validation failed", "one or more fields are invalid", fieldErrors(ves))
	return false
}

func fieldErrors(ves validator.ValidationErrors) []fieldError {
	out := make([]fieldError, 0, len(ves))
	for _, fe := range ves {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "url":
			msg = "must be a valid URL"
		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}
		case "maxbytes":
			msg = fmt.Sprintf("must not exceed %s bytes", fe.Param())
		case "gt":
			msg = "must be greater than " + fe.Param()
		case "gte":
			msg = "must be at least " + fe.Param()
		default:
			msg = "is invalid (" + fe.Tag() + ")"
		}
		out = append(out, fieldError{Field: fe.Field(), Error: humanize(fe.Field()) + " " + msg})
	}
	return out
}
