package http

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
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// bytesmax limits the UTF-8 encoded length, which is what bcrypt sees
	_ = v.RegisterValidation("bytesmax", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// requestError is a 400 carrying a message and per-field details
type requestError struct {
	message string
	details []string
}

func (e *requestError) Error() string {
	if len(e.details) == 0 {
		return e.message
	}
	return e.message + ": " + strings.Join(e.details, "; ")
}

// decodeAndValidate reads a JSON body into dst and validates it in one pass.
// invalidMessage is used when validation fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}, invalidMessage string) *requestError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &requestError{message: "Invalid request body", details: []string{"body is required"}}
		}
		return &requestError{message: "Invalid request body"}
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return &requestError{message: invalidMessage}
		}

		details := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			details = append(details, describeFieldError(fe))
		}
		return &requestError{message: invalidMessage, details: details}
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "bytesmax":
		return fmt.Sprintf("%s must be at most %s bytes", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func (e *requestError) write(w http.ResponseWriter) {
	respondError(w, http.StatusBadRequest, e.message, e.details...)
}
