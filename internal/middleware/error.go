package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/gmao-ics/techniciens-api/internal/model"
)

// Postgres error codes the terminal handler recognizes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ErrorHandler is the terminal error-translation stage: it inspects error
// identity and emits the matching status and payload. Unrecognized errors
// become a generic 500; the raw message leaks only outside production.
func ErrorHandler(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		lastErr := c.Errors.Last().Err

		log.Error().
			Err(lastErr).
			Str("request_id", c.GetString(ContextRequestID)).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("client_ip", c.ClientIP()).
			Msg("request error")

		if c.Writer.Written() {
			return
		}

		var validationErrs validator.ValidationErrors
		if errors.As(lastErr, &validationErrs) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request data",
				"details": validationDetails(validationErrs),
			})
			return
		}

		if detail, ok := bindingErrorDetail(lastErr); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request data",
				"details": []string{detail},
			})
			return
		}

		var pqErr *pq.Error
		if errors.As(lastErr, &pqErr) {
			switch string(pqErr.Code) {
			case pgUniqueViolation:
				c.JSON(http.StatusConflict, gin.H{"error": "resource already exists"})
				return
			case pgForeignKeyViolation:
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reference"})
				return
			}
		}

		if statusErr, ok := lastErr.(interface{ StatusCode() int }); ok {
			status := statusErr.StatusCode()
			if status < http.StatusInternalServerError {
				c.JSON(status, gin.H{"error": lastErr.Error()})
				return
			}
		}

		payload := gin.H{"error": "internal server error"}
		if !production {
			payload["message"] = lastErr.Error()
		}
		c.JSON(http.StatusInternalServerError, payload)
	}
}

// bindingErrorDetail classifies body-decoding failures so malformed or
// wrong-typed JSON surfaces as 400 instead of an internal error.
func bindingErrorDetail(err error) (string, bool) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return "request body has an invalid type", true
		}
		return typeErr.Field + " has an invalid type", true
	}

	var dateErr *model.InvalidDateError
	if errors.As(err, &dateErr) {
		return dateErr.Error(), true
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "request body is not valid JSON", true
	}

	return "", false
}

// validationDetails renders one human-readable message per violated
// constraint, keyed by the JSON field name.
func validationDetails(errs validator.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		details = append(details, fieldMessage(e))
	}
	return details
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must contain at least " + e.Param() + " characters"
	case "max":
		return field + " cannot exceed " + e.Param() + " characters"
	case "oneof":
		return field + " must be one of: " + e.Param()
	case "gt":
		return field + " must be greater than " + e.Param()
	case "gte":
		return field + " must be at least " + e.Param()
	case "telephone":
		return field + " is not a valid phone number"
	default:
		return field + " is invalid"
	}
}
