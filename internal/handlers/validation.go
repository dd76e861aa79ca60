// Package handlers wires the HTTP surface: request binding, auth
// context, and translation of service errors into RFC 9457 problems.
package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/craveless/backend/internal/apierror"
)

// RegisterValidators installs the custom binding tags on gin's
// validator engine. Must run once before the router is built.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	// intensity: 1-10 scale shared by craving intensity and mood fields
	return v.RegisterValidation("intensity", func(fl validator.FieldLevel) bool {
		value := fl.Field().Int()
		return value >= 1 && value <= 10
	})
}

// fieldErrors flattens a binding error into per-field problems.
// Non-validator errors (JSON syntax, type mismatches) get reported as
// a single body-level error.
func fieldErrors(err error) []apierror.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apierror.FieldError{{Field: "body", Message: err.Error(), Code: "invalid_body"}}
	}

	out := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apierror.FieldError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "intensity":
		return "must be between 1 and 10"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// currentUserID reads the authenticated user from the gin context.
// The auth middleware sets it; a missing value means the route was
// mounted outside the protected group.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok
}

// writeUnauthorized is the shared response for requests that reach a
// protected handler without an authenticated user
func writeUnauthorized(c *gin.Context) {
	apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
}

// writeBindingError reports a failed request bind as a validation
// problem with all failing fields listed
func writeBindingError(c *gin.Context, err error) {
	apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), fieldErrors(err)))
}
