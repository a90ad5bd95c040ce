package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func GetValidator() *validator.Validate {
	return validate
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param() + " characters"
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param() + " characters"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}

type ValidationError struct {
	Field   string `json:"field" example:"device_id"`
	Message string `json:"message" example:"device_id is required"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}
