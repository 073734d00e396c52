package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("license_plate", validateLicensePlate)
	validate.RegisterValidation("report_date", validateReportDate)
}

// Common validation errors
var (
	ErrInvalidObjectID     = errors.New("invalid object ID format")
	ErrInvalidLicensePlate = errors.New("invalid license plate format")
	ErrInvalidDate         = errors.New("invalid date")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// FieldMap renders the errors as field -> message for API responses.
func (v ValidationErrors) FieldMap() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "license_plate":
		return "Invalid license plate format"
	case "report_date":
		return "Date must use the yyyy-mm-dd format"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().Interface()

	switch v := value.(type) {
	case primitive.ObjectID:
		return !v.IsZero()
	case string:
		_, err := primitive.ObjectIDFromHex(v)
		return err == nil
	}
	return false
}

// Mercosul and legacy Brazilian plate formats, with or without the hyphen.
var licensePlatePattern = regexp.MustCompile(`^[A-Z]{3}-?[0-9][0-9A-Z][0-9]{2}$`)

func validateLicensePlate(fl validator.FieldLevel) bool {
	plate := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return licensePlatePattern.MatchString(plate)
}

var reportDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validateReportDate(fl validator.FieldLevel) bool {
	return reportDatePattern.MatchString(fl.Field().String())
}
