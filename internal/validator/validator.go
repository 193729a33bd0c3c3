package validator

import (
	"fmt"
	"regexp"

	"github.com/cinematorino/boxoffice/internal/domain"
	"github.com/go-playground/validator/v10"
)

var seatIDRgx = regexp.MustCompile(`^[A-Z][0-9]+$`)

func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("email_shape", validateEmailShape)
	validate.RegisterValidation("seat_id", validateSeatID)

	return validate
}

// validateEmailShape applies the same syntactic check the Customer itself
// enforces, so input validation and the domain invariant cannot disagree.
func validateEmailShape(fl validator.FieldLevel) bool {
	return domain.EmailShapeValid(fl.Field().String())
}

func validateSeatID(fl validator.FieldLevel) bool {
	return seatIDRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email_shape":
		return "must be a valid email address"
	case "seat_id":
		return "must be a seat id like A1"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", err.Param())
	default:
		return "is invalid"
	}
}
