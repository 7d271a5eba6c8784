package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"divano/pkg/logger"
	"divano/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Messages returns the human messages only, for error details.
func (v ValidationErrors) Messages() []string {
	out := make([]string, 0, len(v))
	for _, err := range v {
		out = append(out, err.Message)
	}
	return out
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	v := validator.New()
	v.RegisterStructValidation(validateDateRange, model.BookingInput{})

	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: v,
		logger:   log,
	}
}

// validateDateRange enforces the stay invariant: checkOut strictly after
// checkIn. A same-day "stay" has zero nights and is rejected.
func validateDateRange(sl validator.StructLevel) {
	input := sl.Current().Interface().(model.BookingInput)

	if input.CheckIn.IsZero() {
		sl.ReportError(input.CheckIn, "CheckIn", "checkIn", "required", "")
	}
	if input.CheckOut.IsZero() {
		sl.ReportError(input.CheckOut, "CheckOut", "checkOut", "required", "")
	}
	if input.CheckIn.IsZero() || input.CheckOut.IsZero() {
		return
	}

	if input.CheckOut.Compare(input.CheckIn) <= 0 {
		sl.ReportError(input.CheckOut, "CheckOut", "checkOut", "gtdate", "")
	}
}

// Validate checks a booking input and returns ValidationErrors with
// user-facing messages, or nil.
func (bv *BookingValidator) Validate(input model.BookingInput) error {
	err := bv.validate.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "input", Message: err.Error()}}
	}

	var out ValidationErrors
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Field() {
	case "GuestName":
		if fe.Tag() == "max" {
			return "guest name too long"
		}
		return "empty guest name"
	case "CheckIn":
		return "missing check-in date"
	case "CheckOut":
		if fe.Tag() == "required" {
			return "missing check-out date"
		}
		return "checkout before or equal to checkin"
	case "Note":
		return "note too long"
	default:
		return fmt.Sprintf("invalid %s", fe.Field())
	}
}
