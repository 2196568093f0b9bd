// Package validation checks contact form input before it reaches storage.
//
// Checks run in a fixed order and only the first failure is reported:
// required fields, name length, email shape, contact number, message length.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Reasons returned to API callers. They are part of the public contract.
const (
	ReasonInvalidJSON = "Invalid JSON payload"
	ReasonRequired    = "All fields are required"
	ReasonName        = "Name must be at least 2 characters long"
	ReasonEmail       = "Invalid email format"
	ReasonContactNo   = "Invalid contact number. Must be a 10-digit Indian mobile number"
	ReasonMessage     = "Message must be at least 10 characters long"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// Error is a client-side validation failure. Reason is safe to return as-is.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string { return e.Reason }

// Input carries the four contact form fields. Field order matters: the
// validator reports failures in declaration order.
type Input struct {
	Name      string `validate:"required,min=2"`
	Email     string `validate:"required,contact_email"`
	ContactNo string `validate:"required,indian_mobile"`
	Message   string `validate:"required,min=10"`
}

var fieldReasons = map[string]string{
	"Name":      ReasonName,
	"Email":     ReasonEmail,
	"ContactNo": ReasonContactNo,
	"Message":   ReasonMessage,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}))
	must(v.RegisterValidation("indian_mobile", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Prepare trims name, email and message and normalizes the contact number.
func Prepare(in Input) Input {
	return Input{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		ContactNo: NormalizePhone(in.ContactNo),
		Message:   strings.TrimSpace(in.Message),
	}
}

// Validate checks already prepared input and returns *Error for the first
// failing rule, or nil. An empty field anywhere wins over every other rule.
func Validate(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &Error{Field: fe.StructField(), Reason: ReasonRequired}
		}
	}

	first := fieldErrs[0]
	return &Error{Field: first.StructField(), Reason: fieldReasons[first.StructField()]}
}

// IsValidEmail reports whether email has the local@domain.tld shape. Matching
// is case-sensitive against the ASCII classes and nothing is lowercased.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone reports whether phone is a 10-digit Indian mobile number.
// Callers normalize first.
func IsValidPhone(phone string) bool {
	return mobilePattern.MatchString(phone)
}
