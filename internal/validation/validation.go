// Package validation holds the input rules shared by the server and the
// client. The account setup wizard and the identity service call the same
// functions, so a form the wizard accepts is a form the server accepts.
package validation

import (
	"strings"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/common"
)

// MinPasswordLength is the shortest password accepted on registration and
// password change.
const MinPasswordLength = 6

// MaxPasswordLength is the bcrypt input limit in bytes.
const MaxPasswordLength = 72

// FieldError is a single failed rule. It wraps common.ErrValidation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return common.ErrValidation }

// Errors is an ordered list of failures, most important first.
type Errors []*FieldError

// First returns the first failure as an error, or nil when the list is empty.
func (es Errors) First() error {
	if len(es) == 0 {
		return nil
	}
	return es[0]
}

// ByField indexes the failures by field name, keeping the first message per
// field.
func (es Errors) ByField() map[string]string {
	m := make(map[string]string, len(es))
	for _, e := range es {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func required(errs Errors, field, value, msg string) Errors {
	if blank(value) {
		return append(errs, &FieldError{Field: field, Message: msg})
	}
	return errs
}

// AccountSetup checks the onboarding form for role. Sellers need a business
// name, phone and address; buyers need phone and address. Any other role
// fails with an accountType error.
func AccountSetup(role api.AccountType, f api.ProfileFields) Errors {
	var errs Errors
	switch role {
	case api.AccountTypeSeller:
		errs = required(errs, "businessName", f.BusinessName, "Business name is required")
		errs = required(errs, "phone", f.Phone, "Phone number is required")
		errs = required(errs, "address", f.Address, "Address is required")
	case api.AccountTypeBuyer:
		errs = required(errs, "phone", f.Phone, "Phone number is required")
		errs = required(errs, "address", f.Address, "Address is required")
	default:
		errs = append(errs, &FieldError{Field: "accountType", Message: "Please select an account type"})
	}
	return errs
}

// Registration checks the sign-up form.
func Registration(email, password, name string) Errors {
	var errs Errors
	errs = append(errs, Email(email)...)
	errs = append(errs, Password("password", password)...)
	errs = required(errs, "name", name, "Name is required")
	return errs
}

// Email checks that s is present and looks like an address.
func Email(s string) Errors {
	if blank(s) {
		return Errors{{Field: "email", Message: "Email is required"}}
	}
	if validate.Var(strings.TrimSpace(s), "email") != nil {
		return Errors{{Field: "email", Message: "Please enter a valid email address"}}
	}
	return nil
}

// Password checks the length rules for the given field. The upper bound is
// counted in bytes, not characters.
func Password(field, s string) Errors {
	if len(s) < MinPasswordLength {
		return Errors{{Field: field, Message: "Password must be at least 6 characters"}}
	}
	if len(s) > MaxPasswordLength {
		return Errors{{Field: field, Message: "Password must be at most 72 bytes"}}
	}
	return nil
}

// NormalizeEmail is the canonical stored form of an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
