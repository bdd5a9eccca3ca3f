package service

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindInvalidCredentials
	KindAccountNotReady
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindAccountNotReady:
		return "account_not_ready"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	}
	return "internal"
}

// HTTPStatus maps a kind to its response status. Conflicts are reported as
// 400 to match what existing clients expect.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindAccountNotReady, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// Error is the only error type services return to handlers. Message is safe
// to show to the user; Err carries the cause with a stack for internal ones.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a *Error from err, treating anything else as internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return internal(err, "unclassified error")
}

const (
	msgInvalidCredentials = "Invalid email or password"
	msgAccountNotReady    = "Account is not active or approved. Please wait for admin approval."
	msgMustReset          = "Password reset required. Use forgot password to set a new password."
	msgInvalidResetToken  = "Invalid or expired token"
	msgInternal           = "Internal server error"
)

func validation(msg string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Details: details}
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// internal wraps err with a stack and a short note of what failed. The
// user-facing message stays generic.
func internal(err error, what string) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Err: errors.Wrap(err, what)}
}

// missing returns one "<Label> is required" entry per empty field.
func missing(fields ...[2]string) map[string]string {
	out := map[string]string{}
	for _, f := range fields {
		if f[1] == "" {
			out[f[0]] = requiredLabel(f[0]) + " is required"
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func requiredLabel(field string) string {
	switch field {
	case "email":
		return "Email"
	case "password":
		return "Password"
	case "name":
		return "Name"
	case "userType":
		return "User type"
	case "phone":
		return "Phone number"
	case "address":
		return "Address"
	case "organization":
		return "Organization name"
	case "registrationNumber":
		return "NGO registration number"
	case "website":
		return "Website"
	case "department":
		return "Department"
	case "designation":
		return "Designation"
	case "experience":
		return "Experience"
	}
	return field
}
