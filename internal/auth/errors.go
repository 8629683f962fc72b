package auth

import (
	"errors"
	"fmt"
)

// Provider error codes
const (
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeInvalidCredential = "auth/invalid-credential"
	CodeTooManyRequests   = "auth/too-many-requests"
	CodeEmailInUse        = "auth/email-already-in-use"
	CodeWeakPassword      = "auth/weak-password"
	CodeInvalidEmail      = "auth/invalid-email"
)

// ProviderError is a coded failure of the credential provider
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func newProviderError(code, message string) *ProviderError {
	return &ProviderError{Code: code, Message: message}
}

// User-facing messages
const (
	MsgInvalidCredentials = "Invalid email or password. Please check your credentials and try again."
	MsgTooManyRequests    = "Too many login attempts. Please try again later."
	MsgUnexpected         = "An unexpected error occurred. Please try again."
	MsgEmailInUse         = "This email address is already in use by another account."
	MsgWeakPassword       = "The password is too weak. Please use at least 6 characters."
	MsgInvalidEmail       = "The email address is not valid."
)

// LoginErrorMessage maps a sign-in failure to the message shown to the user
func LoginErrorMessage(err error) string {
	var perr *ProviderError
	if !errors.As(err, &perr) {
		return MsgUnexpected
	}

	switch perr.Code {
	case CodeUserNotFound, CodeWrongPassword, CodeInvalidCredential:
		return MsgInvalidCredentials
	case CodeTooManyRequests:
		return MsgTooManyRequests
	default:
		return perr.Message
	}
}

// SignupErrorMessage maps a sign-up failure to the message shown to the user
func SignupErrorMessage(err error) string {
	var perr *ProviderError
	if !errors.As(err, &perr) {
		return MsgUnexpected
	}

	switch perr.Code {
	case CodeEmailInUse:
		return MsgEmailInUse
	case CodeWeakPassword:
		return MsgWeakPassword
	case CodeInvalidEmail:
		return MsgInvalidEmail
	default:
		return perr.Message
	}
}
