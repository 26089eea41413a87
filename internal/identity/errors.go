package identity

import (
	"errors"
	"fmt"
)

// Provider failure codes.
const (
	CodeUserNotFound          = "auth/user-not-found"
	CodeWrongPassword         = "auth/wrong-password"
	CodeInvalidEmail          = "auth/invalid-email"
	CodeUserDisabled          = "auth/user-disabled"
	CodeTooManyRequests       = "auth/too-many-requests"
	CodeEmailAlreadyInUse     = "auth/email-already-in-use"
	CodeWeakPassword          = "auth/weak-password"
	CodeInvalidCredential     = "auth/invalid-credential"
	CodeInvalidDisplayName    = "auth/invalid-display-name"
	CodeOperationNotAllowed   = "auth/operation-not-allowed"
	CodeNetworkRequestFailed  = "auth/network-request-failed"
	CodeRequiresRecentLogin   = "auth/requires-recent-login"
	CodeTimeout               = "auth/timeout"
	CodeAccountExistsDiffCred = "auth/account-exists-with-different-credential"
)

// AuthError is a provider failure carrying a machine-readable code.
type AuthError struct {
	Code   string
	Detail string
	Err    error
}

func (e *AuthError) Error() string {
	msg := e.Code
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func authErr(code, detail string) error {
	return &AuthError{Code: code, Detail: detail}
}

// Code extracts the provider code from err, or "" if err is not an AuthError.
func Code(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

var messages = map[string]string{
	CodeUserNotFound:          "No account found with this email address. Please check your email or create a new account.",
	CodeWrongPassword:         "Incorrect password. Please try again or reset your password.",
	CodeInvalidEmail:          "Please enter a valid email address.",
	CodeUserDisabled:          "This account has been disabled. Please contact support for assistance.",
	CodeTooManyRequests:       "Too many failed attempts. Please wait a few minutes before trying again.",
	CodeEmailAlreadyInUse:     "An account with this email already exists. Please sign in instead.",
	CodeWeakPassword:          "Password is too weak. Please choose a stronger password with at least 8 characters.",
	CodeInvalidCredential:     "Invalid login credentials. Please check your email and password.",
	CodeInvalidDisplayName:    "Name must be at least 2 characters long.",
	CodeOperationNotAllowed:   "This sign-in method is not available. Please use email and password.",
	CodeNetworkRequestFailed:  "Network error. Please check your internet connection and try again.",
	CodeRequiresRecentLogin:   "Please sign out and sign in again to complete this action.",
	CodeTimeout:               "Request timed out. Please try again.",
	CodeAccountExistsDiffCred: "An account already exists with this email using a different sign-in method.",
}

const unexpectedMessage = "An unexpected error occurred. Please try again or contact support if the problem persists."

// Message maps err to a sentence suitable for showing the learner. Weak
// password failures include the missing rules.
func Message(err error) string {
	var ae *AuthError
	if !errors.As(err, &ae) {
		return unexpectedMessage
	}
	if ae.Code == CodeWeakPassword && ae.Detail != "" {
		return fmt.Sprintf("Password must contain %s.", ae.Detail)
	}
	if m, ok := messages[ae.Code]; ok {
		return m
	}
	return unexpectedMessage
}
