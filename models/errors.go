package models

import "errors"

var (
	// ErrInvalidCredentials is returned by login when email or password is missing or rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRegistrationFailed is returned by register when a field is missing or the email is taken.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrUnauthenticated is returned when an operation needs a current user and has none.
	ErrUnauthenticated = errors.New("user not authenticated")
	// ErrInvalidIssue wraps form validation failures on issue creation.
	ErrInvalidIssue = errors.New("invalid issue")
	// ErrIssueNotFound is returned when no issue has the requested id.
	ErrIssueNotFound = errors.New("issue not found")
)
