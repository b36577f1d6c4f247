// Package store holds the canonical issue collection and the credential records.
package store

import (
	"context"
	"errors"

	"civicsync/models"
)

var (
	// ErrDuplicateID is returned when an appended issue reuses an existing id.
	ErrDuplicateID = errors.New("duplicate issue id")
	// ErrEmailTaken is returned when a credential already exists for an email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrCredentialNotFound is returned when no credential exists for an email.
	ErrCredentialNotFound = errors.New("credential not found")
)

// IssueStore is the ordered, append-only issue collection.
type IssueStore interface {
	// Append adds issue after every existing record.
	Append(ctx context.Context, issue models.Issue) error
	// All returns a snapshot of every record in insertion order.
	All(ctx context.Context) ([]models.Issue, error)
}

// CredentialStore persists password credentials keyed by email.
type CredentialStore interface {
	Create(ctx context.Context, cred models.Credential) error
	GetByEmail(ctx context.Context, email string) (models.Credential, error)
}
