package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"civicsync/logger"
	"civicsync/models"
	"civicsync/store"
)

// IssueMutation creates issues.
type IssueMutation struct {
	store    store.IssueStore
	logger   *logger.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// MutationOption configures an IssueMutation.
type MutationOption func(*IssueMutation)

// WithFormValidation re-checks form fields at this boundary.
// Without it the form is trusted as the caller validated it.
func WithFormValidation() MutationOption {
	return func(m *IssueMutation) {
		m.validate = NewFormValidator()
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) MutationOption {
	return func(m *IssueMutation) {
		m.now = now
	}
}

func NewIssueMutation(s store.IssueStore, log *logger.Logger, opts ...MutationOption) *IssueMutation {
	m := &IssueMutation{
		store:  s,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create builds a Pending issue reported by user and appends it to the store.
func (m *IssueMutation) Create(ctx context.Context, form models.IssueFormData, user *models.User) (models.Issue, error) {
	if user == nil {
		m.logger.Info("Issue mutation: create rejected, no user")
		return models.Issue{}, models.ErrUnauthenticated
	}

	if m.validate != nil {
		if err := m.validate.Struct(form); err != nil {
			m.logger.Info("Issue mutation: create rejected, invalid form",
				"user_id", user.ID,
				"error", err.Error())
			return models.Issue{}, fmt.Errorf("%w: %v", models.ErrInvalidIssue, err)
		}
	}

	now := m.now().UTC()
	issue := models.Issue{
		ID:           m.newID(),
		Title:        form.Title,
		Description:  form.Description,
		Category:     form.Category,
		Status:       models.Pending,
		Location:     form.Location,
		ImageURL:     form.ImageURL,
		Votes:        0,
		HasUserVoted: false,
		ReporterID:   user.ID,
		ReporterName: user.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := m.store.Append(ctx, issue); err != nil {
		m.logger.Error("Issue mutation: failed to append issue",
			"user_id", user.ID,
			"error", err.Error())
		return models.Issue{}, fmt.Errorf("failed to create issue: %w", err)
	}

	m.logger.Info("Issue mutation: issue created",
		"issue_id", issue.ID,
		"user_id", user.ID)

	return issue, nil
}
