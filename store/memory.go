package store

import (
	"context"
	"sync"

	"civicsync/models"
)

// MemoryIssueStore keeps issues in a slice for the lifetime of the process.
type MemoryIssueStore struct {
	mu     sync.RWMutex
	issues []models.Issue
	ids    map[string]struct{}
}

func NewMemoryIssueStore() *MemoryIssueStore {
	return &MemoryIssueStore{
		ids: make(map[string]struct{}),
	}
}

func (s *MemoryIssueStore) Append(_ context.Context, issue models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.ids[issue.ID]; exists {
		return ErrDuplicateID
	}
	s.ids[issue.ID] = struct{}{}
	s.issues = append(s.issues, issue)
	return nil
}

func (s *MemoryIssueStore) All(_ context.Context) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]models.Issue, len(s.issues))
	copy(snapshot, s.issues)
	return snapshot, nil
}

// Len returns the number of stored issues.
func (s *MemoryIssueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues)
}

// MemoryCredentialStore keeps credentials in a map.
type MemoryCredentialStore struct {
	mu          sync.RWMutex
	credentials map[string]models.Credential
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		credentials: make(map[string]models.Credential),
	}
}

func (s *MemoryCredentialStore) Create(_ context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.credentials[cred.Email]; exists {
		return ErrEmailTaken
	}
	s.credentials[cred.Email] = cred
	return nil
}

func (s *MemoryCredentialStore) GetByEmail(_ context.Context, email string) (models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, exists := s.credentials[email]
	if !exists {
		return models.Credential{}, ErrCredentialNotFound
	}
	return cred, nil
}
