package store

import (
	"context"
	"sync"
	"time"

	"github.com/alirk24/sejam-porfiling/internal/profile/models"
)

// InMemoryStore keeps profiles and shareholder sets under one mutex, so the
// upsert-plus-replace sequence is atomic by construction.
type InMemoryStore struct {
	mu           sync.RWMutex
	profiles     map[string]models.Profile
	shareholders map[string][]models.Shareholder
	nextID       int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		profiles:     make(map[string]models.Profile),
		shareholders: make(map[string][]models.Shareholder),
	}
}

func (s *InMemoryStore) Find(_ context.Context, uniqueIdentifier string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[uniqueIdentifier]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *InMemoryStore) Save(_ context.Context, p *models.Profile, shareholders []models.Shareholder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored := *p
	if existing, ok := s.profiles[p.UniqueIdentifier]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	s.profiles[p.UniqueIdentifier] = stored

	if shareholders != nil {
		replaced := make([]models.Shareholder, len(shareholders))
		for i, sh := range shareholders {
			s.nextID++
			sh.ID = s.nextID
			sh.ProfileID = p.UniqueIdentifier
			replaced[i] = sh
		}
		s.shareholders[p.UniqueIdentifier] = replaced
	}
	return nil
}

func (s *InMemoryStore) Shareholders(_ context.Context, profileID string) ([]models.Shareholder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Shareholder{}, s.shareholders[profileID]...), nil
}

func (s *InMemoryStore) Delete(_ context.Context, uniqueIdentifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[uniqueIdentifier]; !ok {
		return ErrNotFound
	}
	delete(s.profiles, uniqueIdentifier)
	// Owned records go with the profile.
	delete(s.shareholders, uniqueIdentifier)
	return nil
}
