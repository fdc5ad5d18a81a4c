package usecase

import (
	"fmt"
	"log"
	"sync"

	"github.com/dietcheck/backend/internal/domain"
)

// ProfileService owns the single process-wide active dietary profile.
// Readers (classification paths) take the read lock; Set and Clear replace
// the value wholesale under the write lock, so a reader never observes a
// partially updated profile.
type ProfileService struct {
	store  domain.ProfileRepository
	mu     sync.RWMutex
	active *domain.DietaryProfile
}

// NewProfileService creates the service and loads any previously saved
// profile from the store. A load failure is logged, not fatal: the process
// starts with no profile.
func NewProfileService(store domain.ProfileRepository) *ProfileService {
	s := &ProfileService{store: store}

	profile, err := store.Load()
	if err != nil {
		log.Printf("[PROFILE] Failed to load saved profile: %v", err)
		return s
	}
	if profile != nil {
		s.active = profile
		log.Printf("[PROFILE] Loaded saved profile: %s", profile.ProfileName)
	}
	return s
}

// Active returns the current profile, or nil when none is set. The returned
// value is replaced, never mutated, by writers.
func (s *ProfileService) Active() *domain.DietaryProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Set replaces the active profile and persists it.
func (s *ProfileService) Set(profile *domain.DietaryProfile) error {
	if profile == nil {
		return domain.ErrInvalidRequest
	}
	if profile.ProfileName == "" {
		profile.ProfileName = "Custom Profile"
	}

	if err := s.store.Save(profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	s.mu.Lock()
	s.active = profile
	s.mu.Unlock()

	log.Printf("[PROFILE] Profile set and saved: %s", profile.ProfileName)
	return nil
}

// Clear drops the active profile and removes the saved document. After a
// clear, classification returns trivially safe verdicts until a new profile
// is set.
func (s *ProfileService) Clear() error {
	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()

	if err := s.store.Delete(); err != nil {
		return fmt.Errorf("deleting saved profile: %w", err)
	}

	log.Printf("[PROFILE] Profile cleared")
	return nil
}
