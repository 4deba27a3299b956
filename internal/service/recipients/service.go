package recipients

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/kvstore"
	"github.com/ignite/jobmailer/internal/pkg/logger"
)

const storeKey = "recipients"

// Service manages the recipient list. All public methods are safe for
// concurrent use.
type Service struct {
	mu         sync.RWMutex
	store      kvstore.Store
	recipients []domain.Recipient
	listeners  []func()
	now        func() time.Time
}

// NewService loads recipients from the store. A missing key means an
// empty list; a read failure is logged and also yields an empty list so
// the application stays usable.
func NewService(ctx context.Context, store kvstore.Store) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}

	var loaded []domain.Recipient
	if err := store.Get(ctx, storeKey, &loaded); err != nil {
		if err != kvstore.ErrNotFound {
			logger.Warn("loading recipients failed, starting empty", "error", err)
		}
	} else {
		s.recipients = loaded
	}

	return s
}

// CreateInput holds the caller-supplied fields for a new recipient.
type CreateInput struct {
	Email   string   `json:"email"`
	Name    string   `json:"name"`
	Company string   `json:"company"`
	Role    string   `json:"role"`
	Tags    []string `json:"tags"`
}

// UpdateFields holds optional recipient mutations. Nil fields are left
// unchanged. Email cannot be updated; delete and re-add instead.
type UpdateFields struct {
	Name    *string   `json:"name,omitempty"`
	Company *string   `json:"company,omitempty"`
	Role    *string   `json:"role,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// List returns all recipients in creation order.
func (s *Service) List(_ context.Context) []domain.Recipient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Recipient, len(s.recipients))
	copy(out, s.recipients)
	return out
}

// Get returns one recipient by ID.
func (s *Service) Get(_ context.Context, id string) (*domain.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.recipients {
		if s.recipients[i].ID == id {
			r := s.recipients[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

// Add validates and persists one recipient. The stored email keeps the
// caller's casing; uniqueness is case-insensitive.
func (s *Service) Add(ctx context.Context, input CreateInput) (*domain.Recipient, error) {
	if !domain.ValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmailLocked(input.Email) != nil {
		return nil, ErrDuplicateEmail
	}

	r := domain.Recipient{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Name:      input.Name,
		Company:   input.Company,
		Role:      input.Role,
		Tags:      input.Tags,
		CreatedAt: s.now(),
	}

	s.recipients = append(s.recipients, r)
	if err := s.persist(ctx); err != nil {
		s.recipients = s.recipients[:len(s.recipients)-1]
		return nil, err
	}
	s.notifyLocked()
	return &r, nil
}

// Subscribe registers fn to run after every successful mutation.
// Listeners run with the service lock held and must not call back into
// the Service.
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Update modifies the non-nil fields of a recipient. An unknown id is
// a no-op and returns a nil recipient.
func (s *Service) Update(ctx context.Context, id string, u UpdateFields) (*domain.Recipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recipients {
		if s.recipients[i].ID != id {
			continue
		}
		prev := s.recipients[i]
		if u.Name != nil {
			s.recipients[i].Name = *u.Name
		}
		if u.Company != nil {
			s.recipients[i].Company = *u.Company
		}
		if u.Role != nil {
			s.recipients[i].Role = *u.Role
		}
		if u.Tags != nil {
			s.recipients[i].Tags = *u.Tags
		}
		if err := s.persist(ctx); err != nil {
			s.recipients[i] = prev
			return nil, err
		}
		s.notifyLocked()
		r := s.recipients[i]
		return &r, nil
	}
	return nil, nil
}

// Delete removes a recipient. An unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recipients {
		if s.recipients[i].ID != id {
			continue
		}
		removed := s.recipients[i]
		s.recipients = append(s.recipients[:i], s.recipients[i+1:]...)
		if err := s.persist(ctx); err != nil {
			s.recipients = append(s.recipients[:i], append([]domain.Recipient{removed}, s.recipients[i:]...)...)
			return err
		}
		s.notifyLocked()
		return nil
	}
	return nil
}

// ByTags returns recipients carrying at least one of the given tags.
// An empty tag list matches everyone.
func (s *Service) ByTags(_ context.Context, tags []string) []domain.Recipient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(tags) == 0 {
		out := make([]domain.Recipient, len(s.recipients))
		copy(out, s.recipients)
		return out
	}
	var out []domain.Recipient
	for _, r := range s.recipients {
		for _, tag := range tags {
			if r.HasTag(tag) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// AllTags returns the distinct tags across the list, in first-seen
// order.
func (s *Service) AllTags(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var tags []string
	for _, r := range s.recipients {
		for _, t := range r.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// findByEmailLocked does a case-insensitive lookup. Callers must hold
// at least the read lock.
func (s *Service) findByEmailLocked(email string) *domain.Recipient {
	normalized := domain.NormalizeEmail(email)
	for i := range s.recipients {
		if domain.NormalizeEmail(s.recipients[i].Email) == normalized {
			return &s.recipients[i]
		}
	}
	return nil
}

// persist writes the full list. Callers must hold the write lock.
func (s *Service) persist(ctx context.Context) error {
	return s.store.Set(ctx, storeKey, s.recipients)
}

// notifyLocked fires the registered listeners. Callers must hold the
// write lock.
func (s *Service) notifyLocked() {
	for _, fn := range s.listeners {
		fn()
	}
}
