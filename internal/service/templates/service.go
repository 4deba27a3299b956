package templates

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/jobmailer/internal/domain"
	"github.com/ignite/jobmailer/internal/kvstore"
	"github.com/ignite/jobmailer/internal/pkg/logger"
)

const storeKey = "email-templates"

// Service manages the template library. All public methods are safe
// for concurrent use.
type Service struct {
	mu        sync.RWMutex
	store     kvstore.Store
	templates []domain.EmailTemplate
	listeners []func()
	now       func() time.Time
}

// NewService loads templates from the store. A store that has never
// been written is seeded with the starter templates; a read failure
// falls back to the starters without overwriting whatever is persisted.
func NewService(ctx context.Context, store kvstore.Store) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}

	var loaded []domain.EmailTemplate
	err := store.Get(ctx, storeKey, &loaded)
	switch {
	case err == nil:
		s.templates = loaded
	case err == kvstore.ErrNotFound:
		s.templates = defaultTemplates(s.now())
		if perr := store.Set(ctx, storeKey, s.templates); perr != nil {
			logger.Warn("seeding starter templates failed", "error", perr)
		}
	default:
		logger.Warn("loading templates failed, using starters", "error", err)
		s.templates = defaultTemplates(s.now())
	}

	return s
}

// CreateInput holds the caller-supplied fields for a new template.
type CreateInput struct {
	Name     string                  `json:"name"`
	Subject  string                  `json:"subject"`
	Body     string                  `json:"body"`
	Category domain.TemplateCategory `json:"category"`
}

// UpdateFields holds optional template mutations. Nil fields are left
// unchanged.
type UpdateFields struct {
	Name     *string                  `json:"name,omitempty"`
	Subject  *string                  `json:"subject,omitempty"`
	Body     *string                  `json:"body,omitempty"`
	Category *domain.TemplateCategory `json:"category,omitempty"`
}

// List returns all templates in creation order.
func (s *Service) List(_ context.Context) []domain.EmailTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EmailTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

// Get returns one template by ID.
func (s *Service) Get(_ context.Context, id string) (*domain.EmailTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			t := s.templates[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// ByCategory returns templates matching the given category.
func (s *Service) ByCategory(_ context.Context, category domain.TemplateCategory) []domain.EmailTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.EmailTemplate
	for _, t := range s.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Create validates and persists a new template.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.EmailTemplate, error) {
	if input.Name == "" {
		return nil, ErrMissingName
	}
	if input.Subject == "" {
		return nil, ErrMissingSubject
	}
	if input.Body == "" {
		return nil, ErrMissingBody
	}
	if !domain.ValidTemplateCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	now := s.now()
	t := domain.EmailTemplate{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Subject:   input.Subject,
		Body:      input.Body,
		Category:  input.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = append(s.templates, t)
	if err := s.persist(ctx); err != nil {
		s.templates = s.templates[:len(s.templates)-1]
		return nil, err
	}
	s.notifyLocked()
	return &t, nil
}

// Subscribe registers fn to run after every successful mutation.
// Listeners run with the service lock held and must not call back into
// the Service.
func (s *Service) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Update modifies the non-nil fields of a template and advances its
// UpdatedAt. An unknown id is a no-op and returns a nil template.
func (s *Service) Update(ctx context.Context, id string, u UpdateFields) (*domain.EmailTemplate, error) {
	if u.Category != nil && !domain.ValidTemplateCategory(*u.Category) {
		return nil, ErrInvalidCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID != id {
			continue
		}
		prev := s.templates[i]
		if u.Name != nil {
			s.templates[i].Name = *u.Name
		}
		if u.Subject != nil {
			s.templates[i].Subject = *u.Subject
		}
		if u.Body != nil {
			s.templates[i].Body = *u.Body
		}
		if u.Category != nil {
			s.templates[i].Category = *u.Category
		}
		s.templates[i].UpdatedAt = s.now()
		if err := s.persist(ctx); err != nil {
			s.templates[i] = prev
			return nil, err
		}
		s.notifyLocked()
		t := s.templates[i]
		return &t, nil
	}
	return nil, nil
}

// Delete removes a template. Deleting the last template leaves an empty
// library; starters are not re-seeded. An unknown id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID != id {
			continue
		}
		removed := s.templates[i]
		s.templates = append(s.templates[:i], s.templates[i+1:]...)
		if err := s.persist(ctx); err != nil {
			s.templates = append(s.templates[:i], append([]domain.EmailTemplate{removed}, s.templates[i:]...)...)
			return err
		}
		s.notifyLocked()
		return nil
	}
	return nil
}

// persist writes the full library. Callers must hold the write lock.
func (s *Service) persist(ctx context.Context) error {
	return s.store.Set(ctx, storeKey, s.templates)
}

// notifyLocked fires the registered listeners. Callers must hold the
// write lock.
func (s *Service) notifyLocked() {
	for _, fn := range s.listeners {
		fn()
	}
}
