package reimbursements

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// Service contains business logic for reimbursement records.
type Service struct {
	Repo     Repo
	Template TemplateSource

	clockOnce sync.Once
	clock     *clock
}

// NewService constructs a Service. A nil template falls back to StaticTemplate.
func NewService(repo Repo, template TemplateSource) *Service {
	if template == nil {
		template = StaticTemplate{}
	}
	return &Service{Repo: repo, Template: template}
}

// Create stores a new record holding only the submitted values and document
// reference from patch. Reference columns start unset.
func (s *Service) Create(ctx context.Context, patch Patch) (Record, error) {
	if err := s.ready(); err != nil {
		return Record{}, err
	}
	now := s.timestamp()
	rec := Record{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	patch.ApplyTo(&rec)

	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("create record %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Update merges the present columns of patch into the record. An empty patch
// is rejected before any store call.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Record, error) {
	if err := s.ready(); err != nil {
		return Record{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	if patch.Len() == 0 {
		return Record{}, fmt.Errorf("%w: no data provided for update", ErrInvalidInput)
	}

	rec, err := s.Repo.Update(ctx, id, patch, s.timestamp())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("update record %s: %w", id, err)
	}
	return rec, nil
}

// Get returns one record.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	if err := s.ready(); err != nil {
		return Record{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

// List returns records oldest first. limit is clamped to 1..1000.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Record, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	recs, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}

// TemplateValues returns the reference values from the template source.
func (s *Service) TemplateValues(ctx context.Context) (Fields, error) {
	if s == nil || s.Template == nil {
		return Fields{}, errors.New("template source not configured")
	}
	f, err := s.Template.Template(ctx)
	if err != nil {
		return Fields{}, fmt.Errorf("load template: %w", err)
	}
	return f, nil
}

func (s *Service) ready() error {
	if s == nil || s.Repo == nil {
		return errors.New("reimbursements service not configured")
	}
	return nil
}

func (s *Service) timestamp() time.Time {
	s.clockOnce.Do(func() {
		if s.clock == nil {
			s.clock = newClock(time.Now)
		}
	})
	return s.clock.next()
}
