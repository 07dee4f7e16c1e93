package status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxList = 1000

// Service records and lists status checks.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Create stores a check for clientName stamped with the current time.
func (s *Service) Create(ctx context.Context, clientName string) (Check, error) {
	if s == nil || s.Repo == nil {
		return Check{}, errors.New("status service not configured")
	}
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return Check{}, fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	check := Check{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  now().UTC().Truncate(time.Millisecond),
	}
	if err := s.Repo.Create(ctx, check); err != nil {
		return Check{}, fmt.Errorf("create status check: %w", err)
	}
	return check, nil
}

// List returns up to 1000 checks.
func (s *Service) List(ctx context.Context) ([]Check, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("status service not configured")
	}
	checks, err := s.Repo.List(ctx, maxList)
	if err != nil {
		return nil, fmt.Errorf("list status checks: %w", err)
	}
	return checks, nil
}
