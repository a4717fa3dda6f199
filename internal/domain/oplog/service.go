package oplog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"pawcare/internal/platform/apperr"
	"pawcare/internal/platform/metrics"
)

var (
	ErrInvalidInput = apperr.ErrInvalidInput
)

type Service struct {
	repo    Repository
	now     func() time.Time
	metrics *metrics.Metrics

	mu   sync.Mutex
	last time.Time
}

// NewService acepta metrics nil (tests).
func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		now:     time.Now,
		metrics: m,
	}
}

// Append escribe una entrada nueva con el timestamp actual.
// El timestamp nunca retrocede respecto a la entrada anterior del proceso.
func (s *Service) Append(ctx context.Context, typ EntryType, message, petID string) (Entry, error) {
	if typ == "" {
		return Entry{}, apperr.Invalid("entry type is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now()
	if !s.last.IsZero() && ts.Before(s.last) {
		ts = s.last
	}

	e, err := s.repo.Create(ctx, Entry{
		ID:        uuid.NewString(),
		Timestamp: ts,
		Type:      typ,
		Message:   strings.TrimSpace(message),
		PetID:     strings.TrimSpace(petID),
	})
	if err != nil {
		return Entry{}, fmt.Errorf("append %s: %w", typ, err)
	}
	s.last = ts

	s.metrics.ObserveOperation(string(typ))
	return e, nil
}

// Between devuelve las entradas cuyo día cae en [start, end] inclusivo.
func (s *Service) Between(ctx context.Context, start, end civil.Date) ([]Entry, error) {
	if !start.IsValid() || !end.IsValid() {
		return nil, apperr.Invalid("from and to must be valid dates")
	}
	if start.After(end) {
		return nil, apperr.Invalid("from must not be after to")
	}
	return s.repo.ListBetween(ctx, start, end)
}
