package prescriptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"pawcare/internal/domain/oplog"
	"pawcare/internal/platform/apperr"
	"pawcare/internal/platform/validation"
)

var (
	ErrInvalidInput = apperr.ErrInvalidInput
	ErrNotFound     = apperr.ErrNotFound
)

type Service struct {
	repo Repository
	log  *oplog.Service
	now  func() time.Time
}

func NewService(repo Repository, log *oplog.Service) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID      string `validate:"required"`
	PetName    string
	Owner      string
	Drug       string `validate:"required"`
	Dosage     string
	Directions string
	Prescriber string
	Date       civil.Date // cero = hoy
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Prescription, error) {
	in.PetID = strings.TrimSpace(in.PetID)
	in.Drug = strings.TrimSpace(in.Drug)
	if err := validation.Struct(in); err != nil {
		return Prescription{}, err
	}

	date := in.Date
	if date.IsZero() {
		date = civil.DateOf(s.now())
	}

	p := Prescription{
		ID:         uuid.NewString(),
		PetID:      in.PetID,
		PetName:    strings.TrimSpace(in.PetName),
		Owner:      strings.TrimSpace(in.Owner),
		Drug:       in.Drug,
		Dosage:     strings.TrimSpace(in.Dosage),
		Directions: strings.TrimSpace(in.Directions),
		Prescriber: strings.TrimSpace(in.Prescriber),
		Date:       date,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Prescription{}, fmt.Errorf("create prescription: %w", err)
	}
	msg := fmt.Sprintf("Rx issued for %s (%s)", p.PetName, p.Drug)
	if _, err := s.log.Append(ctx, oplog.TypeRxCreated, msg, p.PetID); err != nil {
		return Prescription{}, undo(err, s.repo.Delete(ctx, p.ID))
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Prescription, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return Prescription{}, apperr.NotFound("prescription")
	}
	if err != nil {
		return Prescription{}, fmt.Errorf("get prescription: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Prescription, error) {
	return s.repo.List(ctx)
}

// Dispense marca la receta como entregada hoy. No es idempotente respecto a la
// bitácora: cada llamada deja su RX_DISPENSED y refresca la fecha.
func (s *Service) Dispense(ctx context.Context, id string) (Prescription, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Prescription{}, err
	}

	prev := p
	today := civil.DateOf(s.now())
	p.Dispensed = true
	p.DispensedAt = &today

	if err := s.repo.Update(ctx, p); err != nil {
		return Prescription{}, fmt.Errorf("dispense prescription: %w", err)
	}
	if _, err := s.log.Append(ctx, oplog.TypeRxDispensed, "Rx dispensed for "+p.PetName, p.PetID); err != nil {
		return Prescription{}, undo(err, s.repo.Update(ctx, prev))
	}
	return p, nil
}

// Delete no deja entrada en la bitácora.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete prescription: %w", err)
	}
	return nil
}

func undo(err, rollbackErr error) error {
	if rollbackErr != nil {
		return errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
	}
	return err
}
