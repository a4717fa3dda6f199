package appointments

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
	PetID string `validate:"required"`
	Owner string
	Date  civil.Date
	Time  string
	Vet   string

	// Status se ignora: toda cita nueva arranca en Pending.
	Status Status
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	in.PetID = strings.TrimSpace(in.PetID)
	if err := validation.Struct(in); err != nil {
		return Appointment{}, err
	}

	a := Appointment{
		ID:     uuid.NewString(),
		PetID:  in.PetID,
		Owner:  strings.TrimSpace(in.Owner),
		Date:   in.Date,
		Time:   strings.TrimSpace(in.Time),
		Vet:    strings.TrimSpace(in.Vet),
		Status: StatusPending,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, fmt.Errorf("create appointment: %w", err)
	}
	if _, err := s.log.Append(ctx, oplog.TypeApptCreated, "Appointment created for "+a.Owner, a.PetID); err != nil {
		return Appointment{}, undo(err, s.repo.Delete(ctx, a.ID))
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return Appointment{}, apperr.NotFound("appointment")
	}
	if err != nil {
		return Appointment{}, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

// Approve pasa la cita a "Approved by Vet" desde cualquier estado.
// Si estaba Done se limpia la fecha de cierre.
func (s *Service) Approve(ctx context.Context, id string) (Appointment, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	prev := a
	a.Status = StatusApproved
	a.CompletedAt = nil

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, fmt.Errorf("approve appointment: %w", err)
	}
	if _, err := s.log.Append(ctx, oplog.TypeApptApproved, "Appointment approved for "+a.Owner, a.PetID); err != nil {
		return Appointment{}, undo(err, s.repo.Update(ctx, prev))
	}
	return a, nil
}

// MarkDone cierra la cita con la fecha de hoy. Repetirlo refresca la fecha.
func (s *Service) MarkDone(ctx context.Context, id string) (Appointment, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	prev := a
	today := civil.DateOf(s.now())
	a.Status = StatusDone
	a.CompletedAt = &today

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, fmt.Errorf("complete appointment: %w", err)
	}
	if _, err := s.log.Append(ctx, oplog.TypeApptDone, "Appointment done for "+a.Owner, a.PetID); err != nil {
		return Appointment{}, undo(err, s.repo.Update(ctx, prev))
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.log.Append(ctx, oplog.TypeApptDeleted, "Removed appointment #"+a.ID, ""); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

func undo(err, rollbackErr error) error {
	if rollbackErr != nil {
		return errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
	}
	return err
}
