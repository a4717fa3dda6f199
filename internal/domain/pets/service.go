package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pawcare/internal/domain/oplog"
	"pawcare/internal/platform/apperr"
	"pawcare/internal/platform/validation"
	"pawcare/internal/ports/blob"
)

var (
	ErrInvalidInput = apperr.ErrInvalidInput
	ErrNotFound     = apperr.ErrNotFound
)

type Service struct {
	repo   Repository
	log    *oplog.Service
	photos blob.Store // puede ser nil: AttachPhoto falla
	now    func() time.Time
}

func NewService(repo Repository, log *oplog.Service, photos blob.Store) *Service {
	return &Service{
		repo:   repo,
		log:    log,
		photos: photos,
		now:    time.Now,
	}
}

// Input es el reemplazo completo de la ficha (create y update).
type Input struct {
	Name          string `validate:"required"`
	Species       string
	Breed         string
	Gender        string
	Age           int
	ContactNumber string
	Microchip     string
	Owner         string
	Address       string
	Federation    string
	Photo         string
	Procedures    []Procedure
}

func (in Input) normalized() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Species = strings.TrimSpace(in.Species)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Gender = strings.TrimSpace(in.Gender)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
	in.Microchip = strings.TrimSpace(in.Microchip)
	in.Owner = strings.TrimSpace(in.Owner)
	in.Address = strings.TrimSpace(in.Address)
	in.Federation = strings.TrimSpace(in.Federation)
	in.Photo = strings.TrimSpace(in.Photo)
	if in.Procedures == nil {
		in.Procedures = []Procedure{}
	}
	return in
}

func (s *Service) Create(ctx context.Context, in Input) (Pet, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	p = apply(p, in)

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("create pet: %w", err)
	}
	if _, err := s.log.Append(ctx, oplog.TypePetCreated, "Added pet "+p.Name, p.ID); err != nil {
		// sin entrada en la bitácora la ficha no queda creada
		return Pet{}, undo(err, s.repo.Delete(ctx, p.ID))
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return Pet{}, apperr.NotFound("pet")
	}
	if err != nil {
		return Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// Update reemplaza la ficha completa; conserva CreatedAt.
func (s *Service) Update(ctx context.Context, id string, in Input) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return Pet{}, err
	}

	thumb := current.PhotoThumbnail
	p := apply(Pet{ID: current.ID, CreatedAt: current.CreatedAt}, in)
	if p.Photo == current.Photo {
		p.PhotoThumbnail = thumb
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("update pet: %w", err)
	}
	if _, err := s.log.Append(ctx, oplog.TypePetUpdated, "Updated pet "+p.Name, p.ID); err != nil {
		return Pet{}, undo(err, s.repo.Update(ctx, current))
	}
	return p, nil
}

// Delete registra PET_DELETED antes de borrar (para conservar el nombre).
// No borra citas ni recetas asociadas.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.log.Append(ctx, oplog.TypePetDeleted, "Deleted pet "+p.Name, p.ID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	return nil
}

// AddProcedure agrega al final de la lista; no deja entrada en la bitácora.
func (s *Service) AddProcedure(ctx context.Context, id string, proc Procedure) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	proc.Name = strings.TrimSpace(proc.Name)
	proc.Notes = strings.TrimSpace(proc.Notes)
	proc.Vet = strings.TrimSpace(proc.Vet)

	procs := make([]Procedure, 0, len(p.Procedures)+1)
	procs = append(procs, p.Procedures...)
	p.Procedures = append(procs, proc)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, fmt.Errorf("add procedure: %w", err)
	}
	return p, nil
}

func apply(p Pet, in Input) Pet {
	p.Name = in.Name
	p.Species = in.Species
	p.Breed = in.Breed
	p.Gender = in.Gender
	p.Age = in.Age
	p.ContactNumber = in.ContactNumber
	p.Microchip = in.Microchip
	p.Owner = in.Owner
	p.Address = in.Address
	p.Federation = in.Federation
	p.Photo = in.Photo
	p.Procedures = append([]Procedure{}, in.Procedures...)
	return p
}

// undo junta el error del append con el de la compensación, si la hubo.
func undo(err, rollbackErr error) error {
	if rollbackErr != nil {
		return errors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
	}
	return err
}
