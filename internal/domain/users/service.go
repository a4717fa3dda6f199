package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pawcare/internal/platform/apperr"
	"pawcare/internal/platform/validation"
)

var (
	ErrInvalidInput = apperr.ErrInvalidInput
	ErrNotFound     = apperr.ErrNotFound
)

// Service no escribe en la bitácora: los cambios de staff no son operaciones clínicas.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name string `validate:"required"`
	Role Role   `validate:"required,oneof=admin vet receptionist pharmacist"`
}

func (in Input) normalized() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = Role(strings.ToLower(strings.TrimSpace(string(in.Role))))
	return in
}

func (s *Service) Create(ctx context.Context, in Input) (User, error) {
	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return User{}, err
	}

	u := User{ID: uuid.NewString(), Name: in.Name, Role: in.Role}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, ErrNotFound) {
		return User{}, apperr.NotFound("user")
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (User, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}

	in = in.normalized()
	if err := validation.Struct(in); err != nil {
		return User{}, err
	}

	u := User{ID: current.ID, Name: in.Name, Role: in.Role}
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, u.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
