package memory

import (
	"context"

	"pawcare/internal/domain/pets"
)

type petRepo struct {
	t *table[pets.Pet]
}

func NewPetRepo() pets.Repository {
	return &petRepo{t: newTable(clonePet)}
}

// clonePet evita que quien llama modifique los procedimientos guardados.
func clonePet(p pets.Pet) pets.Pet {
	p.Procedures = append(make([]pets.Procedure, 0, len(p.Procedures)), p.Procedures...)
	return p
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.t.create(p.ID, p)
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return r.t.get(id)
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.t.list(), nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	return r.t.update(p.ID, p)
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(id)
}
