package memory

import (
	"context"

	"pawcare/internal/domain/users"
)

type userRepo struct {
	t *table[users.User]
}

func NewUserRepo() users.Repository {
	return &userRepo{t: newTable[users.User](nil)}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	return r.t.create(u.ID, u)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.t.get(id)
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	return r.t.list(), nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	return r.t.update(u.ID, u)
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(id)
}
