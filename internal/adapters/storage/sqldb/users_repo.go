package sqldb

import (
	"context"
	"strings"

	"pawcare/internal/domain/users"
)

type UsersRepo struct {
	db *DB
}

func NewUsersRepo(db *DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.exec(ctx, `INSERT INTO users (id, name, role) VALUES ($1,$2,$3)`, u.ID, u.Name, string(u.Role))
	return err
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	return r.db.execAffecting(ctx, `UPDATE users SET name = $2, role = $3 WHERE id = $1`, u.ID, u.Name, string(u.Role))
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, ErrNotFound
	}

	var (
		u    users.User
		role string
	)
	row := r.db.queryRow(ctx, `SELECT id, name, role FROM users WHERE id = $1`, id)
	if err := row.Scan(&u.ID, &u.Name, &role); err != nil {
		return users.User{}, notFound(err)
	}
	u.Role = users.Role(role)
	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.query(ctx, `SELECT id, name, role FROM users ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var (
			u    users.User
			role string
		)
		if err := rows.Scan(&u.ID, &u.Name, &role); err != nil {
			return nil, err
		}
		u.Role = users.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	return r.db.execAffecting(ctx, `DELETE FROM users WHERE id = $1`, id)
}
