package sqldb

import (
	"context"
	"strings"

	"pawcare/internal/domain/pets"
)

type PetsRepo struct {
	db *DB
}

func NewPetsRepo(db *DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id,
	name, species, breed, gender, age,
	contact_number, microchip,
	owner, address, federation,
	photo, photo_thumbnail, procedures,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	procs, err := encodeProcedures(p.Procedures)
	if err != nil {
		return err
	}

	_, err = r.db.exec(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Gender,
		p.Age,
		p.ContactNumber,
		p.Microchip,
		p.Owner,
		p.Address,
		p.Federation,
		p.Photo,
		p.PhotoThumbnail,
		procs,
		toNanos(p.CreatedAt),
		toNanos(p.UpdatedAt),
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	procs, err := encodeProcedures(p.Procedures)
	if err != nil {
		return err
	}

	return r.db.execAffecting(ctx, `
		UPDATE pets
		SET
			name = $2,
			species = $3,
			breed = $4,
			gender = $5,
			age = $6,
			contact_number = $7,
			microchip = $8,
			owner = $9,
			address = $10,
			federation = $11,
			photo = $12,
			photo_thumbnail = $13,
			procedures = $14,
			updated_at = $15
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Species,
		p.Breed,
		p.Gender,
		p.Age,
		p.ContactNumber,
		p.Microchip,
		p.Owner,
		p.Address,
		p.Federation,
		p.Photo,
		p.PhotoThumbnail,
		procs,
		toNanos(p.UpdatedAt),
	)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.queryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, notFound(err)
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.query(ctx, `SELECT `+petColumns+` FROM pets ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	return r.db.execAffecting(ctx, `DELETE FROM pets WHERE id = $1`, id)
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p       pets.Pet
		procs   string
		created int64
		updated int64
	)
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Gender,
		&p.Age,
		&p.ContactNumber,
		&p.Microchip,
		&p.Owner,
		&p.Address,
		&p.Federation,
		&p.Photo,
		&p.PhotoThumbnail,
		&procs,
		&created,
		&updated,
	); err != nil {
		return pets.Pet{}, err
	}

	decoded, err := decodeProcedures(procs)
	if err != nil {
		return pets.Pet{}, err
	}
	p.Procedures = decoded
	p.CreatedAt = fromNanos(created)
	p.UpdatedAt = fromNanos(updated)
	return p, nil
}
