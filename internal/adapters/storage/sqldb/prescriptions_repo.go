package sqldb

import (
	"context"
	"database/sql"
	"strings"

	"pawcare/internal/domain/prescriptions"
)

type PrescriptionsRepo struct {
	db *DB
}

func NewPrescriptionsRepo(db *DB) *PrescriptionsRepo {
	return &PrescriptionsRepo{db: db}
}

const prescriptionColumns = `
	id, pet_id, pet_name, owner,
	drug, dosage, directions, prescriber, date,
	dispensed, dispensed_at`

func (r *PrescriptionsRepo) Create(ctx context.Context, p prescriptions.Prescription) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO prescriptions (`+prescriptionColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.PetID,
		p.PetName,
		p.Owner,
		p.Drug,
		p.Dosage,
		p.Directions,
		p.Prescriber,
		toDate(p.Date),
		p.Dispensed,
		toNullDate(p.DispensedAt),
	)
	return err
}

func (r *PrescriptionsRepo) Update(ctx context.Context, p prescriptions.Prescription) error {
	return r.db.execAffecting(ctx, `
		UPDATE prescriptions
		SET
			pet_id = $2,
			pet_name = $3,
			owner = $4,
			drug = $5,
			dosage = $6,
			directions = $7,
			prescriber = $8,
			date = $9,
			dispensed = $10,
			dispensed_at = $11
		WHERE id = $1
	`,
		p.ID,
		p.PetID,
		p.PetName,
		p.Owner,
		p.Drug,
		p.Dosage,
		p.Directions,
		p.Prescriber,
		toDate(p.Date),
		p.Dispensed,
		toNullDate(p.DispensedAt),
	)
}

func (r *PrescriptionsRepo) GetByID(ctx context.Context, id string) (prescriptions.Prescription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return prescriptions.Prescription{}, ErrNotFound
	}

	row := r.db.queryRow(ctx, `SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`, id)
	p, err := scanPrescription(row)
	if err != nil {
		return prescriptions.Prescription{}, notFound(err)
	}
	return p, nil
}

func (r *PrescriptionsRepo) List(ctx context.Context) ([]prescriptions.Prescription, error) {
	rows, err := r.db.query(ctx, `SELECT `+prescriptionColumns+` FROM prescriptions ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]prescriptions.Prescription, 0)
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PrescriptionsRepo) Delete(ctx context.Context, id string) error {
	return r.db.execAffecting(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
}

func scanPrescription(s scanner) (prescriptions.Prescription, error) {
	var (
		p         prescriptions.Prescription
		date      string
		dispensed sql.NullString
	)
	if err := s.Scan(
		&p.ID,
		&p.PetID,
		&p.PetName,
		&p.Owner,
		&p.Drug,
		&p.Dosage,
		&p.Directions,
		&p.Prescriber,
		&date,
		&p.Dispensed,
		&dispensed,
	); err != nil {
		return prescriptions.Prescription{}, err
	}

	d, err := fromDate(date)
	if err != nil {
		return prescriptions.Prescription{}, err
	}
	p.Date = d

	if p.DispensedAt, err = fromNullDate(dispensed); err != nil {
		return prescriptions.Prescription{}, err
	}
	return p, nil
}
