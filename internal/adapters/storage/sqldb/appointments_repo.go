package sqldb

import (
	"context"
	"database/sql"
	"strings"

	"pawcare/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *DB
}

func NewAppointmentsRepo(db *DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `id, pet_id, owner, date, time, vet, status, completed_at`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		a.ID,
		a.PetID,
		a.Owner,
		toDate(a.Date),
		a.Time,
		a.Vet,
		string(a.Status),
		toNullDate(a.CompletedAt),
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	return r.db.execAffecting(ctx, `
		UPDATE appointments
		SET
			pet_id = $2,
			owner = $3,
			date = $4,
			time = $5,
			vet = $6,
			status = $7,
			completed_at = $8
		WHERE id = $1
	`,
		a.ID,
		a.PetID,
		a.Owner,
		toDate(a.Date),
		a.Time,
		a.Vet,
		string(a.Status),
		toNullDate(a.CompletedAt),
	)
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, ErrNotFound
	}

	row := r.db.queryRow(ctx, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if err != nil {
		return appointments.Appointment{}, notFound(err)
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	rows, err := r.db.query(ctx, `SELECT `+appointmentColumns+` FROM appointments ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	return r.db.execAffecting(ctx, `DELETE FROM appointments WHERE id = $1`, id)
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var (
		a         appointments.Appointment
		date      string
		status    string
		completed sql.NullString
	)
	if err := s.Scan(&a.ID, &a.PetID, &a.Owner, &date, &a.Time, &a.Vet, &status, &completed); err != nil {
		return appointments.Appointment{}, err
	}

	d, err := fromDate(date)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a.Date = d
	a.Status = appointments.Status(status)

	if a.CompletedAt, err = fromNullDate(completed); err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}
