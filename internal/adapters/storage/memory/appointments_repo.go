package memory

import (
	"context"

	"pawcare/internal/domain/appointments"
)

type appointmentRepo struct {
	t *table[appointments.Appointment]
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{t: newTable(func(a appointments.Appointment) appointments.Appointment {
		if a.CompletedAt != nil {
			d := *a.CompletedAt
			a.CompletedAt = &d
		}
		return a
	})}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	return r.t.create(a.ID, a)
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	return r.t.get(id)
}

func (r *appointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.t.list(), nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	return r.t.update(a.ID, a)
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(id)
}
