package memory

import (
	"context"

	"pawcare/internal/domain/prescriptions"
)

type prescriptionRepo struct {
	t *table[prescriptions.Prescription]
}

func NewPrescriptionRepo() prescriptions.Repository {
	return &prescriptionRepo{t: newTable(func(p prescriptions.Prescription) prescriptions.Prescription {
		if p.DispensedAt != nil {
			d := *p.DispensedAt
			p.DispensedAt = &d
		}
		return p
	})}
}

func (r *prescriptionRepo) Create(ctx context.Context, p prescriptions.Prescription) error {
	return r.t.create(p.ID, p)
}

func (r *prescriptionRepo) GetByID(ctx context.Context, id string) (prescriptions.Prescription, error) {
	return r.t.get(id)
}

func (r *prescriptionRepo) List(ctx context.Context) ([]prescriptions.Prescription, error) {
	return r.t.list(), nil
}

func (r *prescriptionRepo) Update(ctx context.Context, p prescriptions.Prescription) error {
	return r.t.update(p.ID, p)
}

func (r *prescriptionRepo) Delete(ctx context.Context, id string) error {
	return r.t.delete(id)
}
