package prescriptions

import "context"

type Repository interface {
	Create(ctx context.Context, p Prescription) error
	GetByID(ctx context.Context, id string) (Prescription, error)
	List(ctx context.Context) ([]Prescription, error)
	Update(ctx context.Context, p Prescription) error
	Delete(ctx context.Context, id string) error
}
