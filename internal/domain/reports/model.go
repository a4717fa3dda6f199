package reports

import (
	"context"

	"cloud.google.com/go/civil"

	"pawcare/internal/domain/appointments"
	"pawcare/internal/domain/oplog"
	"pawcare/internal/domain/prescriptions"
)

type Period string

const (
	PeriodDay    Period = "day"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodCustom Period = "custom"
)

// Summary se calcula en cada pedido; nunca se persiste.
type Summary struct {
	Period Period
	From   civil.Date
	To     civil.Date

	AppointmentsDone       int
	PrescriptionsDispensed int
	PetsAdded              int

	Events []oplog.Entry // orden cronológico
}

// Fuentes de lectura. Los servicios de cada dominio las satisfacen.

type AppointmentSource interface {
	List(ctx context.Context) ([]appointments.Appointment, error)
}

type PrescriptionSource interface {
	List(ctx context.Context) ([]prescriptions.Prescription, error)
}

type EventSource interface {
	Between(ctx context.Context, start, end civil.Date) ([]oplog.Entry, error)
}
