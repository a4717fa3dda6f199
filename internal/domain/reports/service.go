package reports

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"pawcare/internal/domain/oplog"
	"pawcare/internal/platform/apperr"
	"pawcare/internal/platform/dates"
	"pawcare/internal/platform/metrics"
)

var ErrInvalidInput = apperr.ErrInvalidInput

type Service struct {
	appts   AppointmentSource
	rxs     PrescriptionSource
	events  EventSource
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(appts AppointmentSource, rxs PrescriptionSource, events EventSource, m *metrics.Metrics) *Service {
	return &Service{
		appts:   appts,
		rxs:     rxs,
		events:  events,
		metrics: m,
		now:     time.Now,
	}
}

// SummaryInput llega tal cual desde la query string; From/To solo aplican a custom.
type SummaryInput struct {
	Period string
	From   string
	To     string
}

// Window resuelve el período a un rango [start, end] inclusivo relativo a today.
func Window(in SummaryInput, today civil.Date) (Period, civil.Date, civil.Date, error) {
	// el nombre tiene que coincidir exacto: "Day" o " week" son inválidos
	p := Period(in.Period)

	switch p {
	case PeriodDay:
		return p, today, today, nil
	case PeriodWeek:
		return p, today.AddDays(-6), today, nil
	case PeriodMonth:
		first := civil.Date{Year: today.Year, Month: today.Month, Day: 1}
		return p, first, today, nil
	case PeriodCustom:
		from, err := dates.ParseRequired("from", in.From)
		if err != nil {
			return "", civil.Date{}, civil.Date{}, err
		}
		to, err := dates.ParseRequired("to", in.To)
		if err != nil {
			return "", civil.Date{}, civil.Date{}, err
		}
		if from.After(to) {
			return "", civil.Date{}, civil.Date{}, apperr.Invalid("from must not be after to")
		}
		return p, from, to, nil
	default:
		return "", civil.Date{}, civil.Date{}, apperr.Invalid("invalid period %q", in.Period)
	}
}

// Summary recorre citas, recetas y bitácora completas en cada llamada. Sin cache.
func (s *Service) Summary(ctx context.Context, in SummaryInput) (Summary, error) {
	started := time.Now()

	period, start, end, err := Window(in, civil.DateOf(s.now()))
	if err != nil {
		return Summary{}, err
	}
	defer func() { s.metrics.ObserveReport(string(period), time.Since(started)) }()

	out := Summary{Period: period, From: start, To: end}

	appts, err := s.appts.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list appointments: %w", err)
	}
	for _, a := range appts {
		if a.Status.IsDone() && a.CompletedAt != nil && dates.Within(*a.CompletedAt, start, end) {
			out.AppointmentsDone++
		}
	}

	rxs, err := s.rxs.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list prescriptions: %w", err)
	}
	for _, p := range rxs {
		if p.Dispensed && p.DispensedAt != nil && dates.Within(*p.DispensedAt, start, end) {
			out.PrescriptionsDispensed++
		}
	}

	events, err := s.events.Between(ctx, start, end)
	if err != nil {
		return Summary{}, fmt.Errorf("list events: %w", err)
	}
	for _, e := range events {
		if e.Type == oplog.TypePetCreated {
			out.PetsAdded++
		}
	}
	out.Events = events

	return out, nil
}
