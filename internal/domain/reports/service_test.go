package reports

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/xuri/excelize/v2"

	"pawcare/internal/domain/appointments"
	"pawcare/internal/domain/oplog"
	"pawcare/internal/domain/prescriptions"
	"pawcare/internal/platform/metrics"
)

// -------------------------
// Test sources
// -------------------------

type apptSource []appointments.Appointment

func (s apptSource) List(ctx context.Context) ([]appointments.Appointment, error) {
	return s, nil
}

type rxSource []prescriptions.Prescription

func (s rxSource) List(ctx context.Context) ([]prescriptions.Prescription, error) {
	return s, nil
}

type eventSource struct {
	items []oplog.Entry
	err   error
}

func (s eventSource) Between(ctx context.Context, start, end civil.Date) ([]oplog.Entry, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]oplog.Entry, 0)
	for _, e := range s.items {
		d := civil.DateOf(e.Timestamp)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func day(d int) civil.Date { return civil.Date{Year: 2026, Month: 10, Day: d} }

func dayPtr(d int) *civil.Date {
	v := day(d)
	return &v
}

func at(d, hour int) time.Time { return time.Date(2026, 10, d, hour, 0, 0, 0, time.UTC) }

// fixture: citas cerradas los días 3, 10 y 14; una aprobada; una "done" en minúscula.
func fixture() (apptSource, rxSource, eventSource) {
	appts := apptSource{
		{ID: "a1", Status: appointments.StatusDone, CompletedAt: dayPtr(3)},
		{ID: "a2", Status: appointments.StatusDone, CompletedAt: dayPtr(10)},
		{ID: "a3", Status: "done", CompletedAt: dayPtr(14)},
		{ID: "a4", Status: appointments.StatusApproved},
		{ID: "a5", Status: appointments.StatusDone}, // sin fecha: no cuenta
	}
	rxs := rxSource{
		{ID: "r1", Dispensed: true, DispensedAt: dayPtr(9)},
		{ID: "r2", Dispensed: true, DispensedAt: dayPtr(14)},
		{ID: "r3"},
		{ID: "r4", Dispensed: false, DispensedAt: dayPtr(14)},
	}
	events := eventSource{items: []oplog.Entry{
		{ID: "e1", Seq: 1, Timestamp: at(1, 9), Type: oplog.TypePetCreated},
		{ID: "e2", Seq: 2, Timestamp: at(9, 9), Type: oplog.TypeRxDispensed},
		{ID: "e3", Seq: 3, Timestamp: at(10, 9), Type: oplog.TypePetCreated},
		{ID: "e4", Seq: 4, Timestamp: at(14, 8), Type: oplog.TypePetCreated},
		{ID: "e5", Seq: 5, Timestamp: at(14, 9), Type: oplog.TypeApptDone},
	}}
	return appts, rxs, events
}

func newTestService(t *testing.T, m *metrics.Metrics) *Service {
	t.Helper()
	appts, rxs, events := fixture()
	svc := NewService(appts, rxs, events, m)
	svc.now = func() time.Time { return at(14, 16) }
	return svc
}

// -------------------------
// Tests
// -------------------------

func TestWindow_Periods(t *testing.T) {
	today := day(14)

	cases := []struct {
		in         SummaryInput
		start, end civil.Date
	}{
		{SummaryInput{Period: "day"}, day(14), day(14)},
		{SummaryInput{Period: "week"}, day(8), day(14)},
		{SummaryInput{Period: "month"}, day(1), day(14)},
		{SummaryInput{Period: "custom", From: "2026-10-02", To: "2026-10-05"}, day(2), day(5)},
		{SummaryInput{Period: "custom", From: "2026-10-05", To: "2026-10-05"}, day(5), day(5)},
	}
	for _, tc := range cases {
		_, start, end, err := Window(tc.in, today)
		if err != nil {
			t.Fatalf("Window(%+v) returned error: %v", tc.in, err)
		}
		if start != tc.start || end != tc.end {
			t.Fatalf("Window(%+v) = %v..%v, want %v..%v", tc.in, start, end, tc.start, tc.end)
		}
	}
}

func TestWindow_WeekCrossesMonth(t *testing.T) {
	_, start, end, err := Window(SummaryInput{Period: "week"}, civil.Date{Year: 2026, Month: 3, Day: 2})
	if err != nil {
		t.Fatalf("Window returned error: %v", err)
	}
	if start != (civil.Date{Year: 2026, Month: 2, Day: 24}) || end != (civil.Date{Year: 2026, Month: 3, Day: 2}) {
		t.Fatalf("unexpected window %v..%v", start, end)
	}
}

func TestWindow_Invalid(t *testing.T) {
	cases := []SummaryInput{
		{Period: "bogus"},
		{Period: ""},
		{Period: "DAY"},
		{Period: "Day"},
		{Period: " week "},
		{Period: "Month"},
		{Period: "CUSTOM", From: "2026-10-01", To: "2026-10-02"},
		{Period: "custom"},
		{Period: "custom", From: "2026-10-01"},
		{Period: "custom", To: "2026-10-01"},
		{Period: "custom", From: "10/01/2026", To: "2026-10-02"},
		{Period: "custom", From: "2026-10-05", To: "2026-10-01"},
	}
	for _, in := range cases {
		if _, _, _, err := Window(in, day(14)); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Window(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestService_Summary_Day(t *testing.T) {
	svc := newTestService(t, nil)

	s, err := svc.Summary(context.Background(), SummaryInput{Period: "day"})
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if s.Period != PeriodDay || s.From != day(14) || s.To != day(14) {
		t.Fatalf("unexpected window %+v", s)
	}
	if s.AppointmentsDone != 1 || s.PrescriptionsDispensed != 1 || s.PetsAdded != 1 {
		t.Fatalf("unexpected counts done=%d rx=%d pets=%d", s.AppointmentsDone, s.PrescriptionsDispensed, s.PetsAdded)
	}
	if len(s.Events) != 2 || s.Events[0].ID != "e4" || s.Events[1].ID != "e5" {
		t.Fatalf("unexpected events %+v", s.Events)
	}
}

func TestService_Summary_Month(t *testing.T) {
	svc := newTestService(t, nil)

	s, err := svc.Summary(context.Background(), SummaryInput{Period: "month"})
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}
	if s.AppointmentsDone != 3 || s.PrescriptionsDispensed != 2 || s.PetsAdded != 3 || len(s.Events) != 5 {
		t.Fatalf("unexpected month summary %+v", s)
	}
}

func TestService_Summary_SubWindowsAdd(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	whole, err := svc.Summary(ctx, SummaryInput{Period: "custom", From: "2026-10-01", To: "2026-10-14"})
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	// cualquier punto de corte debe conservar los totales
	for cut := 1; cut < 14; cut++ {
		left, err := svc.Summary(ctx, SummaryInput{Period: "custom", From: "2026-10-01", To: day(cut).String()})
		if err != nil {
			t.Fatalf("left window returned error: %v", err)
		}
		right, err := svc.Summary(ctx, SummaryInput{Period: "custom", From: day(cut + 1).String(), To: "2026-10-14"})
		if err != nil {
			t.Fatalf("right window returned error: %v", err)
		}

		if left.AppointmentsDone+right.AppointmentsDone != whole.AppointmentsDone ||
			left.PrescriptionsDispensed+right.PrescriptionsDispensed != whole.PrescriptionsDispensed ||
			left.PetsAdded+right.PetsAdded != whole.PetsAdded ||
			len(left.Events)+len(right.Events) != len(whole.Events) {
			t.Fatalf("cut at %d: %+v + %+v != %+v", cut, left, right, whole)
		}
	}
}

func TestService_Summary_PropagatesSourceErrors(t *testing.T) {
	boom := errors.New("db down")
	appts, rxs, _ := fixture()
	svc := NewService(appts, rxs, eventSource{err: boom}, nil)

	if _, err := svc.Summary(context.Background(), SummaryInput{Period: "day"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestService_Summary_ObservesDuration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	svc := newTestService(t, m)

	_, _ = svc.Summary(context.Background(), SummaryInput{Period: "week"})
	_, _ = svc.Summary(context.Background(), SummaryInput{Period: "bogus"})

	if n := testutil.CollectAndCount(m.ReportDuration); n != 1 {
		t.Fatalf("expected one observed period series, got %d", n)
	}
}

func TestExportXLSX(t *testing.T) {
	svc := newTestService(t, nil)
	s, err := svc.Summary(context.Background(), SummaryInput{Period: "month"})
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportXLSX(&buf, s); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a workbook: %v", err)
	}
	defer f.Close()

	if v, _ := f.GetCellValue(SummarySheet, "B1"); v != "month" {
		t.Fatalf("unexpected period cell %q", v)
	}
	if v, _ := f.GetCellValue(SummarySheet, "B2"); v != "2026-10-01" {
		t.Fatalf("unexpected from cell %q", v)
	}
	if v, _ := f.GetCellValue(SummarySheet, "B4"); v != "3" {
		t.Fatalf("unexpected appointments cell %q", v)
	}

	rows, err := f.GetRows(EventsSheet)
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(rows) != 1+len(s.Events) {
		t.Fatalf("expected header plus %d events, got %d rows", len(s.Events), len(rows))
	}
	if rows[1][1] != string(oplog.TypePetCreated) {
		t.Fatalf("unexpected first event row %v", rows[1])
	}

	if got := ExportFilename(s); got != "pawcare-month-2026-10-01_2026-10-14.xlsx" {
		t.Fatalf("unexpected filename %q", got)
	}
}
