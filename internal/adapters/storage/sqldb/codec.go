package sqldb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"pawcare/internal/domain/pets"
)

func toNanos(t time.Time) int64 {
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n)
}

// la fecha cero se guarda como '' (cita sin fecha cargada)
func toDate(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func fromDate(s string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}
	return civil.ParseDate(s)
}

func toNullDate(d *civil.Date) sql.NullString {
	if d == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func fromNullDate(s sql.NullString) (*civil.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

type procedureRow struct {
	Date      string `json:"date"`
	Procedure string `json:"procedure"`
	Notes     string `json:"notes"`
	Vet       string `json:"vet"`
}

func encodeProcedures(procs []pets.Procedure) (string, error) {
	rows := make([]procedureRow, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, procedureRow{Date: toDate(p.Date), Procedure: p.Name, Notes: p.Notes, Vet: p.Vet})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode procedures: %w", err)
	}
	return string(b), nil
}

func decodeProcedures(raw string) ([]pets.Procedure, error) {
	out := make([]pets.Procedure, 0)
	if raw == "" {
		return out, nil
	}

	var rows []procedureRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("decode procedures: %w", err)
	}
	for _, r := range rows {
		d, err := fromDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("decode procedure date: %w", err)
		}
		out = append(out, pets.Procedure{Date: d, Name: r.Procedure, Notes: r.Notes, Vet: r.Vet})
	}
	return out, nil
}

// scanner cubre *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
