package sqldb

import (
	"context"

	"cloud.google.com/go/civil"

	"pawcare/internal/domain/oplog"
)

// OplogRepo solo inserta y lee; op_log no admite UPDATE ni DELETE desde la app.
type OplogRepo struct {
	db *DB
}

func NewOplogRepo(db *DB) *OplogRepo {
	return &OplogRepo{db: db}
}

func (r *OplogRepo) Create(ctx context.Context, e oplog.Entry) (oplog.Entry, error) {
	// day se deriva al insertar para filtrar por fecha local sin funciones del motor
	day := civil.DateOf(e.Timestamp).String()

	row := r.db.queryRow(ctx, `
		INSERT INTO op_log (id, ts_unix_nano, day, type, message, pet_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING seq
	`,
		e.ID,
		toNanos(e.Timestamp),
		day,
		string(e.Type),
		e.Message,
		e.PetID,
	)
	if err := row.Scan(&e.Seq); err != nil {
		return oplog.Entry{}, err
	}
	return e, nil
}

func (r *OplogRepo) ListBetween(ctx context.Context, start, end civil.Date) ([]oplog.Entry, error) {
	rows, err := r.db.query(ctx, `
		SELECT seq, id, ts_unix_nano, type, message, pet_id
		FROM op_log
		WHERE day >= $1 AND day <= $2
		ORDER BY ts_unix_nano ASC, seq ASC
	`, start.String(), end.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]oplog.Entry, 0)
	for rows.Next() {
		var (
			e   oplog.Entry
			ts  int64
			typ string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &ts, &typ, &e.Message, &e.PetID); err != nil {
			return nil, err
		}
		e.Timestamp = fromNanos(ts)
		e.Type = oplog.EntryType(typ)
		out = append(out, e)
	}
	return out, rows.Err()
}
