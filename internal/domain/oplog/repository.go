package oplog

import (
	"context"

	"cloud.google.com/go/civil"
)

// Repository es append-only: no hay Update ni Delete.
type Repository interface {
	// Create persiste la entrada y asigna Seq.
	Create(ctx context.Context, e Entry) (Entry, error)

	// ListBetween devuelve las entradas cuyo día (fecha del timestamp) cae en
	// [start, end], ordenadas por timestamp y luego por Seq.
	ListBetween(ctx context.Context, start, end civil.Date) ([]Entry, error)
}
