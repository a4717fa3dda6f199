// Package oplogtest ofrece una bitácora en memoria para los tests de los otros dominios.
package oplogtest

import (
	"context"
	"errors"
	"sort"
	"sync"

	"cloud.google.com/go/civil"

	"pawcare/internal/domain/oplog"
)

var ErrAppendFailed = errors.New("oplogtest: append failed")

type Repo struct {
	mu    sync.Mutex
	items []oplog.Entry

	// Fail hace que Create devuelva ErrAppendFailed.
	Fail bool
}

func New() (*oplog.Service, *Repo) {
	r := &Repo{}
	return oplog.NewService(r, nil), r
}

func (r *Repo) Create(ctx context.Context, e oplog.Entry) (oplog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Fail {
		return oplog.Entry{}, ErrAppendFailed
	}
	e.Seq = int64(len(r.items) + 1)
	r.items = append(r.items, e)
	return e, nil
}

func (r *Repo) ListBetween(ctx context.Context, start, end civil.Date) ([]oplog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]oplog.Entry, 0)
	for _, e := range r.items {
		d := civil.DateOf(e.Timestamp)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// Entries devuelve una copia en orden de inserción.
func (r *Repo) Entries() []oplog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]oplog.Entry(nil), r.items...)
}

func (r *Repo) Types() []oplog.EntryType {
	entries := r.Entries()
	out := make([]oplog.EntryType, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Type)
	}
	return out
}
