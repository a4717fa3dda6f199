package memory

import (
	"context"
	"sort"
	"sync"

	"cloud.google.com/go/civil"

	"pawcare/internal/domain/oplog"
)

// oplogRepo es append-only: no expone update ni delete.
type oplogRepo struct {
	mu    sync.RWMutex
	items []oplog.Entry
	seq   int64
}

func NewOplogRepo() oplog.Repository {
	return &oplogRepo{}
}

func (r *oplogRepo) Create(ctx context.Context, e oplog.Entry) (oplog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	e.Seq = r.seq
	r.items = append(r.items, e)
	return e, nil
}

func (r *oplogRepo) ListBetween(ctx context.Context, start, end civil.Date) ([]oplog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]oplog.Entry, 0)
	for _, e := range r.items {
		d := civil.DateOf(e.Timestamp)
		if d.Before(start) || d.After(end) {
			continue
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}
