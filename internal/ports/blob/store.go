// Package blob define el área de archivos subidos (fotos de mascotas).
// Los adapters viven en internal/adapters/blob.
package blob

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifica la implementación concreta.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverS3         Driver = "s3"
)

var (
	ErrExists   = errors.New("blob: already exists")
	ErrNotFound = errors.New("blob: not found")
)

type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}

// Info describe un blob guardado. URL es la referencia estable que se guarda en la ficha.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
	URL          string
}

type Store interface {
	// Put es create-only: falla con ErrExists si la key ya existe.
	Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) (bool, error)
	Driver() Driver
}
