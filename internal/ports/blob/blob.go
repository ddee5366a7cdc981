package blob

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("blob not found")
	ErrExists   = errors.New("blob already exists")
)

// Info describe un objeto guardado.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Store guarda objetos por clave. Put es create-only: una clave existente
// devuelve ErrExists y no se sobrescribe.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (Info, error)
	Get(ctx context.Context, key string) (Info, []byte, error)
	Head(ctx context.Context, key string) (Info, error)
}
