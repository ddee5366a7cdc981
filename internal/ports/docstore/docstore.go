package docstore

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrUnavailable = errors.New("document store unavailable")
	ErrInvalidPath = errors.New("invalid document path")
	ErrExists      = errors.New("document already exists")
)

// Document es un documento leído del store.
// Path es relativo a la raíz del store: "artifacts/{app}/users/{uid}/animals/{id}".
type Document struct {
	ID   string
	Path string
	Data map[string]any
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

// Query describe las consultas que soporta el store hospedado:
// igualdad sobre un campo, orden por un campo y límite.
type Query struct {
	Field string // opcional; si está vacío no filtra
	Value any

	OrderBy   string // opcional; vacío = orden por id
	Direction Direction

	Limit int // <= 0 = sin límite
}

// Store es el colaborador externo de documentos jerárquicos.
type Store interface {
	Get(ctx context.Context, path string) (Document, error)
	Set(ctx context.Context, path string, data map[string]any) error
	// Create escribe solo si el documento no existe; si existe devuelve ErrExists.
	Create(ctx context.Context, path string, data map[string]any) error
	Add(ctx context.Context, collection string, data map[string]any) (Document, error)
	Update(ctx context.Context, path string, fields map[string]any) error

	// CompareAndSet escribe next en field solo si el valor actual es expected.
	// Un campo ausente cuenta como 0. Devuelve false si el valor no coincidía.
	CompareAndSet(ctx context.Context, path, field string, expected, next int64) (bool, error)

	List(ctx context.Context, collection string, q Query) ([]Document, error)
	Watch(ctx context.Context, collection string, q Query) (Subscription, error)

	Close() error
}

// Subscription entrega snapshots completos de una colección.
// El canal se cierra cuando se llama Close o se cancela el contexto de Watch.
type Subscription interface {
	Snapshots() <-chan []Document
	// Err devuelve el error que terminó la suscripción, si hubo.
	Err() error
	// Close es idempotente.
	Close()
}

// Join arma un path con segmentos, ignorando vacíos y barras sobrantes.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(strings.TrimSpace(s), "/")
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "/")
}

// Split separa un path de documento en (colección padre, id).
// Un path de documento tiene cantidad par de segmentos.
func Split(path string) (collection, id string, err error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	segs := strings.Split(path, "/")
	if path == "" || len(segs)%2 != 0 {
		return "", "", ErrInvalidPath
	}
	for _, s := range segs {
		if s == "" {
			return "", "", ErrInvalidPath
		}
	}
	return strings.Join(segs[:len(segs)-1], "/"), segs[len(segs)-1], nil
}

// ValidCollection indica si el path apunta a una colección (cantidad impar de segmentos).
func ValidCollection(path string) bool {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return false
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if s == "" {
			return false
		}
	}
	return len(segs)%2 == 1
}
