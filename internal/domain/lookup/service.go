// Package lookup busca una mascota por HN recorriendo todos los owners.
// Es una operación privilegiada (solo veterinarios) y cuesta un round trip
// por owner.
package lookup

import (
	"context"
	"errors"
	"fmt"

	"petcare/internal/domain/hn"
	"petcare/internal/domain/pets"
	"petcare/internal/platform/logger"
	"petcare/internal/platform/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid hn")
	ErrNotFound     = errors.New("no pet with that hn")
	ErrLookup       = errors.New("lookup failed")
)

// OwnerLister enumera los owners en el orden del store.
type OwnerLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// PetFinder busca el HN dentro de las mascotas de un owner.
// Devuelve pets.ErrNotFound si ese owner no lo tiene.
type PetFinder interface {
	FindByHN(ctx context.Context, ownerID, code string) (pets.Pet, error)
}

type Service struct {
	owners  OwnerLister
	pets    PetFinder
	log     logger.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func NewService(owners OwnerLister, finder PetFinder, opts ...Option) *Service {
	s := &Service{owners: owners, pets: finder, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindByHN devuelve la primera mascota con ese HN en orden de owners.
// Cualquier error del store corta el recorrido con ErrLookup.
func (s *Service) FindByHN(ctx context.Context, code string) (pets.Pet, error) {
	code = hn.Normalize(code)
	if code == "" {
		return pets.Pet{}, ErrInvalidInput
	}

	ownerIDs, err := s.owners.ListIDs(ctx)
	if err != nil {
		s.metrics.Lookup(0, "error")
		return pets.Pet{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	scanned := 0
	for _, ownerID := range ownerIDs {
		if err := ctx.Err(); err != nil {
			s.metrics.Lookup(scanned, "error")
			return pets.Pet{}, fmt.Errorf("%w: %v", ErrLookup, err)
		}
		scanned++

		p, err := s.pets.FindByHN(ctx, ownerID, code)
		if errors.Is(err, pets.ErrNotFound) {
			continue
		}
		if err != nil {
			s.metrics.Lookup(scanned, "error")
			s.log.Warn("hn lookup aborted", map[string]any{
				"hn":       code,
				"owner_id": ownerID,
				"scanned":  scanned,
				"err":      err,
			})
			return pets.Pet{}, fmt.Errorf("%w: %v", ErrLookup, err)
		}

		if p.OwnerID == "" {
			p.OwnerID = ownerID
		}
		s.metrics.Lookup(scanned, "found")
		return p, nil
	}

	s.metrics.Lookup(scanned, "not_found")
	return pets.Pet{}, ErrNotFound
}
