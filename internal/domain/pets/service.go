package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcare/internal/domain/hn"
	"petcare/internal/platform/logger"
	"petcare/internal/platform/metrics"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("pet not found")
	ErrOwnerNotRegistered = errors.New("owner profile not found")
	ErrStoreUnavailable   = errors.New("pet store unavailable")
	ErrHNContention       = errors.New("hn counter contention")
)

const DefaultMaxHNAttempts = 5

type Service struct {
	repo    Repository
	counter HNCounter

	maxAttempts int
	log         logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }
func WithMaxHNAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

func NewService(repo Repository, counter HNCounter, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		counter:     counter,
		maxAttempts: DefaultMaxHNAttempts,
		log:         logger.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	Sex     string
}

// AddPet reserva el siguiente HN del owner con escritura condicional y luego
// escribe la mascota. Si la escritura de la mascota falla el número queda
// consumido (hueco en la secuencia), nunca duplicado.
func (s *Service) AddPet(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Species) == "" {
		return Pet{}, fmt.Errorf("%w: species is required", ErrInvalidInput)
	}
	if _, err := hn.OwnerTag(ownerID); err != nil {
		return Pet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	code, counter, err := s.reserveHN(ctx, ownerID)
	if err != nil {
		return Pet{}, err
	}

	p := Pet{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(in.Name),
		Species:   Species(strings.TrimSpace(in.Species)),
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       Sex(strings.TrimSpace(in.Sex)),
		HN:        code,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.metrics.HNGap()
		s.log.Warn("pet write failed after hn reservation; counter burned", map[string]any{
			"owner_id": ownerID,
			"hn":       code,
			"counter":  counter,
			"err":      err,
		})
		return Pet{}, err
	}
	return created, nil
}

func (s *Service) reserveHN(ctx context.Context, ownerID string) (string, int64, error) {
	for attempt := 1; ; attempt++ {
		last, err := s.counter.LastHN(ctx, ownerID)
		if err != nil {
			return "", 0, err
		}

		code, next, err := hn.Allocate(ownerID, last)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		ok, err := s.counter.AdvanceHN(ctx, ownerID, last, next)
		if err != nil {
			return "", 0, err
		}
		if ok {
			s.metrics.HNAllocated()
			return code, next, nil
		}

		s.metrics.HNConflict()
		s.log.Debug("hn counter moved; retrying", map[string]any{
			"owner_id": ownerID,
			"attempt":  attempt,
		})
		if attempt >= s.maxAttempts {
			return "", 0, ErrHNContention
		}
	}
}

func (s *Service) GetPet(ctx context.Context, ownerID, petID string) (Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	petID = strings.TrimSpace(petID)
	if ownerID == "" || petID == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, ownerID, petID)
}

func (s *Service) ListPets(ctx context.Context, ownerID string) ([]Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// WatchPets abre una suscripción a la lista de mascotas del owner.
// Termina con Close o al cancelar ctx.
func (s *Service) WatchPets(ctx context.Context, ownerID string) (Subscription, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Watch(ctx, ownerID)
}
