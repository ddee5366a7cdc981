package illness

import (
	"context"
	"sync"
	"time"

	"petcare/internal/domain/pets"
	"petcare/internal/platform/logger"
	"petcare/internal/platform/metrics"

	"github.com/google/uuid"
)

const DefaultSessionTTL = 2 * time.Hour

// SessionStore mantiene las sesiones en memoria. Una sesión vence cuando pasa
// ttl desde su último cambio; Sweep las borra.
type SessionStore struct {
	mu    sync.Mutex
	items map[string]*Session

	ttl     time.Duration
	now     func() time.Time
	log     logger.Logger
	metrics *metrics.Metrics
}

type SessionOption func(*SessionStore)

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) { s.now = now }
}
func WithSessionLogger(l logger.Logger) SessionOption {
	return func(s *SessionStore) { s.log = l }
}
func WithSessionMetrics(m *metrics.Metrics) SessionOption {
	return func(s *SessionStore) { s.metrics = m }
}

func NewSessionStore(ttl time.Duration, opts ...SessionOption) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	s := &SessionStore{
		items: map[string]*Session{},
		ttl:   ttl,
		now:   time.Now,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) Create(callerID string, pet pets.Pet) Session {
	now := s.now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		CallerID:  callerID,
		Pet:       pet,
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.items[sess.ID] = sess
	n := len(s.items)
	s.mu.Unlock()

	s.metrics.SessionsActive(n)
	return *sess
}

// Get devuelve la sesión si existe, no venció y pertenece a callerID.
func (s *SessionStore) Get(id, callerID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id, callerID)
	if err != nil {
		return Session{}, err
	}
	return *sess, nil
}

// Update aplica fn bajo el lock. Si fn falla la sesión no cambia.
func (s *SessionStore) Update(id, callerID string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(id, callerID)
	if err != nil {
		return Session{}, err
	}

	draft := *sess
	if err := fn(&draft); err != nil {
		return *sess, err
	}
	draft.UpdatedAt = s.now().UTC()
	*sess = draft
	return draft, nil
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	n := len(s.items)
	s.mu.Unlock()
	s.metrics.SessionsActive(n)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Sweep borra las sesiones vencidas y devuelve cuántas borró.
func (s *SessionStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	removed := 0
	for id, sess := range s.items {
		if s.expired(sess, now) {
			delete(s.items, id)
			removed++
		}
	}
	n := len(s.items)
	s.mu.Unlock()

	for i := 0; i < removed; i++ {
		s.metrics.SessionExpired()
	}
	s.metrics.SessionsActive(n)
	if removed > 0 {
		s.log.Debug("illness sessions expired", map[string]any{"removed": removed, "active": n})
	}
	return removed
}

// Run barre cada interval hasta que ctx se cancele.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.Sweep()
		}
	}
}

func (s *SessionStore) lookup(id, callerID string) (*Session, error) {
	sess, ok := s.items[id]
	if !ok || sess.CallerID != callerID || s.expired(sess, s.now()) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *SessionStore) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.UpdatedAt) > s.ttl
}
