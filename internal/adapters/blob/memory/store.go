package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"petcare/internal/ports/blob"
)

type object struct {
	info blob.Info
	data []byte
}

// Store guarda los blobs en memoria. Útil en dev y tests.
type Store struct {
	mu      sync.RWMutex
	objects map[string]object
	now     func() time.Time
}

var _ blob.Store = (*Store)(nil)

func New() *Store {
	return &Store{objects: map[string]object{}, now: time.Now}
}

func (s *Store) Put(ctx context.Context, key, contentType string, data []byte) (blob.Info, error) {
	if err := ctx.Err(); err != nil {
		return blob.Info{}, err
	}
	key = strings.TrimSpace(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; ok {
		return blob.Info{}, blob.ErrExists
	}
	info := blob.Info{
		Key:          key,
		Size:         int64(len(data)),
		ContentType:  contentType,
		LastModified: s.now().UTC(),
	}
	s.objects[key] = object{info: info, data: append([]byte(nil), data...)}
	return info, nil
}

func (s *Store) Get(ctx context.Context, key string) (blob.Info, []byte, error) {
	if err := ctx.Err(); err != nil {
		return blob.Info{}, nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[strings.TrimSpace(key)]
	if !ok {
		return blob.Info{}, nil, blob.ErrNotFound
	}
	return o.info, append([]byte(nil), o.data...), nil
}

func (s *Store) Head(ctx context.Context, key string) (blob.Info, error) {
	info, _, err := s.Get(ctx, key)
	return info, err
}
