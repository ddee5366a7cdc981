package memory

import (
	"context"
	"errors"
	"sync"

	"petcare/internal/ports/docstore"

	"github.com/google/uuid"
)

var ErrClosed = errors.New("memory docstore closed")

type entry struct {
	collection string
	id         string
	data       map[string]any
}

// Store implementa docstore.Store en memoria (modo dev y tests).
type Store struct {
	mu     sync.RWMutex
	docs   map[string]entry
	subs   map[*subscription]struct{}
	closed bool

	newID func() string
}

func New() *Store {
	return &Store{
		docs:  make(map[string]entry),
		subs:  make(map[*subscription]struct{}),
		newID: uuid.NewString,
	}
}

func (s *Store) Get(ctx context.Context, path string) (docstore.Document, error) {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return docstore.Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return docstore.Document{}, ErrClosed
	}
	e, ok := s.docs[docstore.Join(coll, id)]
	if !ok {
		return docstore.Document{}, docstore.ErrNotFound
	}
	return toDocument(e), nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.docs[docstore.Join(coll, id)] = entry{collection: coll, id: id, data: docstore.Clone(data)}
	s.notifyLocked(coll)
	return nil
}

func (s *Store) Create(ctx context.Context, path string, data map[string]any) error {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return err
	}
	key := docstore.Join(coll, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if _, ok := s.docs[key]; ok {
		return docstore.ErrExists
	}
	s.docs[key] = entry{collection: coll, id: id, data: docstore.Clone(data)}
	s.notifyLocked(coll)
	return nil
}

func (s *Store) Add(ctx context.Context, collection string, data map[string]any) (docstore.Document, error) {
	if !docstore.ValidCollection(collection) {
		return docstore.Document{}, docstore.ErrInvalidPath
	}
	coll := docstore.Join(collection)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return docstore.Document{}, ErrClosed
	}
	id := s.newID()
	e := entry{collection: coll, id: id, data: docstore.Clone(data)}
	s.docs[docstore.Join(coll, id)] = e
	s.notifyLocked(coll)
	return toDocument(e), nil
}

func (s *Store) Update(ctx context.Context, path string, fields map[string]any) error {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return err
	}
	key := docstore.Join(coll, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	e, ok := s.docs[key]
	if !ok {
		return docstore.ErrNotFound
	}
	data := docstore.Clone(e.data)
	for k, v := range fields {
		data[k] = v
	}
	e.data = data
	s.docs[key] = e
	s.notifyLocked(coll)
	return nil
}

func (s *Store) CompareAndSet(ctx context.Context, path, field string, expected, next int64) (bool, error) {
	coll, id, err := docstore.Split(path)
	if err != nil {
		return false, err
	}
	key := docstore.Join(coll, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}
	e, ok := s.docs[key]
	if !ok {
		return false, docstore.ErrNotFound
	}
	current, _ := docstore.Int64(e.data[field])
	if current != expected {
		return false, nil
	}
	data := docstore.Clone(e.data)
	data[field] = next
	e.data = data
	s.docs[key] = e
	s.notifyLocked(coll)
	return true, nil
}

func (s *Store) List(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	if !docstore.ValidCollection(collection) {
		return nil, docstore.ErrInvalidPath
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	return s.snapshotLocked(docstore.Join(collection), q), nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	subs := make([]*subscription, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subs = map[*subscription]struct{}{}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	return nil
}

func (s *Store) snapshotLocked(coll string, q docstore.Query) []docstore.Document {
	docs := make([]docstore.Document, 0)
	for _, e := range s.docs {
		if e.collection != coll {
			continue
		}
		docs = append(docs, toDocument(e))
	}
	return docstore.Apply(docs, q)
}

func toDocument(e entry) docstore.Document {
	return docstore.Document{
		ID:   e.id,
		Path: docstore.Join(e.collection, e.id),
		Data: docstore.Clone(e.data),
	}
}
