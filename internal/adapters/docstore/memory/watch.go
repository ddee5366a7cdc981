package memory

import (
	"context"
	"sync"

	"petcare/internal/ports/docstore"
)

type subscription struct {
	store      *Store
	collection string
	query      docstore.Query

	mu     sync.Mutex
	ch     chan []docstore.Document
	closed bool

	done chan struct{}
	once sync.Once
}

// Watch entrega el snapshot actual de inmediato y uno nuevo en cada escritura
// sobre la colección. Si el consumidor se atrasa, solo se conserva el último.
func (s *Store) Watch(ctx context.Context, collection string, q docstore.Query) (docstore.Subscription, error) {
	if !docstore.ValidCollection(collection) {
		return nil, docstore.ErrInvalidPath
	}
	coll := docstore.Join(collection)

	sub := &subscription{
		store:      s,
		collection: coll,
		query:      q,
		ch:         make(chan []docstore.Document, 1),
		done:       make(chan struct{}),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.subs[sub] = struct{}{}
	sub.offer(s.snapshotLocked(coll, q))
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sub.Close()
		case <-sub.done:
		}
	}()

	return sub, nil
}

func (s *Store) notifyLocked(coll string) {
	for sub := range s.subs {
		if sub.collection != coll {
			continue
		}
		sub.offer(s.snapshotLocked(coll, sub.query))
	}
}

func (s *Store) unsubscribe(sub *subscription) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

func (sub *subscription) offer(snap []docstore.Document) {
	sub.mu.Lock()
	defer sub.mu.Unlock()

	if sub.closed {
		return
	}
	// latest-wins: descartamos el snapshot pendiente
	select {
	case <-sub.ch:
	default:
	}
	sub.ch <- snap
}

func (sub *subscription) Snapshots() <-chan []docstore.Document { return sub.ch }

func (sub *subscription) Err() error { return nil }

func (sub *subscription) Close() {
	sub.once.Do(func() {
		sub.store.unsubscribe(sub)

		sub.mu.Lock()
		sub.closed = true
		close(sub.ch)
		sub.mu.Unlock()

		close(sub.done)
	})
}
