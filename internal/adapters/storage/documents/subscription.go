package documents

import (
	"sync"

	"petcare/internal/ports/docstore"
)

// subscription convierte los snapshots de documentos del store en valores
// del dominio. Entrega siempre el último snapshot: si el consumidor está
// atrasado se descarta el pendiente.
type subscription[T any] struct {
	inner   docstore.Subscription
	convert func([]docstore.Document) []T
	mapErr  func(error) error

	out  chan []T
	done chan struct{}
	once sync.Once
	stop chan struct{}
}

func newSubscription[T any](inner docstore.Subscription, convert func([]docstore.Document) []T, mapErr func(error) error) *subscription[T] {
	s := &subscription[T]{
		inner:   inner,
		convert: convert,
		mapErr:  mapErr,
		out:     make(chan []T, 1),
		done:    make(chan struct{}),
		stop:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *subscription[T]) run() {
	defer close(s.done)
	defer close(s.out)

	in := s.inner.Snapshots()
	for {
		select {
		case <-s.stop:
			return
		case docs, ok := <-in:
			if !ok {
				return
			}
			items := s.convert(docs)
			select {
			case <-s.out:
			default:
			}
			select {
			case s.out <- items:
			case <-s.stop:
				return
			}
		}
	}
}

func (s *subscription[T]) Snapshots() <-chan []T { return s.out }

func (s *subscription[T]) Err() error {
	if err := s.inner.Err(); err != nil {
		return s.mapErr(err)
	}
	return nil
}

func (s *subscription[T]) Close() {
	s.once.Do(func() {
		close(s.stop)
		s.inner.Close()
	})
	<-s.done
}
