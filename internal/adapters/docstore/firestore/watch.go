package firestore

import (
	"context"
	"errors"
	"sync"

	"petcare/internal/ports/docstore"

	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Watch usa los listeners nativos (QuerySnapshotIterator).
// El primer Next devuelve el estado actual de la colección.
func (s *Store) Watch(ctx context.Context, collection string, q docstore.Query) (docstore.Subscription, error) {
	coll, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	it := buildQuery(coll, q).Snapshots(ctx)

	sub := &subscription{
		ch:     make(chan []docstore.Document, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.ch)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if err != nil {
				if !errors.Is(err, iterator.Done) && ctx.Err() == nil && status.Code(err) != codes.Canceled {
					sub.setErr(mapErr(err))
				}
				return
			}
			snaps, err := qs.Documents.GetAll()
			if err != nil {
				if ctx.Err() == nil {
					sub.setErr(mapErr(err))
				}
				return
			}

			docs := toDocuments(snaps, q)
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- docs:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}

type subscription struct {
	ch     chan []docstore.Document
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

func (sub *subscription) setErr(err error) {
	sub.mu.Lock()
	sub.err = err
	sub.mu.Unlock()
}

func (sub *subscription) Snapshots() <-chan []docstore.Document { return sub.ch }

func (sub *subscription) Err() error {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.err
}

func (sub *subscription) Close() {
	sub.cancel()
	<-sub.done
}
