package sqldoc

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"petcare/internal/ports/docstore"
)

// Watch no tiene notificaciones nativas en SQL: consulta cada pollInterval
// y emite solo cuando el contenido cambió.
func (s *Store) Watch(ctx context.Context, collection string, q docstore.Query) (docstore.Subscription, error) {
	if !docstore.ValidCollection(collection) {
		return nil, docstore.ErrInvalidPath
	}

	first, err := s.List(ctx, collection, q)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &subscription{
		ch:     make(chan []docstore.Document, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	sub.ch <- first

	go sub.poll(ctx, s, collection, q, fingerprint(first))
	return sub, nil
}

type subscription struct {
	ch     chan []docstore.Document
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

func (sub *subscription) poll(ctx context.Context, s *Store, collection string, q docstore.Query, last []byte) {
	defer close(sub.done)
	defer close(sub.ch)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		docs, err := s.List(ctx, collection, q)
		if err != nil {
			if ctx.Err() == nil {
				sub.mu.Lock()
				sub.err = err
				sub.mu.Unlock()
			}
			return
		}

		fp := fingerprint(docs)
		if bytes.Equal(fp, last) {
			continue
		}
		last = fp

		// latest-wins
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

func fingerprint(docs []docstore.Document) []byte {
	type entry struct {
		ID   string         `json:"id"`
		Data map[string]any `json:"data"`
	}
	entries := make([]entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, entry{ID: d.ID, Data: d.Data})
	}
	b, _ := json.Marshal(entries)
	return b
}
