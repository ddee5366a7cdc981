// Package sse escribe Server-Sent Events para las suscripciones del store.
package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrStreamingUnsupported = errors.New("sse: streaming unsupported")

// StoppedMessage va en el evento "error" cuando la suscripción termina con error.
const StoppedMessage = "การอัปเดตข้อมูลหยุดทำงาน / Live updates stopped, please reload."

// Source es una suscripción del store: snapshots hasta que el canal se cierra,
// y Err con el motivo si terminó por un error.
type Source[T any] interface {
	Snapshots() <-chan T
	Err() error
}

// Stream envía cada snapshot de src como evento "snapshot" hasta que el canal
// se cierre o el cliente se desconecte. render convierte al payload JSON.
// Al cerrarse el canal manda "end", o "error" si src.Err() no es nil; en ese
// caso devuelve ese error.
func Stream[T any](w http.ResponseWriter, r *http.Request, src Source[T], render func(T) any) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return ErrStreamingUnsupported
	}

	// el WriteTimeout del server no aplica a streams largos
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := src.Snapshots()
	for {
		select {
		case <-r.Context().Done():
			return nil
		case v, ok := <-ch:
			if !ok {
				return finish(w, flusher, src.Err())
			}
			b, err := json.Marshal(render(v))
			if err != nil {
				return fmt.Errorf("sse: marshal: %w", err)
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", b); err != nil {
				return err
			}
			flusher.Flush()
		}
	}
}

func finish(w http.ResponseWriter, flusher http.Flusher, cause error) error {
	if cause == nil {
		_, _ = fmt.Fprint(w, "event: end\ndata: {}\n\n")
		flusher.Flush()
		return nil
	}
	b, _ := json.Marshal(map[string]string{"error": StoppedMessage})
	_, _ = fmt.Fprintf(w, "event: error\ndata: %s\n\n", b)
	flusher.Flush()
	return cause
}
