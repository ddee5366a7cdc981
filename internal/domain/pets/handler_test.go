package pets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petcare/internal/middleware"
	"petcare/internal/ports/auth"
	"petcare/internal/platform/sse"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// failingWatchRepo entrega un snapshot y corta la suscripción con error.
type failingWatchRepo struct {
	*testRepo
}

func (r failingWatchRepo) Watch(ctx context.Context, ownerID string) (Subscription, error) {
	ch := make(chan []Pet, 1)
	ch <- []Pet{{ID: "pet-1", OwnerID: ownerID, Name: "Milo"}}
	close(ch)
	return &stoppedSub{ch: ch}, nil
}

type stoppedSub struct {
	ch chan []Pet
}

func (s *stoppedSub) Snapshots() <-chan []Pet { return s.ch }
func (s *stoppedSub) Err() error              { return ErrStoreUnavailable }
func (s *stoppedSub) Close()                  {}

func TestStreamPets_StoreErrorEndsWithErrorEvent(t *testing.T) {
	svc := NewService(failingWatchRepo{newTestRepo()}, newTestCounter())
	r := chi.NewRouter()
	RegisterRoutes(r, svc)

	req := httptest.NewRequest(http.MethodGet, "/pets/stream", nil)
	req = req.WithContext(middleware.WithClaims(req.Context(), auth.Claims{UserID: "owner-1"}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "event: snapshot")
	assert.Contains(t, body, `"name":"Milo"`)
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, sse.StoppedMessage)
	assert.False(t, strings.Contains(body, "event: end"))
}
