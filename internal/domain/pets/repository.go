package pets

import "context"

type Repository interface {
	// Create persiste la mascota y devuelve la copia con el ID asignado por el store.
	Create(ctx context.Context, p Pet) (Pet, error)
	Get(ctx context.Context, ownerID, petID string) (Pet, error)
	// ListByOwner devuelve las mascotas ordenadas por CreatedAt ascendente.
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	Watch(ctx context.Context, ownerID string) (Subscription, error)
	FindByHN(ctx context.Context, ownerID, hn string) (Pet, error)
}

// Subscription entrega la lista completa de mascotas en cada cambio.
// El primer snapshot llega de inmediato. Close es idempotente.
type Subscription interface {
	Snapshots() <-chan []Pet
	Err() error
	Close()
}

// HNCounter es el contador por owner (lastHNNumber del perfil).
type HNCounter interface {
	LastHN(ctx context.Context, ownerID string) (int64, error)
	// AdvanceHN escribe next solo si el valor actual sigue siendo expected.
	AdvanceHN(ctx context.Context, ownerID string, expected, next int64) (bool, error)
}
