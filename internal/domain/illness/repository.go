package illness

import (
	"context"

	"petcare/internal/domain/pets"
)

type Repository interface {
	// Create agrega el registro y devuelve la copia con el ID del store.
	Create(ctx context.Context, r Record) (Record, error)
	Get(ctx context.Context, ownerID, petID, recordID string) (Record, error)
	// List devuelve los registros por Timestamp descendente.
	List(ctx context.Context, ownerID, petID string) ([]Record, error)
	Watch(ctx context.Context, ownerID, petID string) (Subscription, error)
}

// Subscription entrega el historial completo (Timestamp desc) en cada cambio.
type Subscription interface {
	Snapshots() <-chan []Record
	Err() error
	Close()
}

// PetReader resuelve la mascota dueña de los registros.
type PetReader interface {
	GetPet(ctx context.Context, ownerID, petID string) (pets.Pet, error)
}
