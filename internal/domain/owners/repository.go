package owners

import "context"

type Repository interface {
	// Create escribe el perfil con el contador en 0. Falla con ErrAlreadyRegistered si existe.
	Create(ctx context.Context, p Profile) error
	Get(ctx context.Context, ownerID string) (Profile, error)
	// UpdateDetails cambia email y rol sin tocar el contador.
	UpdateDetails(ctx context.Context, ownerID, email string, role Role) error
	// ListIDs devuelve los owners registrados en orden de id.
	ListIDs(ctx context.Context) ([]string, error)
}
