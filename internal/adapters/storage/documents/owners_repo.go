package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	"petcare/internal/domain/owners"
	"petcare/internal/domain/pets"
	"petcare/internal/ports/docstore"
)

const fieldLastHN = "lastHNNumber"

// OwnersRepo guarda los perfiles. También es el contador de HN de pets.
type OwnersRepo struct {
	store docstore.Store
	paths Paths
	now   func() time.Time
}

func NewOwnersRepo(store docstore.Store, paths Paths) *OwnersRepo {
	return &OwnersRepo{store: store, paths: paths, now: time.Now}
}

var (
	_ owners.Repository = (*OwnersRepo)(nil)
	_ pets.HNCounter    = (*OwnersRepo)(nil)
)

// Create escribe el perfil con el contador en 0 y el marcador users/{uid}
// (para poder enumerar owners). El perfil se crea sin pisar: si ya existe
// devuelve ErrAlreadyRegistered y el contador queda intacto.
func (r *OwnersRepo) Create(ctx context.Context, p owners.Profile) error {
	if strings.TrimSpace(p.ID) == "" {
		return owners.ErrInvalidInput
	}

	created := p.CreatedAt
	if created.IsZero() {
		created = r.now().UTC()
	}
	err := r.store.Create(ctx, r.paths.Profile(p.ID), map[string]any{
		"email":     p.Email,
		"role":      string(p.Role),
		fieldLastHN: int64(0),
		"createdAt": created,
	})
	if errors.Is(err, docstore.ErrExists) {
		return owners.ErrAlreadyRegistered
	}
	if err != nil {
		return mapErr(err, nil, owners.ErrStoreUnavailable)
	}

	err = r.store.Set(ctx, r.paths.User(p.ID), map[string]any{
		"email":     p.Email,
		"createdAt": created,
	})
	return mapErr(err, nil, owners.ErrStoreUnavailable)
}

func (r *OwnersRepo) Get(ctx context.Context, ownerID string) (owners.Profile, error) {
	doc, err := r.store.Get(ctx, r.paths.Profile(ownerID))
	if err != nil {
		return owners.Profile{}, mapErr(err, owners.ErrNotFound, owners.ErrStoreUnavailable)
	}
	last, _ := docstore.Int64(doc.Data[fieldLastHN])
	role, ok := owners.ParseRole(docstore.String(doc.Data, "role"))
	if !ok {
		role = owners.RoleUser
	}
	return owners.Profile{
		ID:           ownerID,
		Email:        docstore.String(doc.Data, "email"),
		Role:         role,
		LastHNNumber: last,
		CreatedAt:    docstore.Time(doc.Data, "createdAt"),
	}, nil
}

func (r *OwnersRepo) UpdateDetails(ctx context.Context, ownerID, email string, role owners.Role) error {
	err := r.store.Update(ctx, r.paths.Profile(ownerID), map[string]any{
		"email": email,
		"role":  string(role),
	})
	return mapErr(err, owners.ErrNotFound, owners.ErrStoreUnavailable)
}

// ListIDs enumera los owners en orden de id (orden de enumeración del store).
func (r *OwnersRepo) ListIDs(ctx context.Context) ([]string, error) {
	docs, err := r.store.List(ctx, r.paths.Users(), docstore.Query{})
	if err != nil {
		return nil, mapErr(err, nil, owners.ErrStoreUnavailable)
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (r *OwnersRepo) LastHN(ctx context.Context, ownerID string) (int64, error) {
	doc, err := r.store.Get(ctx, r.paths.Profile(ownerID))
	if err != nil {
		return 0, mapErr(err, pets.ErrOwnerNotRegistered, pets.ErrStoreUnavailable)
	}
	last, _ := docstore.Int64(doc.Data[fieldLastHN])
	return last, nil
}

func (r *OwnersRepo) AdvanceHN(ctx context.Context, ownerID string, expected, next int64) (bool, error) {
	ok, err := r.store.CompareAndSet(ctx, r.paths.Profile(ownerID), fieldLastHN, expected, next)
	if err != nil {
		return false, mapErr(err, pets.ErrOwnerNotRegistered, pets.ErrStoreUnavailable)
	}
	return ok, nil
}
