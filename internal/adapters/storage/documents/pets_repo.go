package documents

import (
	"context"
	"strings"

	"petcare/internal/domain/pets"
	"petcare/internal/ports/docstore"
)

type PetsRepo struct {
	store docstore.Store
	paths Paths
}

func NewPetsRepo(store docstore.Store, paths Paths) *PetsRepo {
	return &PetsRepo{store: store, paths: paths}
}

var _ pets.Repository = (*PetsRepo)(nil)

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	doc, err := r.store.Add(ctx, r.paths.Animals(p.OwnerID), map[string]any{
		"name":      p.Name,
		"species":   string(p.Species),
		"breed":     p.Breed,
		"sex":       string(p.Sex),
		"hn":        p.HN,
		"ownerId":   p.OwnerID,
		"createdAt": p.CreatedAt,
	})
	if err != nil {
		return pets.Pet{}, mapErr(err, nil, pets.ErrStoreUnavailable)
	}
	p.ID = doc.ID
	return p, nil
}

func (r *PetsRepo) Get(ctx context.Context, ownerID, petID string) (pets.Pet, error) {
	doc, err := r.store.Get(ctx, r.paths.Animal(ownerID, petID))
	if err != nil {
		return pets.Pet{}, mapErr(err, pets.ErrNotFound, pets.ErrStoreUnavailable)
	}
	return toPet(ownerID, doc), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	docs, err := r.store.List(ctx, r.paths.Animals(ownerID), petsQuery())
	if err != nil {
		return nil, mapErr(err, nil, pets.ErrStoreUnavailable)
	}
	return toPets(ownerID, docs), nil
}

func (r *PetsRepo) Watch(ctx context.Context, ownerID string) (pets.Subscription, error) {
	sub, err := r.store.Watch(ctx, r.paths.Animals(ownerID), petsQuery())
	if err != nil {
		return nil, mapErr(err, nil, pets.ErrStoreUnavailable)
	}
	return newSubscription(sub,
		func(docs []docstore.Document) []pets.Pet { return toPets(ownerID, docs) },
		func(err error) error { return mapErr(err, nil, pets.ErrStoreUnavailable) },
	), nil
}

// FindByHN hace una consulta de igualdad sobre hn en las mascotas del owner.
func (r *PetsRepo) FindByHN(ctx context.Context, ownerID, code string) (pets.Pet, error) {
	docs, err := r.store.List(ctx, r.paths.Animals(ownerID), docstore.Query{Field: "hn", Value: code, Limit: 1})
	if err != nil {
		return pets.Pet{}, mapErr(err, nil, pets.ErrStoreUnavailable)
	}
	if len(docs) == 0 {
		return pets.Pet{}, pets.ErrNotFound
	}
	return toPet(ownerID, docs[0]), nil
}

func petsQuery() docstore.Query {
	return docstore.Query{OrderBy: "createdAt", Direction: docstore.Asc}
}

func toPets(ownerID string, docs []docstore.Document) []pets.Pet {
	out := make([]pets.Pet, 0, len(docs))
	for _, d := range docs {
		out = append(out, toPet(ownerID, d))
	}
	return out
}

func toPet(ownerID string, d docstore.Document) pets.Pet {
	owner := docstore.String(d.Data, "ownerId")
	if strings.TrimSpace(owner) == "" {
		owner = ownerID
	}
	return pets.Pet{
		ID:        d.ID,
		OwnerID:   owner,
		Name:      docstore.String(d.Data, "name"),
		Species:   pets.Species(docstore.String(d.Data, "species")),
		Breed:     docstore.String(d.Data, "breed"),
		Sex:       pets.Sex(docstore.String(d.Data, "sex")),
		HN:        docstore.String(d.Data, "hn"),
		CreatedAt: docstore.Time(d.Data, "createdAt"),
	}
}
