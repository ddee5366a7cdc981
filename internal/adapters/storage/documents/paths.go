// Package documents implementa los repositorios del dominio sobre un
// docstore.Store. El layout de colecciones es el del producto hospedado:
//
//	artifacts/{app}/users/{uid}                              marcador del owner
//	artifacts/{app}/users/{uid}/profile/data                 perfil + lastHNNumber
//	artifacts/{app}/users/{uid}/animals/{petId}              mascota
//	artifacts/{app}/users/{uid}/animals/{petId}/illnessRecords/{id}
package documents

import (
	"context"
	"errors"
	"fmt"

	"petcare/internal/ports/docstore"
)

type Paths struct {
	AppID string
}

func NewPaths(appID string) Paths {
	return Paths{AppID: appID}
}

func (p Paths) Users() string { return docstore.Join("artifacts", p.AppID, "users") }

func (p Paths) User(ownerID string) string { return docstore.Join(p.Users(), ownerID) }

func (p Paths) Profile(ownerID string) string {
	return docstore.Join(p.User(ownerID), "profile", "data")
}

func (p Paths) Animals(ownerID string) string { return docstore.Join(p.User(ownerID), "animals") }

func (p Paths) Animal(ownerID, petID string) string {
	return docstore.Join(p.Animals(ownerID), petID)
}

func (p Paths) IllnessRecords(ownerID, petID string) string {
	return docstore.Join(p.Animal(ownerID, petID), "illnessRecords")
}

func (p Paths) IllnessRecord(ownerID, petID, recordID string) string {
	return docstore.Join(p.IllnessRecords(ownerID, petID), recordID)
}

// mapErr traduce los errores del store a los del dominio. Los errores de
// contexto pasan tal cual.
func mapErr(err, notFound, unavailable error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, docstore.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, docstore.ErrInvalidPath) && notFound != nil:
		return notFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %v", unavailable, err)
	}
}
