package pets

import (
	"context"
	"strings"

	"petcare/internal/domain/hn"
)

// FindByHN busca dentro de las mascotas de un owner la que tiene ese HN.
// Lo usa la búsqueda entre owners (lookup) para no depender del repositorio.
func (s *Service) FindByHN(ctx context.Context, ownerID, code string) (Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	code = hn.Normalize(code)
	if ownerID == "" || code == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.FindByHN(ctx, ownerID, code)
}
