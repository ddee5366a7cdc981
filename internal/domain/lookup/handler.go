package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"petcare/internal/domain/pets"
	"petcare/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RoleChecker decide si el usuario autenticado es veterinario.
type RoleChecker interface {
	IsVeterinarian(ctx context.Context, ownerID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, roles RoleChecker) {
	r.Get("/lookup/pets", findByHNHandler(svc, roles))
}

// findByHNHandler godoc
// @Summary Buscar mascota por HN
// @Description Recorre todos los owners en orden y devuelve la primera mascota con ese HN. Solo para veterinarios.
// @Tags lookup
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param hn query string true "HN, ej. HN-AB12-0007"
// @Success 200 {object} pets.PetResponse
// @Failure 400 {string} string "hn requerido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "solo veterinarios"
// @Failure 404 {string} string "no pet with that hn"
// @Failure 503 {string} string "lookup failed"
// @Router /lookup/pets [get]
func findByHNHandler(svc *Service, roles RoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		isVet, err := roles.IsVeterinarian(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "ฐานข้อมูลไม่พร้อมใช้งาน / Database not available.", http.StatusServiceUnavailable)
			return
		}
		if !isVet {
			http.Error(w, "เฉพาะสัตวแพทย์เท่านั้น / Veterinarians only.", http.StatusForbidden)
			return
		}

		p, err := svc.FindByHN(r.Context(), r.URL.Query().Get("hn"))
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "กรุณากรอก HN / Please enter an HN.", http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "ไม่พบสัตว์เลี้ยงด้วย HN นี้ / No pet found with this HN.", http.StatusNotFound)
			default:
				http.Error(w, "เกิดข้อผิดพลาดในการค้นหา / Search failed.", http.StatusServiceUnavailable)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(pets.ToResponse(p))
	}
}
