package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"petcare/internal/middleware"
	"petcare/internal/platform/sse"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/stream", streamPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
	})
}

// createPetRequest es el cuerpo para registrar una mascota. El HN lo asigna el servidor.
type createPetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Sex     string `json:"sex" enums:"male,female,unknown"`
}

// PetResponse es la representación pública de una mascota.
type PetResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Species   Species   `json:"species"`
	Breed     string    `json:"breed"`
	Sex       Sex       `json:"sex"`
	HN        string    `json:"hn"`
	CreatedAt time.Time `json:"created_at"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Registra una mascota del usuario autenticado y le asigna el siguiente HN (`HN-XXXX-NNNN`). El contador del owner se reserva con escritura condicional.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createPetRequest true "Datos de la mascota; name y species son obligatorios"
// @Success 201 {object} PetResponse
// @Failure 400 {string} string "invalid json / datos incompletos"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "perfil no registrado / contención de HN"
// @Failure 503 {string} string "store unavailable"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.AddPet(r.Context(), claims.UserID, CreateInput{
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Sex:     req.Sex,
		})
		if err != nil {
			WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} PetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "store unavailable"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListPets(r.Context(), claims.UserID)
		if err != nil {
			WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

// streamPetsHandler godoc
// @Summary Suscribirse a mis mascotas
// @Description Server-Sent Events: un evento `snapshot` con la lista completa al conectar y otro en cada cambio. Cerrar la conexión termina la suscripción.
// @Tags pets
// @Produce text/event-stream
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} PetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 503 {string} string "store unavailable"
// @Router /pets/stream [get]
func streamPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sub, err := svc.WatchPets(r.Context(), claims.UserID)
		if err != nil {
			WriteError(w, err)
			return
		}
		defer sub.Close()

		_ = sse.Stream[[]Pet](w, r, sub, func(items []Pet) any { return toResponses(items) })
	}
}

// getPetHandler godoc
// @Summary Ver una de mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} PetResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetPet(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToResponse(p))
	}
}

// WriteError traduce los errores del registro de mascotas a texto bilingüe.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "กรุณากรอกชื่อและชนิดสัตว์ / Please enter the pet's name and species.", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "ไม่พบสัตว์เลี้ยง / Pet not found.", http.StatusNotFound)
	case errors.Is(err, ErrOwnerNotRegistered):
		http.Error(w, "ไม่พบโปรไฟล์ผู้ใช้ / User profile not found.", http.StatusConflict)
	case errors.Is(err, ErrHNContention):
		http.Error(w, "ไม่สามารถสร้าง HN ได้ กรุณาลองอีกครั้ง / Could not assign an HN, please retry.", http.StatusConflict)
	case errors.Is(err, ErrStoreUnavailable):
		http.Error(w, "ไม่สามารถบันทึกข้อมูลสัตว์เลี้ยงได้ / Failed to save pet data.", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func ToResponse(p Pet) PetResponse {
	return PetResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       p.Sex,
		HN:        p.HN,
		CreatedAt: p.CreatedAt,
	}
}

func toResponses(items []Pet) []PetResponse {
	out := make([]PetResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToResponse(p))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
