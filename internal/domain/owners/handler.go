package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"petcare/internal/middleware"
	"petcare/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/register", registerHandler(svc))
	r.Post("/auth/login", loginHandler(svc))

	r.Get("/me/profile", getProfileHandler(svc))
	r.Put("/me/profile", putProfileHandler(svc))
}

// registerRequest es el cuerpo para crear cuenta + perfil.
type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role" enums:"user,veterinarian"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role" enums:"user,veterinarian"`
}

// sessionResponse devuelve el token del proveedor de identidad.
type sessionResponse struct {
	UserID       string           `json:"user_id"`
	Email        string           `json:"email"`
	IDToken      string           `json:"id_token"`
	RefreshToken string           `json:"refresh_token,omitempty"`
	ExpiresIn    int64            `json:"expires_in"`
	Profile      *profileResponse `json:"profile,omitempty"`
	Message      string           `json:"message,omitempty"`
}

type profileResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	LastHNNumber int64     `json:"last_hn_number"`
	CreatedAt    time.Time `json:"created_at"`
}

// registerHandler godoc
// @Summary Registrar owner
// @Description Crea la cuenta en el proveedor de identidad y el perfil con `lastHNNumber = 0`. Requiere `identity.api_key` configurado.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Email, contraseña y rol"
// @Success 201 {object} sessionResponse
// @Failure 400 {string} string "email inválido / contraseña débil"
// @Failure 409 {string} string "email ya registrado"
// @Failure 501 {string} string "identity provider not configured"
// @Failure 503 {string} string "store unavailable"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, p, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Role:     string(req.Role),
		})
		if err != nil {
			writeError(w, err)
			return
		}

		resp := toSessionResponse(sess)
		pr := toProfileResponse(p)
		resp.Profile = &pr
		resp.Message = "ลงทะเบียนสำเร็จ! คุณสามารถเข้าสู่ระบบได้แล้ว / Registration successful! You can now log in."
		writeJSON(w, http.StatusCreated, resp)
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Verifica email/contraseña contra el proveedor de identidad y devuelve el id token para `Authorization: Bearer`.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "email o contraseña incorrectos"
// @Failure 501 {string} string "identity provider not configured"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		resp := toSessionResponse(sess)
		if p, err := svc.Get(r.Context(), sess.UserID); err == nil {
			pr := toProfileResponse(p)
			resp.Profile = &pr
		}
		resp.Message = "เข้าสู่ระบบสำเร็จ! / Login successful!"
		writeJSON(w, http.StatusOK, resp)
	}
}

// getProfileHandler godoc
// @Summary Ver mi perfil
// @Tags auth
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /me/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// putProfileHandler godoc
// @Summary Crear/actualizar mi perfil
// @Description Crea el perfil del usuario autenticado si no existe (contador en 0) o actualiza el email. El rol se fija al crear el perfil. Nunca modifica el contador de HN.
// @Tags auth
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body profileRequest true "Email y rol"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "invalid json / rol inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "el rol no se puede cambiar"
// @Failure 503 {string} string "store unavailable"
// @Router /me/profile [put]
func putProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		email := req.Email
		if strings.TrimSpace(email) == "" {
			email = claims.Email
		}

		p, err := svc.EnsureProfile(r.Context(), claims.UserID, email, string(req.Role))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func writeError(w http.ResponseWriter, err error) {
	var aerr *auth.Error
	switch {
	case errors.As(err, &aerr):
		status := http.StatusBadRequest
		switch aerr.Code {
		case auth.CodeEmailExists:
			status = http.StatusConflict
		case auth.CodeEmailNotFound, auth.CodeInvalidPassword, auth.CodeInvalidCredentials, auth.CodeUserDisabled:
			status = http.StatusUnauthorized
		}
		http.Error(w, aerr.Message, status)
	case errors.Is(err, ErrIdentityNotConfigured):
		http.Error(w, "identity provider not configured", http.StatusNotImplemented)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "ข้อมูลไม่ถูกต้อง / Invalid input.", http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "ไม่พบโปรไฟล์ผู้ใช้ / Profile not found.", http.StatusNotFound)
	case errors.Is(err, ErrRoleLocked):
		http.Error(w, "ไม่สามารถเปลี่ยนบทบาทได้ / The profile role cannot be changed.", http.StatusForbidden)
	case errors.Is(err, ErrAlreadyRegistered):
		http.Error(w, "อีเมลนี้ถูกใช้แล้ว / Email already in use.", http.StatusConflict)
	case errors.Is(err, ErrStoreUnavailable):
		http.Error(w, "ฐานข้อมูลไม่พร้อมใช้งาน / Database not available.", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		UserID:       s.UserID,
		Email:        s.Email,
		IDToken:      s.IDToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
	}
}

func toProfileResponse(p Profile) profileResponse {
	return profileResponse{
		ID:           p.ID,
		Email:        p.Email,
		Role:         p.Role,
		LastHNNumber: p.LastHNNumber,
		CreatedAt:    p.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
