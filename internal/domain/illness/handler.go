package illness

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petcare/internal/domain/pets"
	"petcare/internal/middleware"
	"petcare/internal/platform/sse"

	"github.com/go-chi/chi/v5"
)

// RoleChecker decide si el usuario autenticado es veterinario.
type RoleChecker interface {
	IsVeterinarian(ctx context.Context, ownerID string) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, roles RoleChecker) {
	r.Route("/owners/{ownerID}/pets/{petID}", func(pr chi.Router) {
		pr.Post("/illness-sessions", openSessionHandler(svc, roles))
		pr.Post("/illness-records", saveRecordHandler(svc, roles))
		pr.Get("/illness-records", listRecordsHandler(svc, roles))
		pr.Get("/illness-records/stream", streamRecordsHandler(svc, roles))
		pr.Get("/illness-records/{recordID}", getRecordHandler(svc, roles))
		pr.Get("/illness-records/{recordID}/report.pdf", recordReportHandler(svc, roles))
	})

	r.Route("/illness-sessions/{sessionID}", func(sr chi.Router) {
		sr.Get("/", getSessionHandler(svc))
		sr.Put("/observation", observationHandler(svc))
		sr.Put("/treatment", treatmentHandler(svc))
		sr.Post("/diagnosis", diagnosisHandler(svc))
		sr.Post("/save", saveSessionHandler(svc))
		sr.Get("/report.pdf", sessionReportHandler(svc))
		sr.Delete("/", cancelSessionHandler(svc))
	})
}

// observationRequest son los datos que se anotan antes del diagnóstico.
// Image es base64 sin prefijo data:.
type observationRequest struct {
	Symptoms         string `json:"symptoms"`
	Temperature      string `json:"temperature"`
	HeartRate        string `json:"heart_rate"`
	RespiratoryRate  string `json:"respiratory_rate"`
	BloodPressure    string `json:"blood_pressure"`
	OxygenSaturation string `json:"oxygen_saturation"`
	Image            string `json:"image"`
}

type treatmentRequest struct {
	Treatment string `json:"treatment"`
}

type saveRecordRequest struct {
	observationRequest
	Diagnosis string `json:"diagnosis"`
	Treatment string `json:"treatment"`
}

// RecordResponse es un registro guardado. Los vitales no medidos van en null.
type RecordResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"owner_id"`
	PetID            string    `json:"pet_id"`
	Symptoms         string    `json:"symptoms"`
	Temperature      string    `json:"temperature"`
	HeartRate        *string   `json:"heart_rate"`
	RespiratoryRate  *string   `json:"respiratory_rate"`
	BloodPressure    *string   `json:"blood_pressure"`
	OxygenSaturation *string   `json:"oxygen_saturation"`
	Diagnosis        string    `json:"diagnosis"`
	DiagnosisSummary string    `json:"diagnosis_summary"`
	Treatment        string    `json:"treatment"`
	Image            string    `json:"image,omitempty"`
	HasImage         bool      `json:"has_image"`
	Timestamp        time.Time `json:"timestamp"`
}

type SessionResponse struct {
	ID          string             `json:"id"`
	State       State              `json:"state"`
	Pet         pets.PetResponse   `json:"pet"`
	Observation observationRequest `json:"observation"`
	Diagnosis   string             `json:"diagnosis,omitempty"`
	Treatment   string             `json:"treatment,omitempty"`
	RecordID    string             `json:"record_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Message     string             `json:"message,omitempty"`
}

// openSessionHandler godoc
// @Summary Empezar un registro de enfermedad
// @Description Abre una sesión en memoria para anotar síntomas, pedir el diagnóstico y guardar. Nada se persiste hasta `save`. Permitido al owner y a veterinarios.
// @Tags illness
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param ownerID path string true "ID del owner"
// @Param petID path string true "ID de la mascota"
// @Success 201 {object} SessionResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /owners/{ownerID}/pets/{petID}/illness-sessions [post]
func openSessionHandler(svc *Service, roles RoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, pet, ok := resolvePet(w, r, svc, roles)
		if !ok {
			return
		}

		sess, err := svc.OpenSession(r.Context(), callerID, pet)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(sess))
	}
}

// saveRecordHandler godoc
// @Summary Guardar un registro directamente
// @Description Guarda un registro con diagnóstico ya obtenido. Requiere síntomas o imagen, y diagnóstico.
// @Tags illness
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param ownerID path string true "ID del owner"
// @Param petID path string true "ID de la mascota"
// @Param payload body saveRecordRequest true "Observación, diagnóstico y tratamiento"
// @Success 201 {object} RecordResponse
// @Failure 400 {string} string "registro incompleto"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 503 {string} string "store unavailable"
// @Router /owners/{ownerID}/pets/{petID}/illness-records [post]
func saveRecordHandler(svc *Service, roles RoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, pet, ok := resolvePet(w, r, svc, roles)
		if !ok {
			return
		}

		var req saveRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := svc.SaveRecord(r.Context(), pet, SaveInput{
			Observation: req.observationRequest.toObservation(),
			Diagnosis:   req.Diagnosis,
			Treatment:   req.Treatment,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, ToRecordResponse(rec, true))
	}
}

// listRecordsHandler godoc
// @Summary Historial de enfermedades
// @Description Registros de la mascota, del más reciente al más antiguo. Sin la imagen (ver `has_image`).
// @Tags illness
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param ownerID path string true "ID del owner"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} RecordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 503 {string} string "store unavailable"
// @Router /owners/{ownerID}/pets/{petID}/illness-records [get]
func listRecordsHandler(svc *Service, roles RoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, pet, ok := resolvePet(w, r, svc, roles)
		if !ok {
			return
		}

		items, err := svc.ListRecords(r.Context(), pet)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponses(items))
	}
}

// streamRecordsHandler godoc
// @Summary Suscribirse al historial
// @Description Server-Sent Events con el historial completo al conectar y en cada registro nuevo.
// @Tags illness
// @Produce text/event-stream
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param ownerID path string true "ID del owner"
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} RecordResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /owners/{ownerID}/pets/{petID}/illness-records/stream [get]
func streamRecordsHandler(svc *Service, roles RoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, pet, ok := resolvePet(w, r, svc, roles)
		if !ok {
			return
		}

		sub, err := svc.WatchRecords(r.Context(), pet)
		if err != nil {
			writeError(w, err)
			return
		}
		defer sub.Close()

		_ = sse.Stream[[]Record](w, r, sub, func(items []Record) any { return toRecordResponses(items) })
	}
}

// getRecordHandler godoc
// @Summary Ver un registro
// @Tags illness
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param ownerID path string true "ID del owner"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 200 {object} RecordResponse
// @Failure 404 {string} string "record not found"
// @Router /owners/{ownerID}/pets/{petID}/illness-records/{recordID} [get]
func getRecordHandler(svc *Service, roles RoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, pet, ok := resolvePet(w, r, svc, roles)
		if !ok {
			return
		}

		rec, err := svc.GetRecord(r.Context(), pet, chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ToRecordResponse(rec, true))
	}
}

// recordReportHandler godoc
// @Summary PDF de un registro
// @Description Informe para el veterinario. Si hay archivo configurado se sirve la copia archivada.
// @Tags illness
// @Produce application/pdf
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param ownerID path string true "ID del owner"
// @Param petID path string true "ID de la mascota"
// @Param recordID path string true "ID del registro"
// @Success 200 {file} file
// @Failure 404 {string} string "record not found"
// @Router /owners/{ownerID}/pets/{petID}/illness-records/{recordID}/report.pdf [get]
func recordReportHandler(svc *Service, roles RoleChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, pet, ok := resolvePet(w, r, svc, roles)
		if !ok {
			return
		}

		rec, err := svc.GetRecord(r.Context(), pet, chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, err)
			return
		}
		name, data, err := svc.RenderReport(r.Context(), pet, rec)
		if err != nil {
			writeError(w, err)
			return
		}
		writePDF(w, name, data)
	}
}

// getSessionHandler godoc
// @Summary Ver una sesión
// @Tags illness
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} SessionResponse
// @Failure 404 {string} string "session not found"
// @Router /illness-sessions/{sessionID} [get]
func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}
		sess, err := svc.GetSession(callerID, chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// observationHandler godoc
// @Summary Anotar síntomas y signos vitales
// @Tags illness
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body observationRequest true "Síntomas, vitales e imagen (base64)"
// @Success 200 {object} SessionResponse
// @Failure 400 {string} string "invalid json / imagen inválida"
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "diagnóstico en curso / sesión cerrada"
// @Router /illness-sessions/{sessionID}/observation [put]
func observationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}
		var req observationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.UpdateObservation(callerID, chi.URLParam(r, "sessionID"), req.toObservation())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// treatmentHandler godoc
// @Summary Anotar el tratamiento
// @Tags illness
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Param payload body treatmentRequest true "Tratamiento"
// @Success 200 {object} SessionResponse
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "sesión cerrada"
// @Router /illness-sessions/{sessionID}/treatment [put]
func treatmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}
		var req treatmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, err := svc.UpdateTreatment(callerID, chi.URLParam(r, "sessionID"), req.Treatment)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// diagnosisHandler godoc
// @Summary Pedir diagnóstico preliminar (AI)
// @Description Traduce los síntomas y pide al asistente un diagnóstico bilingüe. Requiere síntomas o imagen, y temperatura. Un segundo pedido mientras el primero está en curso devuelve 409.
// @Tags illness
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} SessionResponse
// @Failure 400 {string} string "faltan síntomas o temperatura"
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "diagnóstico en curso"
// @Failure 502 {string} string "AI no disponible"
// @Router /illness-sessions/{sessionID}/diagnosis [post]
func diagnosisHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}
		sess, err := svc.Diagnose(r.Context(), callerID, chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(sess))
	}
}

// saveSessionHandler godoc
// @Summary Guardar el registro de la sesión
// @Tags illness
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} SessionResponse
// @Failure 400 {string} string "registro incompleto"
// @Failure 404 {string} string "session not found"
// @Failure 503 {string} string "store unavailable"
// @Router /illness-sessions/{sessionID}/save [post]
func saveSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}
		sess, err := svc.Save(r.Context(), callerID, chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		resp := toSessionResponse(sess)
		resp.Message = "บันทึกอาการป่วยสำเร็จ! / Illness record saved successfully!"
		writeJSON(w, http.StatusOK, resp)
	}
}

// sessionReportHandler godoc
// @Summary PDF del registro guardado por la sesión
// @Tags illness
// @Produce application/pdf
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {file} file
// @Failure 400 {string} string "todavía no se guardó"
// @Failure 404 {string} string "session not found"
// @Router /illness-sessions/{sessionID}/report.pdf [get]
func sessionReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}
		name, data, err := svc.SessionReport(r.Context(), callerID, chi.URLParam(r, "sessionID"))
		if err != nil {
			if errors.Is(err, ErrIncompleteRecord) {
				http.Error(w, "กรุณากรอกอาการหรืออัปโหลดรูปภาพ และทำการวินิจฉัย AI ก่อนสร้าง PDF / Please enter symptoms or upload an image, and get AI diagnosis before creating PDF.", http.StatusBadRequest)
				return
			}
			writeError(w, err)
			return
		}
		writePDF(w, name, data)
	}
}

// cancelSessionHandler godoc
// @Summary Cancelar el registro
// @Description Descarta la sesión. Solo antes de guardar.
// @Tags illness
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param sessionID path string true "ID de la sesión"
// @Success 204 {string} string "no content"
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "ya guardado"
// @Router /illness-sessions/{sessionID} [delete]
func cancelSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := caller(w, r)
		if !ok {
			return
		}
		if err := svc.CancelSession(callerID, chi.URLParam(r, "sessionID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

// resolvePet valida acceso (owner o veterinario) y carga la mascota de la ruta.
func resolvePet(w http.ResponseWriter, r *http.Request, svc *Service, roles RoleChecker) (string, pets.Pet, bool) {
	callerID, ok := caller(w, r)
	if !ok {
		return "", pets.Pet{}, false
	}
	ownerID := chi.URLParam(r, "ownerID")

	if callerID != ownerID {
		isVet, err := roles.IsVeterinarian(r.Context(), callerID)
		if err != nil {
			http.Error(w, "ฐานข้อมูลไม่พร้อมใช้งาน / Database not available.", http.StatusServiceUnavailable)
			return "", pets.Pet{}, false
		}
		if !isVet {
			http.Error(w, "forbidden", http.StatusForbidden)
			return "", pets.Pet{}, false
		}
	}

	pet, err := svc.ResolvePet(r.Context(), ownerID, chi.URLParam(r, "petID"))
	if err != nil {
		pets.WriteError(w, err)
		return "", pets.Pet{}, false
	}
	return callerID, pet, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrObservationRequired):
		http.Error(w, "กรุณากรอกอาการหรืออัปโหลดรูปภาพเพื่อวินิจฉัย / Please enter symptoms or upload an image for diagnosis.", http.StatusBadRequest)
	case errors.Is(err, ErrTemperatureRequired):
		http.Error(w, "กรุณากรอกอุณหภูมิ / Please enter the temperature.", http.StatusBadRequest)
	case errors.Is(err, ErrDiagnosisUnavailable):
		http.Error(w, "ไม่สามารถรับการวินิจฉัยจาก AI ได้ / Failed to get AI diagnosis.", http.StatusBadGateway)
	case errors.Is(err, ErrIncompleteRecord):
		http.Error(w, "กรุณากรอกอาการหรืออัปโหลดรูปภาพ และทำการวินิจฉัย AI ก่อนบันทึก / Please enter symptoms or upload an image, and get AI diagnosis before saving.", http.StatusBadRequest)
	case errors.Is(err, ErrIncompletePetReference):
		http.Error(w, "ข้อมูลสัตว์เลี้ยงไม่สมบูรณ์ ไม่สามารถบันทึกประวัติอาการป่วยได้ / Incomplete pet data. Cannot save illness record.", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "ข้อมูลไม่ถูกต้อง / Invalid input.", http.StatusBadRequest)
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "ไม่พบรายการ / Session not found or expired.", http.StatusNotFound)
	case errors.Is(err, ErrSessionBusy):
		http.Error(w, "กำลังดำเนินการอยู่ / The session is busy (diagnosis or save in progress).", http.StatusConflict)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, "ไม่สามารถทำรายการนี้ได้ / The session no longer accepts this action.", http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "ไม่พบประวัติอาการป่วย / Illness record not found.", http.StatusNotFound)
	case errors.Is(err, ErrStoreUnavailable):
		http.Error(w, "ไม่สามารถบันทึกหรือโหลดข้อมูลได้ / Database not available.", http.StatusServiceUnavailable)
	case errors.Is(err, ErrReportUnavailable):
		http.Error(w, "ไม่สามารถสร้าง PDF ได้ / Failed to generate PDF.", http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (o observationRequest) toObservation() Observation {
	return Observation{
		Symptoms:         o.Symptoms,
		Temperature:      o.Temperature,
		HeartRate:        o.HeartRate,
		RespiratoryRate:  o.RespiratoryRate,
		BloodPressure:    o.BloodPressure,
		OxygenSaturation: o.OxygenSaturation,
		Image:            o.Image,
	}
}

func fromObservation(o Observation) observationRequest {
	return observationRequest{
		Symptoms:         o.Symptoms,
		Temperature:      o.Temperature,
		HeartRate:        o.HeartRate,
		RespiratoryRate:  o.RespiratoryRate,
		BloodPressure:    o.BloodPressure,
		OxygenSaturation: o.OxygenSaturation,
		Image:            o.Image,
	}
}

// ToRecordResponse arma la respuesta; withImage=false omite la imagen (listados).
func ToRecordResponse(r Record, withImage bool) RecordResponse {
	resp := RecordResponse{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		PetID:            r.PetID,
		Symptoms:         r.Symptoms,
		Temperature:      r.Temperature,
		HeartRate:        nullable(r.HeartRate),
		RespiratoryRate:  nullable(r.RespiratoryRate),
		BloodPressure:    nullable(r.BloodPressure),
		OxygenSaturation: nullable(r.OxygenSaturation),
		Diagnosis:        r.Diagnosis,
		DiagnosisSummary: Summary(r.Diagnosis),
		Treatment:        r.Treatment,
		HasImage:         r.Image != "",
		Timestamp:        r.Timestamp,
	}
	if withImage {
		resp.Image = r.Image
	}
	return resp
}

func toRecordResponses(items []Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ToRecordResponse(r, false))
	}
	return out
}

func toSessionResponse(s Session) SessionResponse {
	resp := SessionResponse{
		ID:          s.ID,
		State:       s.State,
		Pet:         pets.ToResponse(s.Pet),
		Observation: fromObservation(s.Observation),
		Diagnosis:   s.Diagnosis,
		Treatment:   s.Treatment,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Record != nil {
		resp.RecordID = s.Record.ID
	}
	return resp
}

func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func writePDF(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
