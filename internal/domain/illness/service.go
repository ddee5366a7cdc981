package illness

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"petcare/internal/domain/pets"
	"petcare/internal/domain/report"
	"petcare/internal/platform/logger"
	"petcare/internal/platform/metrics"
	"petcare/internal/ports/blob"
	"petcare/internal/ports/diagnosis"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNotFound               = errors.New("illness record not found")
	ErrStoreUnavailable       = errors.New("illness store unavailable")
	ErrDiagnosisUnavailable   = errors.New("diagnosis unavailable")
	ErrIncompleteRecord       = errors.New("incomplete illness record")
	ErrIncompletePetReference = errors.New("incomplete pet reference")
	ErrReportUnavailable      = errors.New("report unavailable")

	// Motivos de validación; siempre llegan envueltos en ErrDiagnosisUnavailable.
	ErrObservationRequired = errors.New("symptoms or image required")
	ErrTemperatureRequired = errors.New("temperature required")
)

const DefaultDiagnosisTimeout = 60 * time.Second

type Service struct {
	repo Repository
	pets PetReader

	assistant diagnosis.Assistant
	sessions  *SessionStore
	renderer  *report.Renderer
	archive   blob.Store

	timeout time.Duration
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithAssistant(a diagnosis.Assistant) Option { return func(s *Service) { s.assistant = a } }
func WithSessions(st *SessionStore) Option { return func(s *Service) { s.sessions = st } }
func WithRenderer(r *report.Renderer) Option { return func(s *Service) { s.renderer = r } }
func WithArchive(b blob.Store) Option { return func(s *Service) { s.archive = b } }
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }
func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }
func WithDiagnosisTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func NewService(repo Repository, petReader PetReader, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		pets:     petReader,
		renderer: report.NewRenderer(""),
		timeout:  DefaultDiagnosisTimeout,
		log:      logger.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sessions == nil {
		s.sessions = NewSessionStore(DefaultSessionTTL, WithSessionClock(s.now), WithSessionMetrics(s.metrics))
	}
	return s
}

// ResolvePet busca la mascota a la que pertenecen los registros.
func (s *Service) ResolvePet(ctx context.Context, ownerID, petID string) (pets.Pet, error) {
	return s.pets.GetPet(ctx, ownerID, petID)
}

// RequestDiagnosis pide un diagnóstico preliminar. Sin síntomas ni imagen, o
// sin temperatura, falla antes de llamar al asistente. La traducción de los
// síntomas es best-effort: si falla se usa el texto original.
func (s *Service) RequestDiagnosis(ctx context.Context, pet pets.Pet, obs Observation) (string, error) {
	if err := validateForDiagnosis(obs); err != nil {
		s.metrics.Diagnosis("invalid")
		return "", err
	}
	img, err := decodeImage(obs.Image)
	if err != nil {
		s.metrics.Diagnosis("invalid")
		return "", err
	}
	if s.assistant == nil {
		s.metrics.Diagnosis("unavailable")
		return "", fmt.Errorf("%w: assistant not configured", ErrDiagnosisUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	english := obs.Symptoms
	if strings.TrimSpace(obs.Symptoms) != "" {
		english = s.translate(ctx, obs.Symptoms)
	}

	req := diagnosis.Request{Prompt: DiagnosisPrompt(pet, obs, english)}
	if len(img) > 0 {
		req.Image = img
		req.ImageMIMEType = imageMIMEType(img)
	}

	text, err := s.assistant.Diagnose(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = diagnosis.ErrEmptyResponse
	}
	if err != nil {
		s.metrics.Diagnosis("unavailable")
		s.log.Warn("diagnosis request failed", map[string]any{
			"pet_id": pet.ID,
			"hn":     pet.HN,
			"err":    err,
		})
		return "", fmt.Errorf("%w: %v", ErrDiagnosisUnavailable, err)
	}

	s.metrics.Diagnosis("ok")
	return text, nil
}

func (s *Service) translate(ctx context.Context, symptoms string) string {
	out, err := s.assistant.Translate(ctx, TranslationPrompt(symptoms))
	out = CleanTranslation(out)
	if err != nil || out == "" {
		s.metrics.Translation("fallback")
		s.log.Warn("could not translate symptoms; using original text", map[string]any{"err": err})
		return symptoms
	}
	s.metrics.Translation("ok")
	return out
}

// SaveRecord escribe un registro nuevo. Requiere diagnóstico y síntomas o imagen.
func (s *Service) SaveRecord(ctx context.Context, pet pets.Pet, in SaveInput) (Record, error) {
	if !in.Observation.hasSymptomsOrImage() || strings.TrimSpace(in.Diagnosis) == "" {
		return Record{}, ErrIncompleteRecord
	}
	if strings.TrimSpace(pet.OwnerID) == "" || strings.TrimSpace(pet.ID) == "" {
		return Record{}, ErrIncompletePetReference
	}
	if _, err := decodeImage(in.Image); err != nil {
		return Record{}, err
	}

	r := Record{
		OwnerID:     pet.OwnerID,
		PetID:       pet.ID,
		Observation: trimObservation(in.Observation),
		Diagnosis:   in.Diagnosis,
		Treatment:   strings.TrimSpace(in.Treatment),
		Timestamp:   s.now().UTC(),
	}
	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return Record{}, err
	}
	s.metrics.RecordSaved()
	return created, nil
}

func (s *Service) ListRecords(ctx context.Context, pet pets.Pet) ([]Record, error) {
	if strings.TrimSpace(pet.OwnerID) == "" || strings.TrimSpace(pet.ID) == "" {
		return nil, ErrIncompletePetReference
	}
	return s.repo.List(ctx, pet.OwnerID, pet.ID)
}

func (s *Service) WatchRecords(ctx context.Context, pet pets.Pet) (Subscription, error) {
	if strings.TrimSpace(pet.OwnerID) == "" || strings.TrimSpace(pet.ID) == "" {
		return nil, ErrIncompletePetReference
	}
	return s.repo.Watch(ctx, pet.OwnerID, pet.ID)
}

func (s *Service) GetRecord(ctx context.Context, pet pets.Pet, recordID string) (Record, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return Record{}, ErrInvalidInput
	}
	if strings.TrimSpace(pet.OwnerID) == "" || strings.TrimSpace(pet.ID) == "" {
		return Record{}, ErrIncompletePetReference
	}
	return s.repo.Get(ctx, pet.OwnerID, pet.ID, recordID)
}

// GenerateReport arma el layout del informe con la hora actual.
func (s *Service) GenerateReport(pet pets.Pet, r Record) report.Document {
	return report.Build(report.Input{
		PetName:          pet.Name,
		HN:               pet.HN,
		Species:          string(pet.Species),
		Breed:            pet.Breed,
		Sex:              string(pet.Sex),
		OwnerID:          pet.OwnerID,
		Symptoms:         r.Symptoms,
		Temperature:      r.Temperature,
		HeartRate:        r.HeartRate,
		RespiratoryRate:  r.RespiratoryRate,
		BloodPressure:    r.BloodPressure,
		OxygenSaturation: r.OxygenSaturation,
		Diagnosis:        r.Diagnosis,
		Treatment:        r.Treatment,
		Image:            r.Image,
	}, s.now())
}

// RenderReport devuelve el PDF del registro. Con archivo configurado, el
// primer PDF de un registro guardado se archiva y se sirve desde ahí.
func (s *Service) RenderReport(ctx context.Context, pet pets.Pet, r Record) (string, []byte, error) {
	doc := s.GenerateReport(pet, r)

	key := ""
	if s.archive != nil && r.ID != "" {
		key = ReportKey(pet.OwnerID, pet.ID, r.ID)
		if _, data, err := s.archive.Get(ctx, key); err == nil {
			s.metrics.Report("archive")
			return doc.FileName, data, nil
		} else if !errors.Is(err, blob.ErrNotFound) {
			s.log.Warn("report archive read failed", map[string]any{"key": key, "err": err})
		}
	}

	data, err := s.renderer.Render(doc)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrReportUnavailable, err)
	}
	s.metrics.Report("rendered")

	if key != "" {
		if _, err := s.archive.Put(ctx, key, "application/pdf", data); err != nil && !errors.Is(err, blob.ErrExists) {
			s.log.Warn("report archive write failed", map[string]any{"key": key, "err": err})
		}
	}
	return doc.FileName, data, nil
}

// ReportKey es la clave del PDF archivado de un registro.
func ReportKey(ownerID, petID, recordID string) string {
	return path.Join("reports", ownerID, petID, recordID+".pdf")
}

func validateForDiagnosis(obs Observation) error {
	if !obs.hasSymptomsOrImage() {
		return fmt.Errorf("%w: %w", ErrDiagnosisUnavailable, ErrObservationRequired)
	}
	if strings.TrimSpace(obs.Temperature) == "" {
		return fmt.Errorf("%w: %w", ErrDiagnosisUnavailable, ErrTemperatureRequired)
	}
	return nil
}

func decodeImage(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: image must be base64", ErrInvalidInput)
	}
	return data, nil
}

func imageMIMEType(data []byte) string {
	if ct := http.DetectContentType(data); strings.HasPrefix(ct, "image/") {
		return ct
	}
	return "image/png"
}

func trimObservation(o Observation) Observation {
	return Observation{
		Symptoms:         strings.TrimSpace(o.Symptoms),
		Temperature:      strings.TrimSpace(o.Temperature),
		HeartRate:        strings.TrimSpace(o.HeartRate),
		RespiratoryRate:  strings.TrimSpace(o.RespiratoryRate),
		BloodPressure:    strings.TrimSpace(o.BloodPressure),
		OxygenSaturation: strings.TrimSpace(o.OxygenSaturation),
		Image:            strings.TrimSpace(o.Image),
	}
}
