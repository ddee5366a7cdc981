package illness

import (
	"context"
	"strings"

	"petcare/internal/domain/pets"
)

// OpenSession empieza un registro nuevo para la mascota. La sesión queda a
// nombre de callerID: nadie más puede verla ni modificarla.
func (s *Service) OpenSession(ctx context.Context, callerID string, pet pets.Pet) (Session, error) {
	if strings.TrimSpace(callerID) == "" {
		return Session{}, ErrInvalidInput
	}
	if strings.TrimSpace(pet.OwnerID) == "" || strings.TrimSpace(pet.ID) == "" {
		return Session{}, ErrIncompletePetReference
	}
	return s.sessions.Create(callerID, pet), nil
}

func (s *Service) GetSession(callerID, sessionID string) (Session, error) {
	return s.sessions.Get(sessionID, callerID)
}

func (s *Service) UpdateObservation(callerID, sessionID string, obs Observation) (Session, error) {
	obs = trimObservation(obs)
	if _, err := decodeImage(obs.Image); err != nil {
		return Session{}, err
	}
	return s.sessions.Update(sessionID, callerID, func(sess *Session) error {
		return sess.setObservation(obs)
	})
}

func (s *Service) UpdateTreatment(callerID, sessionID, treatment string) (Session, error) {
	return s.sessions.Update(sessionID, callerID, func(sess *Session) error {
		return sess.setTreatment(treatment)
	})
}

// Diagnose pide el diagnóstico para la observación de la sesión. Mientras
// está en curso la sesión rechaza otro pedido con ErrSessionBusy; si falla
// vuelve a SymptomsEntered.
func (s *Service) Diagnose(ctx context.Context, callerID, sessionID string) (Session, error) {
	sess, err := s.sessions.Get(sessionID, callerID)
	if err != nil {
		return Session{}, err
	}
	if sess.busy() {
		return sess, ErrSessionBusy
	}
	// validar antes de marcar la sesión ocupada
	if err := validateForDiagnosis(sess.Observation); err != nil {
		s.metrics.Diagnosis("invalid")
		return sess, err
	}

	sess, err = s.sessions.Update(sessionID, callerID, func(sess *Session) error {
		return sess.beginDiagnosis()
	})
	if err != nil {
		return sess, err
	}

	text, derr := s.RequestDiagnosis(ctx, sess.Pet, sess.Observation)

	updated, err := s.sessions.Update(sessionID, callerID, func(cur *Session) error {
		if derr != nil {
			cur.failDiagnosis()
			return nil
		}
		return cur.finishDiagnosis(text)
	})
	if derr != nil {
		return updated, derr
	}
	return updated, err
}

// Save persiste el registro de la sesión. Requiere un diagnóstico recibido.
// La sesión pasa a Saving bajo el lock antes de escribir; si la escritura
// falla vuelve a DiagnosisReceived.
func (s *Service) Save(ctx context.Context, callerID, sessionID string) (Session, error) {
	sess, err := s.sessions.Update(sessionID, callerID, func(cur *Session) error {
		return cur.beginSave()
	})
	if err != nil {
		return sess, err
	}

	rec, serr := s.SaveRecord(ctx, sess.Pet, SaveInput{
		Observation: sess.Observation,
		Diagnosis:   sess.Diagnosis,
		Treatment:   sess.Treatment,
	})

	updated, err := s.sessions.Update(sessionID, callerID, func(cur *Session) error {
		if serr != nil {
			cur.failSave()
			return nil
		}
		return cur.markSaved(rec)
	})
	if serr != nil {
		return updated, serr
	}
	return updated, err
}

// SessionReport renderiza el PDF del registro guardado por la sesión.
func (s *Service) SessionReport(ctx context.Context, callerID, sessionID string) (string, []byte, error) {
	sess, err := s.sessions.Get(sessionID, callerID)
	if err != nil {
		return "", nil, err
	}
	if sess.Record == nil {
		return "", nil, ErrIncompleteRecord
	}

	name, data, err := s.RenderReport(ctx, sess.Pet, *sess.Record)
	if err != nil {
		return "", nil, err
	}
	if _, err := s.sessions.Update(sessionID, callerID, func(cur *Session) error {
		return cur.markReported()
	}); err != nil {
		return "", nil, err
	}
	return name, data, nil
}

// CancelSession descarta el borrador. Solo antes de guardar.
func (s *Service) CancelSession(callerID, sessionID string) error {
	if _, err := s.sessions.Update(sessionID, callerID, func(cur *Session) error {
		return cur.cancel()
	}); err != nil {
		return err
	}
	s.sessions.Delete(sessionID)
	return nil
}
