package illness

import (
	"errors"
	"strings"
	"time"

	"petcare/internal/domain/pets"
)

var (
	ErrSessionNotFound   = errors.New("illness session not found")
	ErrSessionBusy       = errors.New("illness session busy")
	ErrInvalidTransition = errors.New("invalid session transition")
)

// State del flujo de creación de un registro.
// @Enum idle, symptoms_entered, diagnosis_requested, diagnosis_received, saving, saved, report_generated, cancelled
type State string

const (
	StateIdle               State = "idle"
	StateSymptomsEntered    State = "symptoms_entered"
	StateDiagnosisRequested State = "diagnosis_requested"
	StateDiagnosisReceived  State = "diagnosis_received"
	StateSaving             State = "saving"
	StateSaved              State = "saved"
	StateReportGenerated    State = "report_generated"
	StateCancelled          State = "cancelled"
)

// Session guarda el borrador de un registro hasta que se guarda o se cancela.
// Nada se escribe en el store antes de Save.
type Session struct {
	ID       string
	CallerID string
	Pet      pets.Pet

	State       State
	Observation Observation
	Diagnosis   string
	Treatment   string
	Record      *Record

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open indica si la sesión todavía acepta cambios (antes de guardar).
func (s *Session) Open() bool {
	switch s.State {
	case StateIdle, StateSymptomsEntered, StateDiagnosisRequested, StateDiagnosisReceived:
		return true
	}
	return false
}

// busy: hay un diagnóstico o un guardado en curso.
func (s *Session) busy() bool {
	return s.State == StateDiagnosisRequested || s.State == StateSaving
}

func (s *Session) setObservation(obs Observation) error {
	if s.busy() {
		return ErrSessionBusy
	}
	switch s.State {
	case StateIdle, StateSymptomsEntered:
		s.Observation = obs
		if obs.hasSymptomsOrImage() {
			s.State = StateSymptomsEntered
		} else {
			s.State = StateIdle
		}
		return nil
	case StateDiagnosisReceived:
		// el diagnóstico previo queda hasta que se pida otro
		s.Observation = obs
		return nil
	}
	return ErrInvalidTransition
}

func (s *Session) setTreatment(treatment string) error {
	if s.State == StateSaving {
		return ErrSessionBusy
	}
	if !s.Open() {
		return ErrInvalidTransition
	}
	s.Treatment = strings.TrimSpace(treatment)
	return nil
}

func (s *Session) beginDiagnosis() error {
	if s.busy() {
		return ErrSessionBusy
	}
	switch s.State {
	case StateIdle, StateSymptomsEntered, StateDiagnosisReceived:
		s.State = StateDiagnosisRequested
		s.Diagnosis = ""
		return nil
	}
	return ErrInvalidTransition
}

func (s *Session) finishDiagnosis(text string) error {
	if s.State != StateDiagnosisRequested {
		return ErrInvalidTransition
	}
	s.Diagnosis = text
	s.State = StateDiagnosisReceived
	return nil
}

func (s *Session) failDiagnosis() {
	if s.State == StateDiagnosisRequested {
		s.State = StateSymptomsEntered
	}
}

// beginSave reserva la sesión para escribir el registro. Un segundo Save
// mientras tanto recibe ErrSessionBusy.
func (s *Session) beginSave() error {
	switch s.State {
	case StateDiagnosisReceived:
	case StateDiagnosisRequested, StateSaving:
		return ErrSessionBusy
	case StateIdle, StateSymptomsEntered:
		return ErrIncompleteRecord
	default:
		return ErrInvalidTransition
	}
	s.State = StateSaving
	return nil
}

func (s *Session) failSave() {
	if s.State == StateSaving {
		s.State = StateDiagnosisReceived
	}
}

func (s *Session) markSaved(r Record) error {
	if s.State != StateSaving {
		return ErrInvalidTransition
	}
	s.Record = &r
	s.State = StateSaved
	return nil
}

func (s *Session) markReported() error {
	switch s.State {
	case StateSaved, StateReportGenerated:
		s.State = StateReportGenerated
		return nil
	}
	return ErrInvalidTransition
}

func (s *Session) cancel() error {
	if s.State == StateSaving {
		return ErrSessionBusy
	}
	if !s.Open() {
		return ErrInvalidTransition
	}
	s.State = StateCancelled
	s.Observation = Observation{}
	s.Diagnosis = ""
	s.Treatment = ""
	return nil
}
