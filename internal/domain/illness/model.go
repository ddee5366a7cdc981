package illness

import (
	"strings"
	"time"
)

// Observation es lo que el owner o el veterinario anota antes del diagnóstico.
// Los signos vitales son texto libre; vacío = no medido.
type Observation struct {
	Symptoms         string
	Temperature      string
	HeartRate        string
	RespiratoryRate  string
	BloodPressure    string
	OxygenSaturation string
	// Image es la foto en base64, sin prefijo data:.
	Image string
}

func (o Observation) hasSymptomsOrImage() bool {
	return strings.TrimSpace(o.Symptoms) != "" || strings.TrimSpace(o.Image) != ""
}

// Record es un episodio guardado bajo animals/{petId}/illnessRecords.
// No se edita ni se borra.
type Record struct {
	ID      string
	OwnerID string
	PetID   string

	Observation

	Diagnosis string
	Treatment string
	Timestamp time.Time
}

type SaveInput struct {
	Observation
	Diagnosis string
	Treatment string
}

// Summary es el texto del diagnóstico anterior a la primera etiqueta "Thai:".
// Es lo que muestra el historial.
func Summary(diagnosis string) string {
	before, _, _ := strings.Cut(diagnosis, "Thai:")
	return strings.TrimSpace(before)
}
