package illness

import (
	"fmt"
	"strings"

	"petcare/internal/domain/pets"
)

const (
	notSpecified = "Not specified"

	imageClue = "\n\nAnalyze the provided image for any additional clues related to the symptoms."

	responseFormat = `
Please provide 1-2 possible preliminary diagnoses and short advice for the pet owner.
The response should be structured as follows:
Thai: [Your diagnosis and advice in Thai]
English: [Your diagnosis and advice in English]
Emphasize that this is a preliminary diagnosis and a veterinarian should be consulted.
`
)

func TranslationPrompt(symptoms string) string {
	return `Translate the following Thai text to English: "` + symptoms + `"`
}

// CleanTranslation recorta la respuesta y quita las comillas que suele
// devolver el modelo alrededor del texto.
func CleanTranslation(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

// DiagnosisPrompt arma el pedido bilingüe: identidad de la mascota, síntomas
// en los dos idiomas, signos vitales y el formato de respuesta esperado.
func DiagnosisPrompt(p pets.Pet, obs Observation, englishSymptoms string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "For a pet named %s (HN: %s, Species: %s, Breed: %s, Sex: %s), observed symptoms are:\n",
		p.Name, p.HN, p.Species, p.Breed, p.Sex)
	fmt.Fprintf(&b, "Thai: \"%s\"\n", obs.Symptoms)
	fmt.Fprintf(&b, "English: \"%s\"\n", englishSymptoms)
	fmt.Fprintf(&b, "Temperature: %s.\n", orNotSpecified(obs.Temperature))
	b.WriteString("Additional device data:\n")
	fmt.Fprintf(&b, "Heart Rate: %s\n", orNotSpecified(obs.HeartRate))
	fmt.Fprintf(&b, "Respiratory Rate: %s\n", orNotSpecified(obs.RespiratoryRate))
	fmt.Fprintf(&b, "Blood Pressure: %s\n", orNotSpecified(obs.BloodPressure))
	fmt.Fprintf(&b, "Oxygen Saturation: %s\n", orNotSpecified(obs.OxygenSaturation))
	if strings.TrimSpace(obs.Image) != "" {
		b.WriteString(imageClue)
	}
	b.WriteString(responseFormat)
	return b.String()
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return strings.TrimSpace(s)
}
