package pets

import "time"

// Species define las especies más comunes. El campo es texto libre:
// cualquier otro valor no vacío se acepta tal cual.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet representa el perfil de una mascota registrada bajo un owner.
// HN no cambia una vez asignado.
type Pet struct {
	ID      string
	OwnerID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	HN        string
	CreatedAt time.Time
}
