package owners

import "time"

// Role define el rol del owner en la app.
// @Enum user, veterinarian
type Role string

const (
	RoleUser         Role = "user"
	RoleVeterinarian Role = "veterinarian"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "", RoleUser:
		return RoleUser, true
	case RoleVeterinarian:
		return RoleVeterinarian, true
	default:
		return "", false
	}
}

// Profile es el documento de perfil de un owner (users/{id}/profile/data).
// LastHNNumber solo lo mueve la asignación de HN.
type Profile struct {
	ID           string
	Email        string
	Role         Role
	LastHNNumber int64
	CreatedAt    time.Time
}

func (p Profile) IsVeterinarian() bool { return p.Role == RoleVeterinarian }
