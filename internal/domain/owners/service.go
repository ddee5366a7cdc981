package owners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcare/internal/domain/hn"
	"petcare/internal/platform/logger"
	"petcare/internal/ports/auth"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("owner profile not found")
	ErrAlreadyRegistered     = errors.New("owner profile already exists")
	ErrStoreUnavailable      = errors.New("owner store unavailable")
	ErrIdentityNotConfigured = errors.New("identity provider not configured")
	ErrRoleLocked            = errors.New("profile role cannot be changed")
)

type Service struct {
	repo     Repository
	identity auth.IdentityProvider
	log      logger.Logger
	now      func() time.Time
}

type Option func(*Service)

func WithIdentity(p auth.IdentityProvider) Option { return func(s *Service) { s.identity = p } }
func WithLogger(l logger.Logger) Option { return func(s *Service) { s.log = l } }
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// Register crea la cuenta en el proveedor de identidad y luego el perfil.
// Si el perfil no se puede escribir la cuenta queda creada; el usuario puede
// completar el perfil con EnsureProfile después de ingresar.
func (s *Service) Register(ctx context.Context, in RegisterInput) (auth.Session, Profile, error) {
	if s.identity == nil {
		return auth.Session{}, Profile{}, ErrIdentityNotConfigured
	}
	role, ok := ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		return auth.Session{}, Profile{}, fmt.Errorf("%w: role", ErrInvalidInput)
	}
	email := strings.TrimSpace(in.Email)

	sess, err := s.identity.SignUp(ctx, email, in.Password)
	if err != nil {
		return auth.Session{}, Profile{}, err
	}

	p, err := s.create(ctx, sess.UserID, email, role)
	if err != nil {
		s.log.Error("profile write failed after sign-up", map[string]any{
			"owner_id": sess.UserID,
			"err":      err,
		})
		return sess, Profile{}, err
	}
	return sess, p, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (auth.Session, error) {
	if s.identity == nil {
		return auth.Session{}, ErrIdentityNotConfigured
	}
	return s.identity.SignIn(ctx, strings.TrimSpace(email), password)
}

// EnsureProfile crea el perfil si falta o actualiza el email si existe.
// El rol se fija al crear el perfil: pedir otro rol sobre un perfil
// existente devuelve ErrRoleLocked. Rol vacío = user al crear, sin cambio después.
func (s *Service) EnsureProfile(ctx context.Context, ownerID, email, role string) (Profile, error) {
	ownerID = strings.TrimSpace(ownerID)
	role = strings.TrimSpace(role)
	r, ok := ParseRole(role)
	if ownerID == "" || !ok {
		return Profile{}, ErrInvalidInput
	}
	email = strings.TrimSpace(email)

	existing, err := s.repo.Get(ctx, ownerID)
	if errors.Is(err, ErrNotFound) {
		p, cerr := s.create(ctx, ownerID, email, r)
		if !errors.Is(cerr, ErrAlreadyRegistered) {
			return p, cerr
		}
		// otro request lo creó entre Get y Create
		existing, err = s.repo.Get(ctx, ownerID)
	}
	if err != nil {
		return Profile{}, err
	}

	if role != "" && r != existing.Role {
		return Profile{}, ErrRoleLocked
	}
	if err := s.repo.UpdateDetails(ctx, ownerID, email, existing.Role); err != nil {
		return Profile{}, err
	}
	existing.Email = email
	return existing, nil
}

func (s *Service) Get(ctx context.Context, ownerID string) (Profile, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, ownerID)
}

// IsVeterinarian devuelve false (sin error) para owners sin perfil.
func (s *Service) IsVeterinarian(ctx context.Context, ownerID string) (bool, error) {
	p, err := s.Get(ctx, ownerID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsVeterinarian(), nil
}

func (s *Service) create(ctx context.Context, ownerID, email string, role Role) (Profile, error) {
	// el id tiene que poder generar HN
	if _, err := hn.OwnerTag(ownerID); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p := Profile{
		ID:           ownerID,
		Email:        email,
		Role:         role,
		LastHNNumber: 0,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}
