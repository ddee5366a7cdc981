package owners

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"petcare/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID      map[string]Profile
	createErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Profile{}}
}

func (r *testRepo) Create(ctx context.Context, p Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byID[p.ID]; ok {
		return ErrAlreadyRegistered
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Get(ctx context.Context, ownerID string) (Profile, error) {
	p, ok := r.byID[ownerID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) UpdateDetails(ctx context.Context, ownerID, email string, role Role) error {
	p, ok := r.byID[ownerID]
	if !ok {
		return ErrNotFound
	}
	p.Email = email
	p.Role = role
	r.byID[ownerID] = p
	return nil
}

func (r *testRepo) ListIDs(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

type testIdentity struct {
	users map[string]string // email -> password
}

func (p *testIdentity) SignUp(ctx context.Context, email, password string) (auth.Session, error) {
	if _, ok := p.users[email]; ok {
		return auth.Session{}, auth.NewError(auth.CodeEmailExists)
	}
	if len(password) < 6 {
		return auth.Session{}, auth.NewError(auth.CodeWeakPassword)
	}
	p.users[email] = password
	return auth.Session{UserID: "uid-" + email, Email: email, IDToken: "tok"}, nil
}

func (p *testIdentity) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	if pw, ok := p.users[email]; !ok || pw != password {
		return auth.Session{}, auth.NewError(auth.CodeInvalidCredentials)
	}
	return auth.Session{UserID: "uid-" + email, Email: email, IDToken: "tok"}, nil
}

func TestService_Register_CreatesProfileWithZeroCounter(t *testing.T) {
	repo := newTestRepo()
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc := NewService(repo,
		WithIdentity(&testIdentity{users: map[string]string{}}),
		WithClock(func() time.Time { return now }),
	)

	sess, p, err := svc.Register(context.Background(), RegisterInput{
		Email:    " vet@example.com ",
		Password: "secret1",
		Role:     "veterinarian",
	})
	require.NoError(t, err)

	assert.Equal(t, "uid-vet@example.com", sess.UserID)
	assert.Equal(t, sess.UserID, p.ID)
	assert.Equal(t, RoleVeterinarian, p.Role)
	assert.Equal(t, int64(0), p.LastHNNumber)
	assert.Equal(t, now, p.CreatedAt)
	assert.Contains(t, repo.byID, sess.UserID)
}

func TestService_Register_ProviderErrorsPassThrough(t *testing.T) {
	idp := &testIdentity{users: map[string]string{"a@b.co": "secret1"}}
	svc := NewService(newTestRepo(), WithIdentity(idp))

	_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret1"})
	var aerr *auth.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, auth.CodeEmailExists, aerr.Code)

	_, _, err = svc.Register(context.Background(), RegisterInput{Email: "new@b.co", Password: "123"})
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, auth.CodeWeakPassword, aerr.Code)
}

func TestService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewService(newTestRepo(), WithIdentity(&testIdentity{users: map[string]string{}}))
	_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret1", Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_WithoutIdentity(t *testing.T) {
	svc := NewService(newTestRepo())

	_, _, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.co", Password: "secret1"})
	assert.ErrorIs(t, err, ErrIdentityNotConfigured)

	_, err = svc.Login(context.Background(), "a@b.co", "secret1")
	assert.ErrorIs(t, err, ErrIdentityNotConfigured)
}

func TestService_Login(t *testing.T) {
	svc := NewService(newTestRepo(), WithIdentity(&testIdentity{users: map[string]string{"a@b.co": "secret1"}}))

	sess, err := svc.Login(context.Background(), " a@b.co", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.IDToken)

	_, err = svc.Login(context.Background(), "a@b.co", "wrong")
	var aerr *auth.Error
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "อีเมลหรือรหัสผ่านไม่ถูกต้อง / Incorrect email or password.", aerr.Message)
}

func TestService_EnsureProfile_CreateThenUpdateKeepsCounter(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.EnsureProfile(context.Background(), "owner-1", "a@b.co", "")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, p.Role)

	// simula HN ya asignados
	stored := repo.byID["owner-1"]
	stored.LastHNNumber = 7
	repo.byID["owner-1"] = stored

	p, err = svc.EnsureProfile(context.Background(), "owner-1", "c@d.co", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.LastHNNumber)
	assert.Equal(t, "c@d.co", p.Email)
	assert.Equal(t, RoleUser, repo.byID["owner-1"].Role)
}

func TestService_EnsureProfile_RoleIsFixedAfterCreate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.EnsureProfile(context.Background(), "owner-1", "a@b.co", "user")
	require.NoError(t, err)

	_, err = svc.EnsureProfile(context.Background(), "owner-1", "a@b.co", "veterinarian")
	assert.ErrorIs(t, err, ErrRoleLocked)
	assert.Equal(t, RoleUser, repo.byID["owner-1"].Role)

	// mismo rol: se acepta
	p, err := svc.EnsureProfile(context.Background(), "owner-1", "new@b.co", "user")
	require.NoError(t, err)
	assert.Equal(t, "new@b.co", p.Email)
}

// staleRepo responde NotFound en el primer Get aunque el perfil ya exista,
// como cuando otro request lo crea entre la lectura y la escritura.
type staleRepo struct {
	*testRepo
	missed bool
}

func (r *staleRepo) Get(ctx context.Context, ownerID string) (Profile, error) {
	if !r.missed {
		r.missed = true
		return Profile{}, ErrNotFound
	}
	return r.testRepo.Get(ctx, ownerID)
}

func TestService_EnsureProfile_ConcurrentCreateKeepsCounter(t *testing.T) {
	base := newTestRepo()
	base.byID["owner-1"] = Profile{ID: "owner-1", Email: "a@b.co", Role: RoleVeterinarian, LastHNNumber: 1}
	svc := NewService(&staleRepo{testRepo: base})

	p, err := svc.EnsureProfile(context.Background(), "owner-1", "a@b.co", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.LastHNNumber)
	assert.Equal(t, RoleVeterinarian, p.Role)
	assert.Equal(t, int64(1), base.byID["owner-1"].LastHNNumber)
}

func TestService_EnsureProfile_RejectsShortIDs(t *testing.T) {
	svc := NewService(newTestRepo())
	_, err := svc.EnsureProfile(context.Background(), "abc", "a@b.co", "user")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_IsVeterinarian(t *testing.T) {
	repo := newTestRepo()
	repo.byID["vet-0001"] = Profile{ID: "vet-0001", Role: RoleVeterinarian}
	repo.byID["user-0001"] = Profile{ID: "user-0001", Role: RoleUser}
	svc := NewService(repo)

	ok, err := svc.IsVeterinarian(context.Background(), "vet-0001")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsVeterinarian(context.Background(), "user-0001")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.IsVeterinarian(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("admin")
	assert.False(t, ok)
}
