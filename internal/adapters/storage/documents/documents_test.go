package documents

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"petcare/internal/adapters/docstore/memory"
	"petcare/internal/adapters/docstore/sqldoc"
	"petcare/internal/domain/illness"
	"petcare/internal/domain/lookup"
	"petcare/internal/domain/owners"
	"petcare/internal/domain/pets"
	"petcare/internal/ports/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type backend struct {
	name string
	open func(t *testing.T) docstore.Store
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) docstore.Store {
			s := memory.New()
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
		{"sqlite", func(t *testing.T) docstore.Store {
			db, err := sqldoc.Open(sqldoc.SQLite, filepath.Join(t.TempDir(), "petcare.db"))
			require.NoError(t, err)
			require.NoError(t, sqldoc.Migrate(context.Background(), db, sqldoc.SQLite))
			s := sqldoc.New(db, sqldoc.SQLite, sqldoc.WithPollInterval(10*time.Millisecond))
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
	}
}

func TestPaths(t *testing.T) {
	p := NewPaths("default-app-id")
	assert.Equal(t, "artifacts/default-app-id/users", p.Users())
	assert.Equal(t, "artifacts/default-app-id/users/u1/profile/data", p.Profile("u1"))
	assert.Equal(t, "artifacts/default-app-id/users/u1/animals/p1", p.Animal("u1", "p1"))
	assert.Equal(t, "artifacts/default-app-id/users/u1/animals/p1/illnessRecords/r1", p.IllnessRecord("u1", "p1", "r1"))
}

func TestOwnersRepo(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewOwnersRepo(b.open(t), NewPaths("app"))

			_, err := repo.Get(ctx, "owner-b")
			assert.ErrorIs(t, err, owners.ErrNotFound)

			created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			require.NoError(t, repo.Create(ctx, owners.Profile{ID: "owner-b", Email: "b@x.co", Role: owners.RoleVeterinarian, CreatedAt: created}))
			require.NoError(t, repo.Create(ctx, owners.Profile{ID: "owner-a", Email: "a@x.co", Role: owners.RoleUser}))
			assert.ErrorIs(t, repo.Create(ctx, owners.Profile{ID: "owner-a"}), owners.ErrAlreadyRegistered)

			p, err := repo.Get(ctx, "owner-b")
			require.NoError(t, err)
			assert.Equal(t, "b@x.co", p.Email)
			assert.Equal(t, owners.RoleVeterinarian, p.Role)
			assert.Equal(t, int64(0), p.LastHNNumber)
			assert.True(t, created.Equal(p.CreatedAt))

			require.NoError(t, repo.UpdateDetails(ctx, "owner-b", "new@x.co", owners.RoleUser))
			p, err = repo.Get(ctx, "owner-b")
			require.NoError(t, err)
			assert.Equal(t, "new@x.co", p.Email)
			assert.Equal(t, owners.RoleUser, p.Role)

			assert.ErrorIs(t, repo.UpdateDetails(ctx, "ghost-1", "x", owners.RoleUser), owners.ErrNotFound)

			ids, err := repo.ListIDs(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"owner-a", "owner-b"}, ids)
		})
	}
}

func TestOwnersRepo_CreateNeverResetsCounter(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewOwnersRepo(b.open(t), NewPaths("app"))

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				created int
			)
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := repo.Create(ctx, owners.Profile{ID: "AB12xyz", Role: owners.RoleUser})
					if err == nil {
						mu.Lock()
						created++
						mu.Unlock()
						return
					}
					assert.ErrorIs(t, err, owners.ErrAlreadyRegistered)
				}()
			}
			wg.Wait()
			assert.Equal(t, 1, created)

			ok, err := repo.AdvanceHN(ctx, "AB12xyz", 0, 1)
			require.NoError(t, err)
			require.True(t, ok)

			// un alta tardía no vuelve a poner el contador en 0
			assert.ErrorIs(t, repo.Create(ctx, owners.Profile{ID: "AB12xyz", Role: owners.RoleUser}), owners.ErrAlreadyRegistered)
			last, err := repo.LastHN(ctx, "AB12xyz")
			require.NoError(t, err)
			assert.Equal(t, int64(1), last)
		})
	}
}

func TestHNCounter(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewOwnersRepo(b.open(t), NewPaths("app"))

			_, err := repo.LastHN(ctx, "ghost-1")
			assert.ErrorIs(t, err, pets.ErrOwnerNotRegistered)
			_, err = repo.AdvanceHN(ctx, "ghost-1", 0, 1)
			assert.ErrorIs(t, err, pets.ErrOwnerNotRegistered)

			require.NoError(t, repo.Create(ctx, owners.Profile{ID: "owner-1", Role: owners.RoleUser}))

			ok, err := repo.AdvanceHN(ctx, "owner-1", 0, 1)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = repo.AdvanceHN(ctx, "owner-1", 0, 1)
			require.NoError(t, err)
			assert.False(t, ok)

			last, err := repo.LastHN(ctx, "owner-1")
			require.NoError(t, err)
			assert.Equal(t, int64(1), last)
		})
	}
}

func TestPetsFlow_AddListFindLookup(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)
			paths := NewPaths("app")
			ownersRepo := NewOwnersRepo(store, paths)
			petsRepo := NewPetsRepo(store, paths)

			ownerSvc := owners.NewService(ownersRepo)
			petSvc := pets.NewService(petsRepo, ownersRepo)

			_, err := ownerSvc.EnsureProfile(ctx, "AB12xyz9", "o@x.co", "user")
			require.NoError(t, err)
			_, err = ownerSvc.EnsureProfile(ctx, "0000aaaa", "z@x.co", "user")
			require.NoError(t, err)

			now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			var last pets.Pet
			for i := 0; i < 7; i++ {
				now = now.Add(time.Minute)
				svc := pets.NewService(petsRepo, ownersRepo, pets.WithClock(func() time.Time { return now }))
				last, err = svc.AddPet(ctx, "AB12xyz9", pets.CreateInput{Name: "Milo", Species: "dog"})
				require.NoError(t, err)
			}
			assert.Equal(t, "HN-AB12-0007", last.HN)

			items, err := petSvc.ListPets(ctx, "AB12xyz9")
			require.NoError(t, err)
			require.Len(t, items, 7)
			assert.Equal(t, "HN-AB12-0001", items[0].HN)
			assert.Equal(t, "AB12xyz9", items[0].OwnerID)

			got, err := petSvc.GetPet(ctx, "AB12xyz9", last.ID)
			require.NoError(t, err)
			assert.Equal(t, last.HN, got.HN)

			_, err = petSvc.GetPet(ctx, "AB12xyz9", "missing")
			assert.ErrorIs(t, err, pets.ErrNotFound)

			finder := lookup.NewService(ownersRepo, petSvc)
			found, err := finder.FindByHN(ctx, "HN-AB12-0007")
			require.NoError(t, err)
			assert.Equal(t, last.ID, found.ID)
			assert.Equal(t, "AB12xyz9", found.OwnerID)

			_, err = finder.FindByHN(ctx, "HN-AB12-0099")
			assert.ErrorIs(t, err, lookup.ErrNotFound)

			_, err = petSvc.AddPet(ctx, "nobody-1", pets.CreateInput{Name: "x", Species: "cat"})
			assert.ErrorIs(t, err, pets.ErrOwnerNotRegistered)
		})
	}
}

func TestPetsRepo_Watch(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			store := b.open(t)
			repo := NewPetsRepo(store, NewPaths("app"))

			sub, err := repo.Watch(ctx, "owner-1")
			require.NoError(t, err)
			defer sub.Close()

			first := receivePets(t, sub)
			assert.Empty(t, first)

			_, err = repo.Create(ctx, pets.Pet{OwnerID: "owner-1", Name: "Milo", HN: "HN-OWNE-0001", CreatedAt: time.Now().UTC()})
			require.NoError(t, err)

			require.Eventually(t, func() bool {
				select {
				case items := <-sub.Snapshots():
					return len(items) == 1 && items[0].Name == "Milo"
				default:
					return false
				}
			}, 2*time.Second, 5*time.Millisecond)

			sub.Close()
			sub.Close()
			assert.NoError(t, sub.Err())
		})
	}
}

func TestIllnessRepo(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			repo := NewIllnessRepo(b.open(t), NewPaths("app"))

			base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
			for i, s := range []string{"first", "second", "third"} {
				_, err := repo.Create(ctx, illness.Record{
					OwnerID:     "owner-1",
					PetID:       "pet-1",
					Observation: illness.Observation{Symptoms: s, Temperature: "39", HeartRate: ""},
					Diagnosis:   "Thai: x\nEnglish: y",
					Timestamp:   base.Add(time.Duration(i) * time.Hour),
				})
				require.NoError(t, err)
			}

			items, err := repo.List(ctx, "owner-1", "pet-1")
			require.NoError(t, err)
			require.Len(t, items, 3)
			assert.Equal(t, "third", items[0].Symptoms)
			assert.Equal(t, "first", items[2].Symptoms)
			assert.Empty(t, items[0].HeartRate)
			assert.True(t, base.Add(2*time.Hour).Equal(items[0].Timestamp))

			got, err := repo.Get(ctx, "owner-1", "pet-1", items[1].ID)
			require.NoError(t, err)
			assert.Equal(t, "second", got.Symptoms)

			_, err = repo.Get(ctx, "owner-1", "pet-1", "missing")
			assert.ErrorIs(t, err, illness.ErrNotFound)

			other, err := repo.List(ctx, "owner-1", "pet-2")
			require.NoError(t, err)
			assert.Empty(t, other)
		})
	}
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil, pets.ErrNotFound, pets.ErrStoreUnavailable))
	assert.ErrorIs(t, mapErr(docstore.ErrNotFound, pets.ErrNotFound, pets.ErrStoreUnavailable), pets.ErrNotFound)
	assert.ErrorIs(t, mapErr(docstore.ErrUnavailable, pets.ErrNotFound, pets.ErrStoreUnavailable), pets.ErrStoreUnavailable)
	assert.ErrorIs(t, mapErr(docstore.ErrNotFound, nil, pets.ErrStoreUnavailable), pets.ErrStoreUnavailable)
	assert.ErrorIs(t, mapErr(context.Canceled, nil, pets.ErrStoreUnavailable), context.Canceled)
}

func receivePets(t *testing.T, sub pets.Subscription) []pets.Pet {
	t.Helper()
	select {
	case items, ok := <-sub.Snapshots():
		require.True(t, ok)
		return items
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot")
		return nil
	}
}
