package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/infrastructure/db/memory"
)

// stepClock advances by one second on every call.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

// flakyStore fails reads or writes on demand.
type flakyStore struct {
	*memory.Store
	getErr error
	setErr error
	sets   int
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.Store.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets++
	return s.Store.Set(ctx, key, value)
}

func testOptions() Options {
	clock := &stepClock{t: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	return Options{Clock: clock.Now, Logger: zerolog.Nop()}
}

func TestUserRepository_CreateThenGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memory.NewStore(), testOptions())

	created, err := repo.Create(ctx, domain.UserFields{Name: "Jean", Email: "jean@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Jean", got.Name)
	require.Equal(t, "jean@x.com", got.Email)
	require.Equal(t, domain.RoleAdmin, got.Role)
	require.Equal(t, created.ID, got.ID)
	require.True(t, got.CreatedAt.Equal(created.CreatedAt))
	require.True(t, got.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUserRepository_UpdateMergesAndRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memory.NewStore(), testOptions())

	created, err := repo.Create(ctx, domain.UserFields{Name: "Jean", Email: "jean@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	role := domain.RoleManager
	updated, err := repo.Update(ctx, created.ID, domain.UserPatch{Role: &role})
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, updated.Role)
	require.Equal(t, "Jean", updated.Name)
	require.Equal(t, "jean@x.com", updated.Email)
	require.Equal(t, created.ID, updated.ID)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	require.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleManager, got.Role)
	require.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
}

func TestUserRepository_UpdateUnknownIDWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.NewStore()}
	repo := NewUserRepository(store, testOptions())

	_, err := repo.Create(ctx, domain.UserFields{Name: "Jean", Email: "jean@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)
	writes := store.sets

	name := "Ghost"
	_, err = repo.Update(ctx, "missing", domain.UserPatch{Name: &name})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.Equal(t, writes, store.sets)
}

func TestUserRepository_DeleteIsHardAndIdempotent(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.NewStore()}
	repo := NewUserRepository(store, testOptions())

	created, err := repo.Create(ctx, domain.UserFields{Name: "Jean", Email: "jean@x.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	ok, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	writes := store.sets
	ok, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, writes, store.sets)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestProductRepository_CountAfterCreatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(memory.NewStore(), testOptions())

	var ids []string
	for i := 0; i < 7; i++ {
		p, err := repo.Create(ctx, domain.ProductFields{
			Name:        fmt.Sprintf("p%d", i),
			Description: "d",
			Price:       float64(i) + 1,
			Category:    "c",
			Stock:       i,
		})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	for _, id := range ids[:3] {
		ok, err := repo.Delete(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, p := range all {
		require.Equal(t, ids[i+3], p.ID, "stored order must be insertion order")
	}
}

func TestProductRepository_IDsAreUnique(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(memory.NewStore(), Options{Logger: zerolog.Nop()})

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		p, err := repo.Create(ctx, domain.ProductFields{Name: "p", Description: "d", Price: 1, Category: "c"})
		require.NoError(t, err)
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %s", p.ID)
		seen[p.ID] = struct{}{}
	}
}

func TestCollection_UpdateCannotRewriteEnvelope(t *testing.T) {
	ctx := context.Background()
	c := NewCollection[domain.User](CollectionUsers, memory.NewStore(), testOptions())

	created, err := c.Insert(ctx, domain.User{Name: "Jean"})
	require.NoError(t, err)

	updated, ok, err := c.Modify(ctx, created.ID, func(u *domain.User) {
		u.ID = "forged"
		u.CreatedAt = time.Time{}
		u.Name = "Jeanne"
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, created.ID, updated.ID)
	require.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	require.Equal(t, "Jeanne", updated.Name)
}

func TestCollection_MissingKeyIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewUserRepository(store, testOptions())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, all)
	require.Empty(t, all)

	_, found, err := store.Get(ctx, DefaultKeyPrefix+CollectionUsers)
	require.NoError(t, err)
	require.False(t, found, "reads must not create the key")
}

func TestCollection_CorruptedPayloadIsEmpty(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStoreWith(map[string]string{
		DefaultKeyPrefix + CollectionUsers: "{not json",
	})
	repo := NewUserRepository(store, testOptions())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	created, err := repo.Create(ctx, domain.UserFields{Name: "Jean", Email: "jean@x.com", Role: domain.RoleUser})
	require.NoError(t, err)

	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, created.ID, all[0].ID)
}

func TestCollection_ReadFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.NewStore(), getErr: errors.New("connection refused")}
	repo := NewUserRepository(store, testOptions())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	_, err = repo.GetByID(ctx, "any")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCollection_WriteFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	quota := errors.New("quota exceeded")
	store := &flakyStore{Store: memory.NewStore()}
	repo := NewUserRepository(store, testOptions())

	created, err := repo.Create(ctx, domain.UserFields{Name: "Jean", Email: "jean@x.com", Role: domain.RoleUser})
	require.NoError(t, err)

	store.setErr = quota
	_, err = repo.Create(ctx, domain.UserFields{Name: "Marie", Email: "marie@x.com", Role: domain.RoleUser})
	require.ErrorIs(t, err, quota)

	name := "Jeanne"
	_, err = repo.Update(ctx, created.ID, domain.UserPatch{Name: &name})
	require.ErrorIs(t, err, quota)

	_, err = repo.Delete(ctx, created.ID)
	require.ErrorIs(t, err, quota)

	store.setErr = nil
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Jean", all[0].Name)
}

func TestCollection_WritePathLoadFailurePropagates(t *testing.T) {
	ctx := context.Background()
	down := errors.New("connection refused")
	store := &flakyStore{Store: memory.NewStore(), getErr: down}
	repo := NewUserRepository(store, testOptions())

	_, err := repo.Create(ctx, domain.UserFields{Name: "Jean", Email: "jean@x.com", Role: domain.RoleUser})
	require.ErrorIs(t, err, down)
	require.Zero(t, store.sets)
}

func TestCollection_KeyPrefix(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	opts := testOptions()
	opts.KeyPrefix = "tenant42_"
	repo := NewProductRepository(store, opts)

	_, err := repo.Create(ctx, domain.ProductFields{Name: "p", Description: "d", Price: 1, Category: "c"})
	require.NoError(t, err)

	raw, found, err := store.Get(ctx, "tenant42_products")
	require.NoError(t, err)
	require.True(t, found)
	require.Contains(t, raw, `"createdAt"`)
	require.Contains(t, raw, `"price":1`)
}

var sampleUsers = []domain.UserFields{
	{Name: "Jean Dupont", Email: "jean.dupont@email.com", Role: domain.RoleAdmin},
	{Name: "Marie Martin", Email: "marie.martin@email.com", Role: domain.RoleUser},
	{Name: "Pierre Bernard", Email: "pierre.bernard@email.com", Role: domain.RoleManager},
}

func TestUserRepository_SeedOnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(memory.NewStore(), testOptions())

	ok, err := repo.Seed(ctx, sampleUsers)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Seed(ctx, sampleUsers)
	require.NoError(t, err)
	require.False(t, ok)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	seen := make(map[string]struct{})
	for i, u := range all {
		require.Equal(t, sampleUsers[i].Name, u.Name)
		require.NotEmpty(t, u.ID)
		seen[u.ID] = struct{}{}
	}
	require.Len(t, seen, 3)
}

func TestUserRepository_SeedSkipsEmptiedCollection(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStoreWith(map[string]string{DefaultKeyPrefix + CollectionUsers: "[]"})
	repo := NewUserRepository(store, testOptions())

	ok, err := repo.Seed(ctx, sampleUsers)
	require.NoError(t, err)
	require.False(t, ok)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestUserRepository_SeedFailureLeavesKeyAbsent(t *testing.T) {
	ctx := context.Background()
	quota := errors.New("quota exceeded")
	store := &flakyStore{Store: memory.NewStore(), setErr: quota}
	repo := NewUserRepository(store, testOptions())

	_, err := repo.Seed(ctx, sampleUsers)
	require.ErrorIs(t, err, quota)

	_, found, err := store.Store.Get(ctx, DefaultKeyPrefix+CollectionUsers)
	require.NoError(t, err)
	require.False(t, found)

	store.setErr = nil
	ok, err := repo.Seed(ctx, sampleUsers)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

// slowStore delays reads so concurrent seeders overlap.
type slowStore struct {
	*memory.Store
}

func (s slowStore) Get(ctx context.Context, key string) (string, bool, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Get(ctx, key)
}

func TestUserRepository_ConcurrentSeedWritesOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(slowStore{memory.NewStore()}, Options{Logger: zerolog.Nop()})

	const workers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		seeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Seed(ctx, sampleUsers)
			require.NoError(t, err)
			if ok {
				mu.Lock()
				seeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, seeded)
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
