package storage

import (
	"context"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	c *Collection[domain.User, *domain.User]
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(store ports.KeyValueStore, opts Options) *UserRepository {
	return &UserRepository{c: NewCollection[domain.User](CollectionUsers, store, opts)}
}

func (r *UserRepository) Create(ctx context.Context, f domain.UserFields) (*domain.User, error) {
	return r.c.Insert(ctx, domain.NewUser(f))
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.c.All(ctx), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.c.Find(ctx, id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, ok, err := r.c.Modify(ctx, id, patch.Apply)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.c.Remove(ctx, id)
}

// Seed stores samples as the initial collection unless it already exists.
func (r *UserRepository) Seed(ctx context.Context, samples []domain.UserFields) (bool, error) {
	recs := make([]domain.User, 0, len(samples))
	for _, f := range samples {
		recs = append(recs, domain.NewUser(f))
	}
	return r.c.Seed(ctx, recs)
}
