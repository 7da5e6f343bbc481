package storage

import (
	"context"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
)

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct {
	c *Collection[domain.Product, *domain.Product]
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(store ports.KeyValueStore, opts Options) *ProductRepository {
	return &ProductRepository{c: NewCollection[domain.Product](CollectionProducts, store, opts)}
}

func (r *ProductRepository) Create(ctx context.Context, f domain.ProductFields) (*domain.Product, error) {
	return r.c.Insert(ctx, domain.NewProduct(f))
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	return r.c.All(ctx), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, ok := r.c.Find(ctx, id)
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, ok, err := r.c.Modify(ctx, id, patch.Apply)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.c.Remove(ctx, id)
}

// Seed stores samples as the initial collection unless it already exists.
func (r *ProductRepository) Seed(ctx context.Context, samples []domain.ProductFields) (bool, error) {
	recs := make([]domain.Product, 0, len(samples))
	for _, f := range samples {
		recs = append(recs, domain.NewProduct(f))
	}
	return r.c.Seed(ctx, recs)
}
