package ports

import (
	"context"

	"github.com/99minutos/record-admin/internal/core/domain"
)

// Repository is the capability set shared by every record kind.
//
// R is the stored record, F the creation fields and P the partial update.
type Repository[R any, F any, P any] interface {
	// Create assigns id and timestamps, appends the record and persists
	// the whole collection.
	Create(ctx context.Context, fields F) (*R, error)
	// GetAll returns every record in stored order. A collection that was
	// never written is empty.
	GetAll(ctx context.Context) ([]R, error)
	// GetByID returns the record or the kind's not-found error.
	GetByID(ctx context.Context, id string) (*R, error)
	// Update merges patch over the stored record and refreshes UpdatedAt.
	// Nothing is written when id is unknown.
	Update(ctx context.Context, id string, patch P) (*R, error)
	// Delete removes the record. It reports false, without writing, when
	// id is unknown.
	Delete(ctx context.Context, id string) (bool, error)
	// Seed writes samples as the whole collection when its key has never
	// been written, atomically. It reports whether anything was written.
	Seed(ctx context.Context, samples []F) (bool, error)
}

type UserRepository = Repository[domain.User, domain.UserFields, domain.UserPatch]

type ProductRepository = Repository[domain.Product, domain.ProductFields, domain.ProductPatch]
