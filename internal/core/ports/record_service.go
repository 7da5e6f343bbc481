package ports

import (
	"context"
	"io"

	"github.com/99minutos/record-admin/internal/core/domain"
)

// ListQuery narrows a listing. An empty Search returns everything.
type ListQuery struct {
	Search string
}

// Upload is an image file received from the presentation layer.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// UserService defines the back-office use cases for users.
type UserService interface {
	Create(ctx context.Context, fields domain.UserFields) (*domain.User, error)
	List(ctx context.Context, q ListQuery) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	AttachAvatar(ctx context.Context, id string, up Upload) (*domain.User, error)
	ClearAvatar(ctx context.Context, id string) (*domain.User, error)
}

// ProductService defines the back-office use cases for products.
type ProductService interface {
	Create(ctx context.Context, fields domain.ProductFields) (*domain.Product, error)
	List(ctx context.Context, q ListQuery) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	AttachImage(ctx context.Context, id string, up Upload) (*domain.Product, error)
	ClearImage(ctx context.Context, id string) (*domain.Product, error)
}

// Seeder fills never-initialized collections with sample records.
type Seeder interface {
	InitializeSampleData(ctx context.Context) ([]string, error)
}
