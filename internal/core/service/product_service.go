package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/record-admin/internal/core/attachment"
	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/pkg/metrics"
)

type ProductService struct {
	repo   ports.ProductRepository
	images *attachment.Encoder
	logger zerolog.Logger
}

var _ ports.ProductService = (*ProductService)(nil)

func NewProductService(repo ports.ProductRepository, images *attachment.Encoder, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		images: images,
		logger: logger.With().Str("component", "product_service").Logger(),
	}
}

func (s *ProductService) Create(ctx context.Context, fields domain.ProductFields) (*domain.Product, error) {
	p, err := s.repo.Create(ctx, fields)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}
	s.logger.Info().Str("id", p.ID).Str("category", p.Category).Msg("product created")
	return p, nil
}

// List returns the products whose name, description or category contains
// q.Search.
func (s *ProductService) List(ctx context.Context, q ports.ListQuery) ([]domain.Product, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if matches(q.Search, p.Name, p.Description, p.Category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", p.ID).Msg("product updated")
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete product")
		return false, err
	}
	if ok {
		s.logger.Info().Str("id", id).Msg("product deleted")
	}
	return ok, nil
}

// AttachImage stores an uploaded image on the product. Uploads that are not
// images leave the product untouched.
func (s *ProductService) AttachImage(ctx context.Context, id string, up ports.Upload) (*domain.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uri, ok, err := s.images.Encode(up.Content)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.AttachmentsTotal.WithLabelValues("products", "ignored").Inc()
		s.logger.Debug().Str("id", id).Str("filename", up.Filename).Msg("non-image upload ignored")
		return current, nil
	}

	metrics.AttachmentsTotal.WithLabelValues("products", "accepted").Inc()
	return s.Update(ctx, id, domain.ProductPatch{Image: &uri})
}

func (s *ProductService) ClearImage(ctx context.Context, id string) (*domain.Product, error) {
	empty := ""
	return s.Update(ctx, id, domain.ProductPatch{Image: &empty})
}
