package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/pkg/metrics"
)

var sampleUsers = []domain.UserFields{
	{Name: "Jean Dupont", Email: "jean.dupont@email.com", Role: domain.RoleAdmin},
	{Name: "Marie Martin", Email: "marie.martin@email.com", Role: domain.RoleUser},
	{Name: "Pierre Bernard", Email: "pierre.bernard@email.com", Role: domain.RoleManager},
}

var sampleProducts = []domain.ProductFields{
	{Name: "Ordinateur Portable", Description: "HP EliteBook 840 G8", Price: 1299.99, Category: "Informatique", Stock: 15},
	{Name: "Smartphone", Description: "Samsung Galaxy S23", Price: 899.99, Category: "Téléphones", Stock: 25},
	{Name: "Casque Audio", Description: "Sony WH-1000XM4", Price: 349.99, Category: "Audio", Stock: 30},
}

// SeedService writes the sample records into collections that have never
// been initialised.
type SeedService struct {
	users    ports.UserRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

var _ ports.Seeder = (*SeedService)(nil)

func NewSeedService(users ports.UserRepository, products ports.ProductRepository, logger zerolog.Logger) *SeedService {
	return &SeedService{
		users:    users,
		products: products,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// InitializeSampleData seeds each collection whose key is absent from the
// store and returns the names of the collections it seeded. Collections that
// exist, even empty ones, are left alone, so repeated calls are no-ops.
func (s *SeedService) InitializeSampleData(ctx context.Context) ([]string, error) {
	var seeded []string

	ok, err := s.users.Seed(ctx, sampleUsers)
	if err != nil {
		return seeded, fmt.Errorf("seed users: %w", err)
	}
	if ok {
		seeded = append(seeded, "users")
		metrics.SeededRecordsTotal.WithLabelValues("users").Add(float64(len(sampleUsers)))
	}

	ok, err = s.products.Seed(ctx, sampleProducts)
	if err != nil {
		return seeded, fmt.Errorf("seed products: %w", err)
	}
	if ok {
		seeded = append(seeded, "products")
		metrics.SeededRecordsTotal.WithLabelValues("products").Add(float64(len(sampleProducts)))
	}

	if len(seeded) > 0 {
		s.logger.Info().Strs("collections", seeded).Msg("sample data initialised")
	} else {
		s.logger.Debug().Msg("sample data already present")
	}
	return seeded, nil
}
