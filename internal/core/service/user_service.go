package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/record-admin/internal/core/attachment"
	"github.com/99minutos/record-admin/internal/core/domain"
	"github.com/99minutos/record-admin/internal/core/ports"
	"github.com/99minutos/record-admin/internal/pkg/metrics"
)

type UserService struct {
	repo   ports.UserRepository
	images *attachment.Encoder
	logger zerolog.Logger
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(repo ports.UserRepository, images *attachment.Encoder, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		images: images,
		logger: logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *UserService) Create(ctx context.Context, fields domain.UserFields) (*domain.User, error) {
	u, err := s.repo.Create(ctx, fields)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, err
	}
	s.logger.Info().Str("id", u.ID).Str("role", u.Role).Msg("user created")
	return u, nil
}

// List returns the users whose name, email or role contains q.Search.
func (s *UserService) List(ctx context.Context, q ports.ListQuery) ([]domain.User, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(all))
	for _, u := range all {
		if matches(q.Search, u.Name, u.Email, u.Role) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	u, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", u.ID).Msg("user updated")
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete user")
		return false, err
	}
	if ok {
		s.logger.Info().Str("id", id).Msg("user deleted")
	}
	return ok, nil
}

// AttachAvatar stores an uploaded image as the user's avatar. Uploads that
// are not images leave the user untouched.
func (s *UserService) AttachAvatar(ctx context.Context, id string, up ports.Upload) (*domain.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uri, ok, err := s.images.Encode(up.Content)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.AttachmentsTotal.WithLabelValues("users", "ignored").Inc()
		s.logger.Debug().Str("id", id).Str("filename", up.Filename).Msg("non-image avatar ignored")
		return current, nil
	}

	metrics.AttachmentsTotal.WithLabelValues("users", "accepted").Inc()
	return s.Update(ctx, id, domain.UserPatch{Avatar: &uri})
}

func (s *UserService) ClearAvatar(ctx context.Context, id string) (*domain.User, error) {
	empty := ""
	return s.Update(ctx, id, domain.UserPatch{Avatar: &empty})
}
