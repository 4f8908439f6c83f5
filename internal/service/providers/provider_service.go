package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/repository"
	"github.com/rs/zerolog/log"
)

var ErrProviderNotFound = errors.New("provider not found")

type ProviderUseCase interface {
	List(ctx context.Context) ([]domain.Provider, error)
	Search(ctx context.Context, query, category string) ([]domain.Provider, error)
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	Verify(ctx context.Context, id string) (*domain.Provider, error)
}

type ProviderCache interface {
	GetProviders(ctx context.Context) ([]domain.Provider, error)
	SetProviders(ctx context.Context, providers []domain.Provider) error
	InvalidateProviders(ctx context.Context) error
}

type ProviderService struct {
	repo  repository.ProviderRepository
	cache ProviderCache
}

// NewProviderService takes an optional cache; pass nil to read straight
// from the store.
func NewProviderService(repo repository.ProviderRepository, cache ProviderCache) *ProviderService {
	return &ProviderService{repo: repo, cache: cache}
}

func (s *ProviderService) List(ctx context.Context) ([]domain.Provider, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetProviders(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	providers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetProviders(ctx, providers); err != nil {
			log.Warn().Err(err).Msg("cache providers")
		}
	}
	return providers, nil
}

// Search filters by a case-insensitive substring of name or category and,
// when category is set, by exact category.
func (s *ProviderService) Search(ctx context.Context, query, category string) ([]domain.Provider, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]domain.Provider, 0, len(all))
	for _, p := range all {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ProviderService) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return p, nil
}

// Verify is idempotent; there is no way back to unverified.
func (s *ProviderService) Verify(ctx context.Context, id string) (*domain.Provider, error) {
	p, err := s.repo.SetVerified(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateProviders(ctx); err != nil {
			log.Warn().Err(err).Msg("invalidate providers cache")
		}
	}
	log.Info().Str("provider_id", id).Msg("provider verified")
	return p, nil
}

var _ ProviderUseCase = (*ProviderService)(nil)
