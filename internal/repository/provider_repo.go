package repository

import (
	"context"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/store"
)

type ProviderRepository interface {
	List(ctx context.Context) ([]domain.Provider, error)
	GetByID(ctx context.Context, id string) (*domain.Provider, error)
	SetVerified(ctx context.Context, id string) (*domain.Provider, error)
}

type StoreProviderRepository struct {
	providers *store.Collection[domain.Provider]
}

func NewProviderRepository(s store.Store, prefix string) ProviderRepository {
	return &StoreProviderRepository{providers: store.NewCollection[domain.Provider](s, prefix, store.CollectionProviders)}
}

func (r *StoreProviderRepository) List(ctx context.Context) ([]domain.Provider, error) {
	return r.providers.Read(ctx)
}

func (r *StoreProviderRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	providers, err := r.providers.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range providers {
		if providers[i].ID == id {
			return &providers[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *StoreProviderRepository) SetVerified(ctx context.Context, id string) (*domain.Provider, error) {
	var verified domain.Provider
	err := r.providers.Update(ctx, func(providers []domain.Provider) ([]domain.Provider, error) {
		for i := range providers {
			if providers[i].ID == id {
				providers[i].Verified = true
				verified = providers[i]
				return providers, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &verified, nil
}

var _ ProviderRepository = (*StoreProviderRepository)(nil)
