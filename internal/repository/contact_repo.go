package repository

import (
	"context"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/store"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
	List(ctx context.Context) ([]domain.ContactMessage, error)
}

type StoreContactRepository struct {
	contacts *store.Collection[domain.ContactMessage]
}

func NewContactRepository(s store.Store, prefix string) ContactRepository {
	return &StoreContactRepository{contacts: store.NewCollection[domain.ContactMessage](s, prefix, store.CollectionContacts)}
}

func (r *StoreContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	return r.contacts.Update(ctx, func(contacts []domain.ContactMessage) ([]domain.ContactMessage, error) {
		return append(contacts, *msg), nil
	})
}

func (r *StoreContactRepository) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return r.contacts.Read(ctx)
}

var _ ContactRepository = (*StoreContactRepository)(nil)
