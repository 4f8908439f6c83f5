package repository

import (
	"context"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/Domenick1991/servicehub/internal/store"
)

type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier matches on email or id, the way sessions and logins
	// refer to users.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type StoreUserRepository struct {
	users *store.Collection[domain.User]
}

func NewUserRepository(s store.Store, prefix string) UserRepository {
	return &StoreUserRepository{users: store.NewCollection[domain.User](s, prefix, store.CollectionUsers)}
}

func (r *StoreUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.users.Read(ctx)
}

func (r *StoreUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	users, err := r.users.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *StoreUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	users, err := r.users.Read(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == identifier || users[i].ID == identifier {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create appends user unless its email is already registered. The check and
// the append happen under the collection lock.
func (r *StoreUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.users.Update(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Email == user.Email {
				return nil, ErrEmailExists
			}
		}
		return append(users, *user), nil
	})
}

var _ UserRepository = (*StoreUserRepository)(nil)
