package contact

import (
	"context"
	"testing"

	"github.com/Domenick1991/servicehub/internal/repository"
	"github.com/Domenick1991/servicehub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactService_Submit(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewContactRepository(store.NewMemoryStore(), "sh_")
	service := NewContactService(repo)

	msg, err := service.Submit(ctx, ContactInput{Name: "Asha", Email: "asha@example.com", Message: "Need a plumber on Sunday"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	_, err = service.Submit(ctx, ContactInput{Message: "anonymous note"})
	require.NoError(t, err)

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "Need a plumber on Sunday", stored[0].Message)
	assert.Equal(t, "anonymous note", stored[1].Message)
	assert.NotEqual(t, stored[0].ID, stored[1].ID)
}

func TestContactService_Submit_EmptyMessage(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewContactRepository(store.NewMemoryStore(), "sh_")
	service := NewContactService(repo)

	for _, message := range []string{"", "   "} {
		_, err := service.Submit(ctx, ContactInput{Name: "Asha", Message: message})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestContactService_Submit_CorruptStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, s.Set(ctx, store.Key("sh_", store.CollectionContacts), []byte("{not json")))
	service := NewContactService(repository.NewContactRepository(s, "sh_"))

	_, err := service.Submit(ctx, ContactInput{Message: "hello"})
	assert.ErrorIs(t, err, store.ErrStorage)
}
