package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Domenick1991/servicehub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_ReadAbsentIsEmpty(t *testing.T) {
	c := NewCollection[domain.Booking](NewMemoryStore(), "sh_", CollectionBookings)

	records, err := c.Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCollection_WriteReplacesWholeCollection(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	c := NewCollection[domain.Provider](s, "sh_", CollectionProviders)

	require.NoError(t, c.Write(ctx, []domain.Provider{{ID: "p1"}, {ID: "p2"}}))
	require.NoError(t, c.Write(ctx, []domain.Provider{{ID: "p3"}}))

	records, err := c.Read(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "p3", records[0].ID)

	raw, err := s.Get(ctx, "sh_providers")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"p3"`)
}

func TestCollection_WriteNilStoresEmptyArray(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	c := NewCollection[domain.ContactMessage](s, "sh_", CollectionContacts)

	require.NoError(t, c.Write(ctx, nil))
	raw, err := s.Get(ctx, "sh_contacts")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestCollection_CorruptDataFailsClosed(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "sh_users", []byte(`{not json`)))

	c := NewCollection[domain.User](s, "sh_", CollectionUsers)
	_, err := c.Read(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, ErrStorage)

	err = c.Update(ctx, func(records []domain.User) ([]domain.User, error) {
		return append(records, domain.User{ID: "u1"}), nil
	})
	assert.ErrorIs(t, err, ErrCorrupt)

	raw, err := s.Get(ctx, "sh_users")
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(raw))
}

func TestCollection_UpdateErrorWritesNothing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	c := NewCollection[domain.User](s, "sh_", CollectionUsers)
	require.NoError(t, c.Write(ctx, []domain.User{{ID: "u1"}}))

	boom := errors.New("boom")
	err := c.Update(ctx, func(records []domain.User) ([]domain.User, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	records, err := c.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCollection_ConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Separate Collection values share the lock for the same key.
			c := NewCollection[domain.Booking](s, "sh_", CollectionBookings)
			err := c.Update(ctx, func(records []domain.Booking) ([]domain.Booking, error) {
				return append(records, domain.Booking{ID: fmt.Sprintf("b%d", i)}), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := NewCollection[domain.Booking](s, "sh_", CollectionBookings).Read(ctx)
	require.NoError(t, err)
	assert.Len(t, records, writers)
}
