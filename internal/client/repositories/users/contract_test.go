package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usershelf/usershelf/internal/client/models"
)

// runStoreContract checks the behaviour every engine must share.
// ordered reports whether FetchAll returns ascending IDs.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store, ordered bool) {
	t.Helper()

	t.Run("empty store", func(t *testing.T) {
		s := newStore(t)
		got, err := s.FetchAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)

		n, err := s.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("upsert twice keeps one entity with latest fields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first := models.User{ID: 7, DisplayName: "Kurtis Weissnat", Handle: "Elwyn.Skiles", Email: "Telly.Hoeger@billy.biz"}
		second := models.User{ID: 7, DisplayName: "Kurtis W.", Handle: "elwyn", Email: "kurtis@example.com"}

		require.NoError(t, s.UpsertAndCommit(ctx, []models.User{first}))
		require.NoError(t, s.UpsertAndCommit(ctx, []models.User{second}))

		got, err := s.FetchAll(ctx)
		require.NoError(t, err)
		require.Equal(t, []models.User{second}, got)
	})

	t.Run("same record twice is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		u := models.User{ID: 1, DisplayName: "Leanne Graham", Handle: "Bret", Email: "Sincere@april.biz"}

		require.NoError(t, s.UpsertAndCommit(ctx, []models.User{u}))
		require.NoError(t, s.UpsertAndCommit(ctx, []models.User{u}))

		got, err := s.FetchAll(ctx)
		require.NoError(t, err)
		require.Equal(t, []models.User{u}, got)
	})

	t.Run("batch with repeated id resolves last wins", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.UpsertAndCommit(ctx, []models.User{
			{ID: 3, DisplayName: "old", Handle: "h", Email: "e"},
			{ID: 3, DisplayName: "new", Handle: "h", Email: "e"},
		}))

		got, err := s.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "new", got[0].DisplayName)
	})

	t.Run("order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.UpsertAndCommit(ctx, []models.User{
			{ID: 3, DisplayName: "c"},
			{ID: 1, DisplayName: "a"},
			{ID: 2, DisplayName: "b"},
		}))

		got, err := s.FetchAll(ctx)
		require.NoError(t, err)
		ids := make([]int64, 0, len(got))
		for _, u := range got {
			ids = append(ids, u.ID)
		}
		if ordered {
			assert.Equal(t, []int64{1, 2, 3}, ids)
		} else {
			assert.Equal(t, []int64{3, 1, 2}, ids)
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.UpsertAndCommit(context.Background(), nil))

		n, err := s.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("count and clear", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.UpsertAndCommit(ctx, []models.User{{ID: 1}, {ID: 2}}))
		n, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		require.NoError(t, s.Clear(ctx))
		got, err := s.FetchAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
