package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *[]entry) func() error {
		return func() error {
			loads++
			*dest = []entry{{ID: 1, Name: "events"}}
			return nil
		}
	}

	var first []entry
	require.NoError(t, Aside(ctx, CategoriesKey, &first, ListTTL, load(&first)))
	assert.True(t, mr.Exists(CategoriesKey))

	var second []entry
	require.NoError(t, Aside(ctx, CategoriesKey, &second, ListTTL, load(&second)))

	assert.Equal(t, 1, loads)
	assert.Equal(t, first, second)
	assert.Equal(t, ListTTL, mr.TTL(CategoriesKey))
}

func TestAside_InvalidateForcesReload(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	key := SubcategoriesKey(7)

	var out []entry
	require.NoError(t, Aside(ctx, key, &out, ListTTL, func() error {
		out = []entry{{ID: 1, Name: "Flyers"}}
		return nil
	}))

	InvalidateSubcategories(ctx, 7)
	assert.False(t, mr.Exists(key))

	require.NoError(t, Aside(ctx, key, &out, ListTTL, func() error {
		out = []entry{{ID: 1, Name: "Brochures"}}
		return nil
	}))
	assert.Equal(t, "Brochures", out[0].Name)
}

func TestAside_LoadErrorIsNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	boom := errors.New("db down")

	var out []entry
	err := Aside(context.Background(), CategoriesKey, &out, ListTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(CategoriesKey))
}

func TestAside_RedisDownFallsBackToLoad(t *testing.T) {
	mr := setupMiniredis(t)
	mr.Close()

	var out []entry
	err := Aside(context.Background(), CategoriesKey, &out, ListTTL, func() error {
		out = []entry{{ID: 2, Name: "billboards"}}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "billboards", out[0].Name)
}

func TestAside_NoClient(t *testing.T) {
	SetClient(nil)

	called := false
	var out []entry
	require.NoError(t, Aside(context.Background(), CategoriesKey, &out, ListTTL, func() error {
		called = true
		return nil
	}))
	assert.True(t, called)
	Invalidate(context.Background(), CategoriesKey)
}
