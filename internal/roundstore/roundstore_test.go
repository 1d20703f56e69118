package roundstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/steake/internal/game"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, ttl), srv
}

func TestStores(t *testing.T) {
	redisStore, _ := newRedisStore(t, 0)

	stores := map[string]game.RoundStore{
		"memory": NewMemory(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "dice:1")
			assert.ErrorIs(t, err, game.ErrRoundNotFound)

			require.NoError(t, store.Set(ctx, "mines:1", []byte(`{"userId":1}`)))
			data, err := store.Get(ctx, "mines:1")
			require.NoError(t, err)
			assert.Equal(t, `{"userId":1}`, string(data))

			require.NoError(t, store.Set(ctx, "mines:1", []byte(`{"userId":1,"gems":2}`)))
			data, err = store.Get(ctx, "mines:1")
			require.NoError(t, err)
			assert.Equal(t, `{"userId":1,"gems":2}`, string(data))

			require.NoError(t, store.Delete(ctx, "mines:1"))
			_, err = store.Get(ctx, "mines:1")
			assert.ErrorIs(t, err, game.ErrRoundNotFound)

			assert.NoError(t, store.Delete(ctx, "mines:1"))
		})
	}
}

func TestSwap(t *testing.T) {
	redisStore, _ := newRedisStore(t, 0)

	stores := map[string]game.RoundStore{
		"memory": NewMemory(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			v1 := []byte(`{"userId":1,"gems":1}`)
			v2 := []byte(`{"userId":1,"gems":2}`)

			require.NoError(t, store.Swap(ctx, "mines:1", nil, v1))
			assert.ErrorIs(t, store.Swap(ctx, "mines:1", nil, v2), game.ErrRoundConflict)

			assert.ErrorIs(t, store.Swap(ctx, "mines:1", v2, nil), game.ErrRoundConflict)
			require.NoError(t, store.Swap(ctx, "mines:1", v1, v2))

			data, err := store.Get(ctx, "mines:1")
			require.NoError(t, err)
			assert.Equal(t, string(v2), string(data))

			assert.ErrorIs(t, store.Swap(ctx, "mines:1", v1, nil), game.ErrRoundConflict)
			require.NoError(t, store.Swap(ctx, "mines:1", v2, nil))
			_, err = store.Get(ctx, "mines:1")
			assert.ErrorIs(t, err, game.ErrRoundNotFound)

			assert.ErrorIs(t, store.Swap(ctx, "mines:1", v2, nil), game.ErrRoundConflict)
			assert.NoError(t, store.Swap(ctx, "dice:1", nil, nil))
		})
	}
}

func TestRedis_SwapKeepsTTL(t *testing.T) {
	store, srv := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Swap(ctx, "mines:3", nil, []byte("{}")))
	assert.Equal(t, time.Minute, srv.TTL(keyPrefix+"mines:3"))
}

func TestMemory_ReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, store.Set(ctx, "k", data))
	data[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestRedis_TTL(t *testing.T) {
	store, srv := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "blackjack:7", []byte("{}")))
	assert.Equal(t, time.Minute, srv.TTL(keyPrefix+"blackjack:7"))

	srv.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "blackjack:7")
	assert.ErrorIs(t, err, game.ErrRoundNotFound)
}

func TestDial(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := Dial(context.Background(), srv.Addr(), "", 0, time.Second)
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	srv.Close()
	_, err = Dial(context.Background(), srv.Addr(), "", 0, 200*time.Millisecond)
	assert.Error(t, err)
}
