package roundstore

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/GlebRadaev/steake/internal/game"
)

const keyPrefix = "steake:round:"

// swapScript compares and replaces in one server-side step.
// ARGV: expect present (0/1), old, write (0/1), data, ttl ms.
var swapScript = goredis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if ARGV[1] == '1' then
	if not cur or cur ~= ARGV[2] then return 0 end
elseif cur then
	return 0
end
if ARGV[3] == '0' then
	redis.call('DEL', KEYS[1])
elseif tonumber(ARGV[5]) > 0 then
	redis.call('SET', KEYS[1], ARGV[4], 'PX', ARGV[5])
else
	redis.call('SET', KEYS[1], ARGV[4])
end
return 1
`)

// Redis keeps rounds in redis so they survive restarts and can be shared
// between instances. A zero ttl keeps rounds until settled.
type Redis struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client goredis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Dial connects to addr and verifies the connection within timeout.
func Dial(ctx context.Context, addr, password string, db int, timeout time.Duration) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(c).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, game.ErrRoundNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, keyPrefix+key, data, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

func (r *Redis) Swap(ctx context.Context, key string, old, data []byte) error {
	ok, err := swapScript.Run(ctx, r.client, []string{keyPrefix + key},
		flag(old != nil), old, flag(data != nil), data, r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return err
	}
	if ok == 0 {
		return game.ErrRoundConflict
	}
	return nil
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
