package tokens

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Shivankitsingh3/School-Management-System/core"
	"github.com/Shivankitsingh3/School-Management-System/core/session"
)

const (
	redisKeyPrefix = "sms:sess:"
	sessionTTL     = 7 * 24 * time.Hour
	opTimeout      = 3 * time.Second
)

// Redis keeps token pairs per browser session id in a Redis hash, for
// web deployments where sessions must survive restarts and be shared
// across instances.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(conf *core.Config) *Redis {
	return NewRedisWithClient(redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	}))
}

func NewRedisWithClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Close() error { return r.rdb.Close() }

// Session returns the keyless store view for one session id.
func (r *Redis) Session(sid string) session.TokenStore {
	return &redisView{rdb: r.rdb, key: redisKeyPrefix + sid}
}

type redisView struct {
	rdb *redis.Client
	key string
}

var _ session.TokenStore = (*redisView)(nil)

func (v *redisView) field(name string) string {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := v.rdb.HGet(ctx, v.key, name).Result()
	if err != nil { // redis.Nil included: no token is just an empty read
		return ""
	}
	return val
}

func (v *redisView) AccessToken() string  { return v.field("access") }
func (v *redisView) RefreshToken() string { return v.field("refresh") }

func (v *redisView) SetTokens(access, refresh string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	pipe := v.rdb.TxPipeline()
	pipe.HSet(ctx, v.key, "access", access, "refresh", refresh)
	pipe.Expire(ctx, v.key, sessionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "persisting token pair")
	}
	return nil
}

func (v *redisView) ClearTokens() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// deleting an absent key is a no-op
	if err := v.rdb.Del(ctx, v.key).Err(); err != nil {
		return errors.Wrap(err, "clearing token pair")
	}
	return nil
}

func (v *redisView) Authenticated() bool { return v.AccessToken() != "" }
