package auth

import (
	"context"

	"launchpad-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DestroyAccountSessions removes every session tracked for address along with the tracking set.
func DestroyAccountSessions(ctx context.Context, rdb *redis.Client, address string) {
	if address == "" || rdb == nil {
		return
	}
	key := accountSessionsPrefix + address
	ids, err := rdb.SMembers(ctx, key).Result()
	if err == nil {
		for _, sid := range ids {
			rdb.Del(ctx, middleware.SessionRedisPrefix+sid)
		}
	}
	rdb.Del(ctx, key)
}
