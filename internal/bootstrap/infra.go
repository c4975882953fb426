package bootstrap

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/campusbook/sections-ui/config"
	redisslot "github.com/campusbook/sections-ui/internal/adapters/redis"
	"github.com/campusbook/sections-ui/internal/session"
)

// NewIdentitySlot connects the Redis-backed identity slot. When Redis is
// unreachable the portal still has to come up, so it degrades to an
// in-memory slot with a warning: the session then lives only until the
// process exits.
func NewIdentitySlot(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (session.IdentitySlot, func()) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, session will not persist across restarts",
			"addr", cfg.Addr, "error", err)
		if cerr := client.Close(); cerr != nil {
			logger.Warn("close redis after failed ping", "error", cerr)
		}
		return session.NewMemorySlot(), func() {}
	}

	slot := redisslot.NewIdentitySlotWithKey(client, cfg.SlotKey)
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("close redis failed", "error", err)
		}
	}
	return slot, closeFn
}
