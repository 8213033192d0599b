package booking

import (
	"context"
	"fmt"
	"time"

	"servify/utils"

	"github.com/go-redis/redis/v8"
)

// SlotLeaser is the server-side mutual exclusion for slot holds. The client
// countdown alone cannot stop two sessions from holding one slot; the lease
// can. A lease lives exactly as long as the hold duration.
type SlotLeaser interface {
	// Acquire claims the slot for sessionID. ErrSlotHeld when another
	// session already owns a live lease.
	Acquire(ctx context.Context, slotID, sessionID string, ttl time.Duration) error
	// Release drops the lease, but only when sessionID still owns it.
	Release(ctx context.Context, slotID, sessionID string) error
	// Holder returns the owning session ID, or "" when the slot is free.
	Holder(ctx context.Context, slotID string) (string, error)
}

// RedisSlotLeaser implements SlotLeaser with SETNX + TTL.
type RedisSlotLeaser struct {
	Client *redis.Client
}

func leaseKey(slotID string) string {
	return utils.SlotLeasePrefix + slotID
}

func (l *RedisSlotLeaser) Acquire(ctx context.Context, slotID, sessionID string, ttl time.Duration) error {
	ok, err := l.Client.SetNX(ctx, leaseKey(slotID), sessionID, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to acquire slot lease: %w", err)
	}
	if !ok {
		holder, _ := l.Client.Get(ctx, leaseKey(slotID)).Result()
		if holder == sessionID {
			// Re-select by the same session refreshes the lease.
			if err := l.Client.Set(ctx, leaseKey(slotID), sessionID, ttl).Err(); err != nil {
				return fmt.Errorf("failed to refresh slot lease: %w", err)
			}
			return nil
		}
		return ErrSlotHeld
	}
	return nil
}

func (l *RedisSlotLeaser) Release(ctx context.Context, slotID, sessionID string) error {
	holder, err := l.Client.Get(ctx, leaseKey(slotID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read slot lease: %w", err)
	}
	if holder != sessionID {
		// Someone else re-acquired after our expiry; leave their lease alone.
		return nil
	}
	if err := l.Client.Del(ctx, leaseKey(slotID)).Err(); err != nil {
		return fmt.Errorf("failed to release slot lease: %w", err)
	}
	return nil
}

func (l *RedisSlotLeaser) Holder(ctx context.Context, slotID string) (string, error) {
	holder, err := l.Client.Get(ctx, leaseKey(slotID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read slot lease: %w", err)
	}
	return holder, nil
}
