package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// SlotLeasePrefix is the prefix for server-side slot lease keys.
const SlotLeasePrefix = "slotlease:"

// BookingSessionPrefix is the prefix for booking session keys.
const BookingSessionPrefix = "bsession:"

// CartPrefix is the prefix for cart keys.
const CartPrefix = "cart:"
