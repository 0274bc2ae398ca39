package redisx

import "time"

const (
	// Idempotency create order: idem:order:create:{external_id} -> order_id
	KeyIdemOrderCreate = "idem:order:create:%s"

	// Cache status order: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Settings read-through cache: setting:{key} -> raw JSON
	KeySetting = "setting:%s"

	// Inventory snapshot refreshed from the product change feed
	KeyInventorySnapshot = "inventory:products"

	// Recent order notifications, newest first
	KeyOrderNotifications = "notify:orders"
)

var (
	TTLIdempotency = 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
	TTLSnapshot    = 10 * time.Minute

	MaxNotifications int64 = 100
)
