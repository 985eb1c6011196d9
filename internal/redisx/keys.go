package redisx

import "time"

const (
	// Snapshot listing pickup per user: pickups:{user_id} -> JSON []Pickup
	KeyUserPickups = "pickups:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLPickupList = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
)
