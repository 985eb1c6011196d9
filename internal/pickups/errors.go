package pickups

import "errors"

var (
	ErrEmptyPickup     = errors.New("pickup has no items")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidPrice    = errors.New("item price must be positive")
	ErrNotFound        = errors.New("pickup not found")
)
