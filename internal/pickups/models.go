package pickups

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product adalah snapshot katalog, read-only dari sisi storefront.
type Product struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	LongDescription string          `json:"long_description"`
	RoastLevel      string          `json:"roast_level"`
	Origin          string          `json:"origin"`
	FlavorNotes     string          `json:"flavor_notes"`
	Weight          string          `json:"weight"`
}

type PickupItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	// Price adalah snapshot harga saat schedule, bukan harga live produk.
	Price decimal.Decimal `json:"price"`
}

type Pickup struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Status    Status          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []PickupItem    `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemInput adalah isi cart yang dikirim client saat schedule.
// Harga diambil dari katalog di sisi client dan di-snapshot apa adanya.
type ItemInput struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
