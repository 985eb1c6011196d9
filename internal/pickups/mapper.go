package pickups

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// itemRow adalah hasil join pickup_items -> products -> categories.
// Kolom teks produk nullable di skema, category nil kalau join kosong.
type itemRow struct {
	Quantity        int
	Price           decimal.Decimal
	ProductID       uuid.UUID
	ProductName     string
	ProductPrice    decimal.Decimal
	Image           *string
	Description     *string
	LongDescription *string
	RoastLevel      *string
	Origin          *string
	FlavorNotes     *string
	Weight          *string
	CategoryName    *string
}

const unknownCategory = "Unknown"

func mapItemRow(row itemRow) PickupItem {
	category := lo.FromPtr(row.CategoryName)
	if category == "" {
		category = unknownCategory
	}

	return PickupItem{
		Product: Product{
			ID:              row.ProductID,
			Name:            row.ProductName,
			Price:           row.ProductPrice,
			Image:           lo.FromPtr(row.Image),
			Description:     lo.FromPtr(row.Description),
			Category:        category,
			LongDescription: lo.FromPtr(row.LongDescription),
			RoastLevel:      lo.FromPtr(row.RoastLevel),
			Origin:          lo.FromPtr(row.Origin),
			FlavorNotes:     lo.FromPtr(row.FlavorNotes),
			Weight:          lo.FromPtr(row.Weight),
		},
		Quantity: row.Quantity,
		Price:    row.Price,
	}
}
