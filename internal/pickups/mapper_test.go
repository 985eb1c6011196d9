package pickups

import (
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMapItemRow(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name string
		row  itemRow
		want PickupItem
	}{
		{
			name: "all fields set",
			row: itemRow{
				Quantity:        2,
				Price:           decimal.RequireFromString("12.50"),
				ProductID:       productID,
				ProductName:     "Kintamani Natural",
				ProductPrice:    decimal.RequireFromString("13.00"),
				Image:           lo.ToPtr("kintamani.jpg"),
				Description:     lo.ToPtr("Bright and fruity"),
				LongDescription: lo.ToPtr("Single origin from Bali highlands"),
				RoastLevel:      lo.ToPtr("light"),
				Origin:          lo.ToPtr("Bali, Indonesia"),
				FlavorNotes:     lo.ToPtr("citrus, honey"),
				Weight:          lo.ToPtr("250g"),
				CategoryName:    lo.ToPtr("Single Origin"),
			},
			want: PickupItem{
				Product: Product{
					ID:              productID,
					Name:            "Kintamani Natural",
					Price:           decimal.RequireFromString("13.00"),
					Image:           "kintamani.jpg",
					Description:     "Bright and fruity",
					Category:        "Single Origin",
					LongDescription: "Single origin from Bali highlands",
					RoastLevel:      "light",
					Origin:          "Bali, Indonesia",
					FlavorNotes:     "citrus, honey",
					Weight:          "250g",
				},
				Quantity: 2,
				Price:    decimal.RequireFromString("12.50"),
			},
		},
		{
			name: "missing category defaults to Unknown",
			row: itemRow{
				Quantity:     1,
				Price:        decimal.RequireFromString("8.00"),
				ProductID:    productID,
				ProductName:  "House Blend",
				ProductPrice: decimal.RequireFromString("8.00"),
			},
			want: PickupItem{
				Product: Product{
					ID:       productID,
					Name:     "House Blend",
					Price:    decimal.RequireFromString("8.00"),
					Category: "Unknown",
				},
				Quantity: 1,
				Price:    decimal.RequireFromString("8.00"),
			},
		},
		{
			name: "empty category string also defaults to Unknown",
			row: itemRow{
				Quantity:     3,
				Price:        decimal.RequireFromString("5.25"),
				ProductID:    productID,
				ProductName:  "Decaf",
				ProductPrice: decimal.RequireFromString("5.25"),
				CategoryName: lo.ToPtr(""),
			},
			want: PickupItem{
				Product: Product{
					ID:       productID,
					Name:     "Decaf",
					Price:    decimal.RequireFromString("5.25"),
					Category: "Unknown",
				},
				Quantity: 3,
				Price:    decimal.RequireFromString("5.25"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapItemRow(tt.row)

			// decimal.Decimal punya representasi internal beda untuk nilai sama,
			// jadi bandingkan lewat Equal, sisanya lewat assert biasa.
			assert.True(t, tt.want.Price.Equal(got.Price), "price: want %s got %s", tt.want.Price, got.Price)
			assert.True(t, tt.want.Product.Price.Equal(got.Product.Price))
			assert.Equal(t, tt.want.Quantity, got.Quantity)

			got.Price = tt.want.Price
			got.Product.Price = tt.want.Product.Price
			assert.Equal(t, tt.want, got)
		})
	}
}
