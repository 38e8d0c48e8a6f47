package products

import (
	"strconv"
	"strings"

	"musicstore/internal/domain"
)

// ProductResponse adds derived presentation fields.
type ProductResponse struct {
	domain.Product
	DiscountPercent int  `json:"discount_percent"`
	InStock         bool `json:"in_stock"`
}

func toResponse(p domain.Product) ProductResponse {
	return ProductResponse{Product: p, DiscountPercent: p.DiscountPercent(), InStock: p.InStock()}
}

func toResponses(items []domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(items))
	for i, p := range items {
		out[i] = toResponse(p)
	}
	return out
}

type csvRow struct {
	ID            string  `csv:"id"`
	Slug          string  `csv:"slug"`
	Name          string  `csv:"name"`
	Brand         string  `csv:"brand"`
	Category      string  `csv:"category"`
	Condition     string  `csv:"condition"`
	Price         float64 `csv:"price"`
	PreviousPrice string  `csv:"previous_price"`
	Discount      int     `csv:"discount_percent"`
	Stock         int     `csv:"stock"`
	Featured      bool    `csv:"featured"`
	Offer         bool    `csv:"offer"`
	New           bool    `csv:"new"`
	Active        bool    `csv:"active"`
	Images        string  `csv:"images"`
}

func toCSVRow(p domain.Product) csvRow {
	row := csvRow{
		ID:        p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  string(p.Category),
		Condition: string(p.Condition),
		Price:     p.Price,
		Discount:  p.DiscountPercent(),
		Stock:     p.Stock,
		Featured:  p.Featured,
		Offer:     p.Offer,
		New:       p.New,
		Active:    p.Active,
		Images:    strings.Join(p.Images, "|"),
	}
	if p.PreviousPrice != nil {
		row.PreviousPrice = strconv.FormatFloat(*p.PreviousPrice, 'f', -1, 64)
	}
	return row
}
