package domain

import (
	"errors"
	"math"
	"strings"
)

var ErrInvalidCategory = errors.New("invalid product category")

type ProductCategory string

const (
	CategoryGuitars     ProductCategory = "guitarras"
	CategoryBasses      ProductCategory = "bajos"
	CategoryDrums       ProductCategory = "baterias"
	CategoryKeyboards   ProductCategory = "teclados"
	CategoryAudio       ProductCategory = "audio"
	CategoryAccessories ProductCategory = "accesorios"
)

var productCategories = []ProductCategory{
	CategoryGuitars,
	CategoryBasses,
	CategoryDrums,
	CategoryKeyboards,
	CategoryAudio,
	CategoryAccessories,
}

// ProductCategories returns the closed set in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(productCategories))
	copy(out, productCategories)
	return out
}

func ParseProductCategory(s string) (ProductCategory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range productCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

type ProductCondition string

const (
	ConditionNew  ProductCondition = "nuevo"
	ConditionUsed ProductCondition = "usado"
)

type Product struct {
	ID            string           `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name" validate:"required,min=2"`
	Description   string           `json:"description,omitempty"`
	Brand         string           `json:"brand,omitempty"`
	Category      ProductCategory  `json:"category" validate:"required"`
	Price         float64          `json:"price" validate:"gte=0"`
	PreviousPrice *float64         `json:"previous_price,omitempty"`
	Condition     ProductCondition `json:"condition,omitempty" validate:"omitempty,oneof=nuevo usado"`
	Stock         int              `json:"stock" validate:"gte=0"`
	Featured      bool             `json:"featured"`
	Offer         bool             `json:"offer"`
	New           bool             `json:"new"`
	Active        bool             `json:"active"`
	Images        []string         `json:"images,omitempty"`
}

func (p *Product) GetID() string   { return p.ID }
func (p *Product) SetID(id string) { p.ID = id }

// DiscountPercent is the rounded reduction against PreviousPrice, or 0 when
// there is no higher previous price.
func (p Product) DiscountPercent() int {
	if p.PreviousPrice == nil || *p.PreviousPrice <= 0 || *p.PreviousPrice <= p.Price {
		return 0
	}
	return int(math.Round((1 - p.Price/(*p.PreviousPrice)) * 100))
}

func (p Product) InStock() bool { return p.Stock > 0 }
