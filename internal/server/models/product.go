package models

import (
	"time"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/shopspring/decimal"
)

const (
	DefaultProductCategory = "other"
	DefaultProductQuantity = 1
)

type Product struct {
	ID               string
	SellerID         string
	SellerName       string
	Title            string
	Description      string
	Price            decimal.Decimal
	Category         string
	Condition        string
	Location         string
	Brand            string
	Model            string
	Color            string
	Quantity         int
	Features         []string
	Specifications   map[string]string
	Negotiable       bool
	Shipping         bool
	Warranty         bool
	WarrantyDuration string
	Images           []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProductFromRequest builds a product owned by sellerID, applying the
// category and quantity defaults.
func ProductFromRequest(sellerID string, r api.ProductRequest) *Product {
	p := &Product{
		SellerID:         sellerID,
		Title:            r.Title,
		Description:      r.Description,
		Price:            r.Price,
		Category:         r.Category,
		Condition:        r.Condition,
		Location:         r.Location,
		Brand:            r.Brand,
		Model:            r.Model,
		Color:            r.Color,
		Quantity:         r.Quantity,
		Features:         r.Features,
		Specifications:   r.Specifications,
		Negotiable:       r.Negotiable,
		Shipping:         r.Shipping,
		Warranty:         r.Warranty,
		WarrantyDuration: r.WarrantyDuration,
		Images:           r.Images,
	}
	if p.Category == "" {
		p.Category = DefaultProductCategory
	}
	if p.Quantity == 0 {
		p.Quantity = DefaultProductQuantity
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Specifications == nil {
		p.Specifications = map[string]string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}

func (p *Product) ToAPI() api.Product {
	return api.Product{
		ID:               p.ID,
		SellerID:         p.SellerID,
		Seller:           &api.Seller{ID: p.SellerID, Name: p.SellerName},
		Title:            p.Title,
		Description:      p.Description,
		Price:            p.Price,
		Category:         p.Category,
		Condition:        p.Condition,
		Location:         p.Location,
		Brand:            p.Brand,
		Model:            p.Model,
		Color:            p.Color,
		Quantity:         p.Quantity,
		Features:         p.Features,
		Specifications:   p.Specifications,
		Negotiable:       p.Negotiable,
		Shipping:         p.Shipping,
		Warranty:         p.Warranty,
		WarrantyDuration: p.WarrantyDuration,
		Images:           p.Images,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
