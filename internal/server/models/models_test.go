package models

import (
	"testing"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductFromRequest_Defaults(t *testing.T) {
	p := ProductFromRequest("s1", api.ProductRequest{
		Title: "Lamp",
		Price: decimal.RequireFromString("19.99"),
	})

	assert.Equal(t, "s1", p.SellerID)
	assert.Equal(t, DefaultProductCategory, p.Category)
	assert.Equal(t, DefaultProductQuantity, p.Quantity)
	assert.NotNil(t, p.Features)
	assert.NotNil(t, p.Specifications)
	assert.NotNil(t, p.Images)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestUser_ToAPI(t *testing.T) {
	u := &User{ID: "u1", Email: "a@b.com", PasswordHash: "secret", AccountType: api.AccountTypeUnset}
	out := u.ToAPI()
	assert.Nil(t, out.Profile)
	assert.Equal(t, api.AccountTypeUnset, out.AccountType)

	u.Profile = &Profile{Phone: "555", BusinessName: "Ana Shop"}
	out = u.ToAPI()
	if assert.NotNil(t, out.Profile) {
		assert.Equal(t, "555", out.Profile.Phone)
		assert.Equal(t, "Ana Shop", out.Profile.BusinessName)
	}
}

func TestProduct_ToAPI_Seller(t *testing.T) {
	p := ProductFromRequest("s1", api.ProductRequest{Title: "Lamp", Shipping: true})
	p.SellerName = "Ana"

	out := p.ToAPI()
	if assert.NotNil(t, out.Seller) {
		assert.Equal(t, api.Seller{ID: "s1", Name: "Ana"}, *out.Seller)
	}
	assert.True(t, out.Shipping)
}
