package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/shopnet/internal/api"
	"github.com/dmitrijs2005/shopnet/internal/validation"
	"github.com/shopspring/decimal"
)

const productsPath = "/products"

// Products handles "products [mine|show <id>|add|delete <id>]".
func (a *App) Products(ctx context.Context, args []string) error {
	if !a.enter(productsPath) {
		return nil
	}

	sub := ""
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "", "list":
		return a.listProducts(ctx, false)
	case "mine":
		return a.listProducts(ctx, true)
	case "show":
		if len(args) != 2 {
			a.println("Usage: products show <id>")
			return nil
		}
		return a.showProduct(ctx, args[1])
	case "add":
		return a.addProduct(ctx)
	case "delete":
		if len(args) != 2 {
			a.println("Usage: products delete <id>")
			return nil
		}
		return a.call(ctx, func() error {
			if err := a.api.DeleteProduct(ctx, args[1]); err != nil {
				return err
			}
			a.println("Product deleted")
			return nil
		})
	default:
		a.println("Unknown products command:", sub)
		return nil
	}
}

func (a *App) listProducts(ctx context.Context, mine bool) error {
	var list []api.Product
	err := a.call(ctx, func() (err error) {
		list, err = a.api.ListProducts(ctx, mine)
		return err
	})
	if err != nil {
		return err
	}

	if len(list) == 0 {
		a.println("No products")
		return nil
	}
	for _, p := range list {
		a.println(fmt.Sprintf("%s  %-30s %10s  %s", p.ID, p.Title, p.Price.StringFixed(2), p.Condition))
	}
	return nil
}

func (a *App) showProduct(ctx context.Context, id string) error {
	var p *api.Product
	err := a.call(ctx, func() (err error) {
		p, err = a.api.GetProduct(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	a.println(p.Title)
	a.println(p.Description)
	a.println("Price:", p.Price.StringFixed(2))
	printField(a, "Category", p.Category)
	printField(a, "Condition", p.Condition)
	printField(a, "Location", p.Location)
	printField(a, "Brand", p.Brand)
	a.println("Quantity:", p.Quantity)
	if p.Shipping {
		a.println("Shipping available")
	}
	if p.Seller != nil {
		printField(a, "Seller", p.Seller.Name)
	}
	for _, img := range p.Images {
		a.println("Image:", img)
	}
	return nil
}

func (a *App) addProduct(ctx context.Context) error {
	var req api.ProductRequest
	var err error

	if req.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if req.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}

	price, err := getSimpleText(a.reader, "Price", a.out)
	if err != nil {
		return err
	}
	if req.Price, err = decimal.NewFromString(price); err != nil {
		return errors.New("price must be a number")
	}

	if req.Category, err = getSimpleText(a.reader, "Category", a.out); err != nil {
		return err
	}
	if req.Condition, err = getSimpleText(a.reader, "Condition (new, used, refurbished)", a.out); err != nil {
		return err
	}
	if req.Location, err = getSimpleText(a.reader, "Location", a.out); err != nil {
		return err
	}

	qty, err := getSimpleText(a.reader, "Quantity", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(qty) != "" {
		if req.Quantity, err = strconv.Atoi(qty); err != nil {
			return errors.New("quantity must be a whole number")
		}
	}

	if err := validation.Struct(req).First(); err != nil {
		return err
	}
	if req.Price.IsNegative() {
		return errors.New("price must not be negative")
	}

	var p *api.Product
	err = a.call(ctx, func() (err error) {
		p, err = a.api.CreateProduct(ctx, req)
		return err
	})
	if err != nil {
		return err
	}
	a.println("Product created:", p.ID)
	return nil
}
