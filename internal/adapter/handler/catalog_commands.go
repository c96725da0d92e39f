package handler

import (
	"context"
	"flag"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/core/service"
)

var (
	locationHeaders = []string{"ID", "NAME", "CODE", "TYPE", "MANAGER", "CAPACITY", "STATUS"}
	productHeaders  = []string{"ID", "NAME", "SKU", "CATEGORY", "PRICE", "COST", "VENDOR", "STATUS"}
	vendorHeaders   = []string{"ID", "NAME", "CONTACT", "EMAIL", "CATEGORY", "RATING", "STATUS"}
)

func locationRows(locs ...domain.Location) [][]string {
	rows := make([][]string, 0, len(locs))
	for _, l := range locs {
		rows = append(rows, []string{l.ID, l.Name, l.Code, string(l.Type), l.Manager, strconv.Itoa(l.Capacity), string(l.Status)})
	}
	return rows
}

func productRows(products ...domain.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.ID, p.Name, p.SKU, p.Category, p.Price.StringFixed(2), p.Cost.StringFixed(2), p.Vendor, string(p.Status)})
	}
	return rows
}

func vendorRows(vendors ...domain.Vendor) [][]string {
	rows := make([][]string, 0, len(vendors))
	for _, v := range vendors {
		rows = append(rows, []string{v.ID, v.Name, v.ContactName, v.Email, v.Category, strconv.FormatFloat(v.Rating, 'f', 1, 64), string(v.Status)})
	}
	return rows
}

func (h *CLIHandler) Locations(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "get", "add", "update", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Locations

	switch action {
	case "list":
		fs := newFlagSet("locations list")
		query := fs.String("q", "", "substring to search for")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		locs, err := svc.Search(ctx, *query)
		if err != nil {
			return err
		}
		return h.emit(locs, locationHeaders, locationRows(locs...))

	case "get":
		if err := requireArgs("locations get", rest, 1); err != nil {
			return err
		}
		loc, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.emit(loc, locationHeaders, locationRows(loc))

	case "add", "update":
		id := ""
		if action == "update" {
			if err := requireArgs("locations update", rest, 1); err != nil {
				return err
			}
			id, rest = rest[0], rest[1:]
		}
		patch, err := locationFlags(newFlagSet("locations "+action), rest)
		if err != nil {
			return err
		}

		var loc domain.Location
		if action == "add" {
			loc, err = svc.Add(ctx, locationFromPatch(patch))
		} else {
			loc, err = svc.Update(ctx, id, patch)
		}
		if err != nil {
			return err
		}
		return h.emit(loc, locationHeaders, locationRows(loc))

	default:
		if err := requireArgs("locations delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Delete(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("location", rest[0], ok)
	}
}

func locationFlags(fs *flag.FlagSet, args []string) (service.LocationPatch, error) {
	name := fs.String("name", "", "location name")
	code := fs.String("code", "", "short code, derived from the name when empty")
	typ := fs.String("type", "", "Warehouse, Store or Distribution Center")
	address := fs.String("address", "", "street address")
	manager := fs.String("manager", "", "manager name")
	capacity := fs.Int("capacity", 0, "unit capacity")
	status := fs.String("status", "", "Active or Inactive")

	_, set, err := parseFlags(fs, args)
	if err != nil {
		return service.LocationPatch{}, err
	}

	var p service.LocationPatch
	if set["name"] {
		p.Name = name
	}
	if set["code"] {
		p.Code = code
	}
	if set["type"] {
		t := domain.LocationType(*typ)
		p.Type = &t
	}
	if set["address"] {
		p.Address = address
	}
	if set["manager"] {
		p.Manager = manager
	}
	if set["capacity"] {
		p.Capacity = capacity
	}
	if set["status"] {
		s := domain.LocationStatus(*status)
		p.Status = &s
	}
	return p, nil
}

func locationFromPatch(p service.LocationPatch) domain.Location {
	var l domain.Location
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Code != nil {
		l.Code = *p.Code
	}
	if p.Type != nil {
		l.Type = *p.Type
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.Manager != nil {
		l.Manager = *p.Manager
	}
	if p.Capacity != nil {
		l.Capacity = *p.Capacity
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	return l
}

func (h *CLIHandler) Products(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "get", "add", "update", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Products

	switch action {
	case "list":
		fs := newFlagSet("products list")
		query := fs.String("q", "", "substring to search for")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		products, err := svc.Search(ctx, *query)
		if err != nil {
			return err
		}
		return h.emit(products, productHeaders, productRows(products...))

	case "get":
		if err := requireArgs("products get", rest, 1); err != nil {
			return err
		}
		p, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.emit(p, productHeaders, productRows(p))

	case "add", "update":
		id := ""
		if action == "update" {
			if err := requireArgs("products update", rest, 1); err != nil {
				return err
			}
			id, rest = rest[0], rest[1:]
		}
		patch, err := productFlags(newFlagSet("products "+action), rest)
		if err != nil {
			return err
		}

		var p domain.Product
		if action == "add" {
			p, err = svc.Add(ctx, productFromPatch(patch))
		} else {
			p, err = svc.Update(ctx, id, patch)
		}
		if err != nil {
			return err
		}
		return h.emit(p, productHeaders, productRows(p))

	default:
		if err := requireArgs("products delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Delete(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("product", rest[0], ok)
	}
}

func productFlags(fs *flag.FlagSet, args []string) (service.ProductPatch, error) {
	name := fs.String("name", "", "product name")
	sku := fs.String("sku", "", "stock keeping unit, derived from the name when empty")
	category := fs.String("category", "", "category")
	description := fs.String("description", "", "description")
	price := fs.String("price", "0", "sale price")
	cost := fs.String("cost", "0", "unit cost")
	vendor := fs.String("vendor", "", "vendor name")
	status := fs.String("status", "", "Active or Discontinued")

	_, set, err := parseFlags(fs, args)
	if err != nil {
		return service.ProductPatch{}, err
	}

	var p service.ProductPatch
	if set["name"] {
		p.Name = name
	}
	if set["sku"] {
		p.SKU = sku
	}
	if set["category"] {
		p.Category = category
	}
	if set["description"] {
		p.Description = description
	}
	if set["vendor"] {
		p.Vendor = vendor
	}
	if set["status"] {
		s := domain.ProductStatus(*status)
		p.Status = &s
	}
	if set["price"] {
		d, err := decimal.NewFromString(*price)
		if err != nil {
			return service.ProductPatch{}, usageError("invalid price %q", *price)
		}
		p.Price = &d
	}
	if set["cost"] {
		d, err := decimal.NewFromString(*cost)
		if err != nil {
			return service.ProductPatch{}, usageError("invalid cost %q", *cost)
		}
		p.Cost = &d
	}
	return p, nil
}

func productFromPatch(p service.ProductPatch) domain.Product {
	var out domain.Product
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.SKU != nil {
		out.SKU = *p.SKU
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Vendor != nil {
		out.Vendor = *p.Vendor
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Cost != nil {
		out.Cost = *p.Cost
	}
	return out
}

func (h *CLIHandler) Vendors(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "get", "add", "update", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Vendors

	switch action {
	case "list":
		fs := newFlagSet("vendors list")
		query := fs.String("q", "", "substring to search for")
		status := fs.String("status", "", "Active or Inactive")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}

		var vendors []domain.Vendor
		if *status != "" {
			vendors, err = svc.ByStatus(ctx, domain.VendorStatus(*status))
		} else {
			vendors, err = svc.Search(ctx, *query)
		}
		if err != nil {
			return err
		}
		return h.emit(vendors, vendorHeaders, vendorRows(vendors...))

	case "get":
		if err := requireArgs("vendors get", rest, 1); err != nil {
			return err
		}
		v, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.emit(v, vendorHeaders, vendorRows(v))

	case "add", "update":
		id := ""
		if action == "update" {
			if err := requireArgs("vendors update", rest, 1); err != nil {
				return err
			}
			id, rest = rest[0], rest[1:]
		}
		patch, err := vendorFlags(newFlagSet("vendors "+action), rest)
		if err != nil {
			return err
		}

		var v domain.Vendor
		if action == "add" {
			v, err = svc.Add(ctx, vendorFromPatch(patch))
		} else {
			v, err = svc.Update(ctx, id, patch)
		}
		if err != nil {
			return err
		}
		return h.emit(v, vendorHeaders, vendorRows(v))

	default:
		if err := requireArgs("vendors delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Delete(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("vendor", rest[0], ok)
	}
}

func vendorFlags(fs *flag.FlagSet, args []string) (service.VendorPatch, error) {
	name := fs.String("name", "", "vendor name")
	contact := fs.String("contact", "", "contact person")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "postal address")
	category := fs.String("category", "", "category")
	rating := fs.Float64("rating", 0, "rating from 0 to 5")
	status := fs.String("status", "", "Active or Inactive")
	supplied := fs.Int("products", 0, "number of products supplied")

	_, set, err := parseFlags(fs, args)
	if err != nil {
		return service.VendorPatch{}, err
	}

	var p service.VendorPatch
	if set["name"] {
		p.Name = name
	}
	if set["contact"] {
		p.ContactName = contact
	}
	if set["email"] {
		p.Email = email
	}
	if set["phone"] {
		p.Phone = phone
	}
	if set["address"] {
		p.Address = address
	}
	if set["category"] {
		p.Category = category
	}
	if set["rating"] {
		p.Rating = rating
	}
	if set["status"] {
		s := domain.VendorStatus(*status)
		p.Status = &s
	}
	if set["products"] {
		p.ProductsSupplied = supplied
	}
	return p, nil
}

func vendorFromPatch(p service.VendorPatch) domain.Vendor {
	var v domain.Vendor
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.ContactName != nil {
		v.ContactName = *p.ContactName
	}
	if p.Email != nil {
		v.Email = *p.Email
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.Category != nil {
		v.Category = *p.Category
	}
	if p.Rating != nil {
		v.Rating = *p.Rating
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
	if p.ProductsSupplied != nil {
		v.ProductsSupplied = *p.ProductsSupplied
	}
	return v
}
