package handler

import (
	"context"
	"flag"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/core/service"
)

var inventoryHeaders = []string{"ID", "NAME", "SKU", "CATEGORY", "LOCATION", "QTY", "PRICE", "STATUS"}

func inventoryRows(items ...domain.InventoryItem) [][]string {
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		rows = append(rows, []string{
			i.ID, i.Name, i.SKU, i.Category, i.Location,
			strconv.Itoa(i.Quantity), i.UnitPrice.StringFixed(2), string(i.Status),
		})
	}
	return rows
}

func (h *CLIHandler) Inventory(ctx context.Context, args []string) error {
	action, rest, err := subcommand(args, "list", "get", "add", "update", "adjust", "take", "delete")
	if err != nil {
		return err
	}
	svc := h.services.Inventory

	switch action {
	case "list":
		fs := newFlagSet("inventory list")
		query := fs.String("q", "", "substring to search for")
		status := fs.String("status", "", "In Stock, Low Stock or Out of Stock")
		if _, _, err := parseFlags(fs, rest); err != nil {
			return err
		}
		if *status != "" && !domain.StockStatus(*status).Valid() {
			return usageError("unknown status %q, want In Stock, Low Stock or Out of Stock", *status)
		}

		var items []domain.InventoryItem
		if *query == "" && *status != "" {
			items, err = svc.ByStatus(ctx, domain.StockStatus(*status))
		} else {
			items, err = svc.Search(ctx, *query)
		}
		if err != nil {
			return err
		}
		if *query != "" && *status != "" {
			items = withStatus(items, domain.StockStatus(*status))
		}
		return h.emit(items, inventoryHeaders, inventoryRows(items...))

	case "get":
		if err := requireArgs("inventory get", rest, 1); err != nil {
			return err
		}
		item, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.emit(item, inventoryHeaders, inventoryRows(item))

	case "add":
		fs := newFlagSet("inventory add")
		patch, err := inventoryFlags(fs, rest)
		if err != nil {
			return err
		}
		item := domain.InventoryItem{}
		applyInventoryPatch(&item, patch)
		added, err := svc.Add(ctx, item)
		if err != nil {
			return err
		}
		return h.emit(added, inventoryHeaders, inventoryRows(added))

	case "update":
		if err := requireArgs("inventory update", rest, 1); err != nil {
			return err
		}
		fs := newFlagSet("inventory update")
		patch, err := inventoryFlags(fs, rest[1:])
		if err != nil {
			return err
		}
		updated, err := svc.Update(ctx, rest[0], patch)
		if err != nil {
			return err
		}
		return h.emit(updated, inventoryHeaders, inventoryRows(updated))

	case "adjust":
		if err := requireArgs("inventory adjust", rest, 2); err != nil {
			return err
		}
		delta, err := strconv.Atoi(rest[1])
		if err != nil {
			return usageError("delta must be an integer, got %q", rest[1])
		}
		updated, err := svc.AdjustQuantity(ctx, rest[0], delta)
		if err != nil {
			return err
		}
		return h.emit(updated, inventoryHeaders, inventoryRows(updated))

	case "take":
		if err := requireArgs("inventory take", rest, 2); err != nil {
			return err
		}
		n, err := strconv.Atoi(rest[1])
		if err != nil {
			return usageError("quantity must be an integer, got %q", rest[1])
		}
		updated, err := svc.Take(ctx, rest[0], n)
		if err != nil {
			return err
		}
		return h.emit(updated, inventoryHeaders, inventoryRows(updated))

	default:
		if err := requireArgs("inventory delete", rest, 1); err != nil {
			return err
		}
		ok, err := svc.Delete(ctx, rest[0])
		if err != nil {
			return err
		}
		return h.deleted("inventory item", rest[0], ok)
	}
}

// inventoryFlags returns a patch holding only the flags given.
func inventoryFlags(fs *flag.FlagSet, args []string) (service.InventoryPatch, error) {
	name := fs.String("name", "", "item name")
	sku := fs.String("sku", "", "stock keeping unit")
	category := fs.String("category", "", "category")
	location := fs.String("location", "", "location name")
	quantity := fs.Int("quantity", 0, "units on hand")
	reorder := fs.Int("reorder", 0, "low stock threshold for this item")
	price := fs.String("price", "0", "unit price")

	_, set, err := parseFlags(fs, args)
	if err != nil {
		return service.InventoryPatch{}, err
	}

	var patch service.InventoryPatch
	if set["name"] {
		patch.Name = name
	}
	if set["sku"] {
		patch.SKU = sku
	}
	if set["category"] {
		patch.Category = category
	}
	if set["location"] {
		patch.Location = location
	}
	if set["quantity"] {
		patch.Quantity = quantity
	}
	if set["reorder"] {
		patch.ReorderPoint = reorder
	}
	if set["price"] {
		d, err := decimal.NewFromString(*price)
		if err != nil {
			return service.InventoryPatch{}, usageError("invalid price %q", *price)
		}
		patch.UnitPrice = &d
	}
	return patch, nil
}

func applyInventoryPatch(i *domain.InventoryItem, p service.InventoryPatch) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.SKU != nil {
		i.SKU = *p.SKU
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Location != nil {
		i.Location = *p.Location
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.ReorderPoint != nil {
		i.ReorderPoint = *p.ReorderPoint
	}
	if p.UnitPrice != nil {
		i.UnitPrice = *p.UnitPrice
	}
}

func withStatus(items []domain.InventoryItem, status domain.StockStatus) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(items))
	for _, i := range items {
		if i.Status == status {
			out = append(out, i)
		}
	}
	return out
}
