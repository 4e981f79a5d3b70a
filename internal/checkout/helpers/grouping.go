package helpers

import (
	"sort"

	"github.com/greenbasket/greenbasket-backend/pkg/db/models"
)

// VendorGroup is the slice of a cart belonging to one vendor. Each
// group becomes its own order.
type VendorGroup struct {
	VendorID string
	Items    []models.CartItem
}

// GroupByVendor splits cart items into per-vendor groups. Groups come
// back ordered by vendor id so processing order is deterministic.
func GroupByVendor(items []models.CartItem) []VendorGroup {
	byVendor := make(map[string][]models.CartItem)
	for _, item := range items {
		byVendor[item.VendorID] = append(byVendor[item.VendorID], item)
	}

	vendorIDs := make([]string, 0, len(byVendor))
	for id := range byVendor {
		vendorIDs = append(vendorIDs, id)
	}
	sort.Strings(vendorIDs)

	groups := make([]VendorGroup, 0, len(vendorIDs))
	for _, id := range vendorIDs {
		groups = append(groups, VendorGroup{VendorID: id, Items: byVendor[id]})
	}
	return groups
}
