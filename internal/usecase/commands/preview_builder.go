package commands

import (
	"context"
	"fmt"
	"strconv"

	"ops-console/internal/domain/upload"
	"ops-console/internal/infra"
	"ops-console/internal/usecase/shared"
)

// buildParams carries one preview build request. Context ids pin every row
// to the outlet/campaign screen the upload was launched from.
type buildParams struct {
	Type              upload.Type
	Rows              []upload.ParsedRow
	ContextOutletID   *int64
	ContextCampaignID *int64
}

// buildPreview validates and diffs every parsed row against current state.
// It is side-effect free: all failures become ERROR rows, never mutations.
// Lookups are memoized for the duration of one build only.
func buildPreview(ctx context.Context, reads shared.CatalogReads, p buildParams) ([]upload.PreviewRow, upload.PreviewSummary, error) {
	lookups := newLookupCache(reads)
	handler := handlerFor(p.Type)

	rows := make([]upload.PreviewRow, 0, len(p.Rows))
	for _, parsed := range p.Rows {
		row, err := buildRow(ctx, lookups, handler, p, parsed)
		if err != nil {
			return nil, upload.PreviewSummary{}, err
		}
		rows = append(rows, row)
	}

	return rows, upload.Summarize(rows), nil
}

// buildRow runs the shared resolution sequence, then hands off to the
// type-specific handler. Each row ends in exactly one terminal status; the
// first failed check wins. A non-nil error means the underlying store
// failed, which aborts the whole build.
func buildRow(ctx context.Context, lookups *lookupCache, handler typeHandler, p buildParams, parsed upload.ParsedRow) (upload.PreviewRow, error) {
	row := upload.PreviewRow{RowNumber: parsed.RowNumber, Status: upload.StatusOK}

	outletID, msg := parseRequiredID(parsed, "outlet_id")
	if msg != "" {
		return rejectRow(row, msg), nil
	}
	row.OutletID = outletID

	if p.ContextOutletID != nil && outletID != *p.ContextOutletID {
		return rejectRow(row, fmt.Sprintf("outlet_id %d does not match the selected outlet %d", outletID, *p.ContextOutletID)), nil
	}

	outlet, err := lookups.outlet(ctx, outletID)
	if err != nil {
		return row, err
	}
	if outlet == nil {
		return rejectRow(row, "Outlet not found"), nil
	}

	if err := handler.validateAndDiff(ctx, lookups, p, parsed, &row); err != nil {
		return row, err
	}

	if row.Status != upload.StatusOK {
		return row, nil
	}

	if row.New.Equal(row.Old) {
		row.Status = upload.StatusWarning
		row.Message = "no changes"
	}

	row.OldSummary = row.Old.Summary()
	row.NewSummary = row.New.Summary()
	return row, nil
}

func rejectRow(row upload.PreviewRow, msg string) upload.PreviewRow {
	row.Status = upload.StatusError
	row.Message = msg
	return row
}

// parseRequiredID reads a numeric id column; returns a rejection message on
// failure.
func parseRequiredID(parsed upload.ParsedRow, col string) (int64, string) {
	raw, _ := parsed.Get(col)
	if raw == "" {
		return 0, col + " is required"
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, col + " must be a number"
	}
	return id, ""
}

// resolveMenuItem finds the outlet-scoped menu row by item_id, falling back
// to sku lookup for menu-type uploads. Returns either a snapshot or a
// rejection message.
func resolveMenuItem(ctx context.Context, lookups *lookupCache, parsed upload.ParsedRow, outletID int64) (*shared.MenuItemSnapshot, string, error) {
	rawID, _ := parsed.Get("item_id")
	rawSKU, _ := parsed.Get("sku")

	switch {
	case rawID != "":
		itemID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, "item_id must be a number", nil
		}
		item, err := lookups.itemByID(ctx, outletID, itemID)
		if err != nil {
			return nil, "", err
		}
		if item == nil {
			return nil, "Item not found", nil
		}
		return item, "", nil
	case rawSKU != "":
		item, err := lookups.itemBySKU(ctx, outletID, rawSKU)
		if err != nil {
			return nil, "", err
		}
		if item == nil {
			return nil, "Item not found", nil
		}
		return item, "", nil
	default:
		return nil, "item_id or sku is required", nil
	}
}

func itemLabel(item *shared.MenuItemSnapshot) string {
	if item.Name != "" {
		return item.Name
	}
	return fmt.Sprintf("Item %d", item.ItemID)
}

// lookupCache memoizes outlet/item/campaign lookups within one build. A
// stored nil means "looked up, does not exist". The cache never outlives a
// single buildPreview call.
type lookupCache struct {
	reads shared.CatalogReads

	outlets    map[int64]*shared.OutletSnapshot
	itemsByID  map[[2]int64]*shared.MenuItemSnapshot
	itemsBySKU map[skuKey]*shared.MenuItemSnapshot
	campaigns  map[[2]int64]*shared.CampaignSnapshot
	discounts  map[[2]int64]*shared.DiscountSnapshot
}

type skuKey struct {
	outletID int64
	sku      string
}

func newLookupCache(reads shared.CatalogReads) *lookupCache {
	return &lookupCache{
		reads:      reads,
		outlets:    make(map[int64]*shared.OutletSnapshot),
		itemsByID:  make(map[[2]int64]*shared.MenuItemSnapshot),
		itemsBySKU: make(map[skuKey]*shared.MenuItemSnapshot),
		campaigns:  make(map[[2]int64]*shared.CampaignSnapshot),
		discounts:  make(map[[2]int64]*shared.DiscountSnapshot),
	}
}

// squashNotFound folds KindNotFound into a nil snapshot so callers can treat
// absence as row data instead of an error.
func squashNotFound[T any](snap *T, err error) (*T, error) {
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return snap, nil
}

func (c *lookupCache) outlet(ctx context.Context, id int64) (*shared.OutletSnapshot, error) {
	if snap, ok := c.outlets[id]; ok {
		return snap, nil
	}
	snap, err := squashNotFound(c.reads.OutletByID(ctx, id))
	if err != nil {
		return nil, err
	}
	c.outlets[id] = snap
	return snap, nil
}

func (c *lookupCache) itemByID(ctx context.Context, outletID, itemID int64) (*shared.MenuItemSnapshot, error) {
	key := [2]int64{outletID, itemID}
	if snap, ok := c.itemsByID[key]; ok {
		return snap, nil
	}
	snap, err := squashNotFound(c.reads.MenuItemByID(ctx, outletID, itemID))
	if err != nil {
		return nil, err
	}
	c.itemsByID[key] = snap
	return snap, nil
}

func (c *lookupCache) itemBySKU(ctx context.Context, outletID int64, sku string) (*shared.MenuItemSnapshot, error) {
	key := skuKey{outletID: outletID, sku: sku}
	if snap, ok := c.itemsBySKU[key]; ok {
		return snap, nil
	}
	snap, err := squashNotFound(c.reads.MenuItemBySKU(ctx, outletID, sku))
	if err != nil {
		return nil, err
	}
	c.itemsBySKU[key] = snap
	if snap != nil {
		c.itemsByID[[2]int64{outletID, snap.ItemID}] = snap
	}
	return snap, nil
}

func (c *lookupCache) campaign(ctx context.Context, outletID, campaignID int64) (*shared.CampaignSnapshot, error) {
	key := [2]int64{outletID, campaignID}
	if snap, ok := c.campaigns[key]; ok {
		return snap, nil
	}
	snap, err := squashNotFound(c.reads.CampaignByID(ctx, outletID, campaignID))
	if err != nil {
		return nil, err
	}
	c.campaigns[key] = snap
	return snap, nil
}

func (c *lookupCache) discount(ctx context.Context, campaignID, itemID int64) (*shared.DiscountSnapshot, error) {
	key := [2]int64{campaignID, itemID}
	if snap, ok := c.discounts[key]; ok {
		return snap, nil
	}
	snap, err := squashNotFound(c.reads.CampaignDiscount(ctx, campaignID, itemID))
	if err != nil {
		return nil, err
	}
	c.discounts[key] = snap
	return snap, nil
}
