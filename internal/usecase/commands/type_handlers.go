package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"ops-console/internal/domain/upload"
	"ops-console/internal/infra"
	"ops-console/internal/pkg/errs"
	"ops-console/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// errRowVanished marks apply-time rows whose underlying entity disappeared
// after the preview was built. It is the only soft, per-row apply failure;
// everything else aborts the transaction.
var errRowVanished = errs.New("row no longer exists")

// typeHandler is the per-upload-type strategy: field validation plus diff
// construction at preview time, and the row mutation at apply time. The
// shared outlet resolution has already run before validateAndDiff is called.
type typeHandler interface {
	validateAndDiff(ctx context.Context, lookups *lookupCache, p buildParams, parsed upload.ParsedRow, row *upload.PreviewRow) error
	apply(ctx context.Context, tx shared.Tx, row upload.PreviewRow, actorID uuid.UUID, reason string) error
}

func handlerFor(t upload.Type) typeHandler {
	switch t {
	case upload.TypeMenuPricesAvailability:
		return menuPricesHandler{}
	case upload.TypeMenuStock:
		return menuStockHandler{}
	default:
		return campaignDiscountsHandler{}
	}
}

// ----------------------------------------------------------------------------
// menuPricesAvailability
// ----------------------------------------------------------------------------

type menuPricesHandler struct{}

func (menuPricesHandler) validateAndDiff(ctx context.Context, lookups *lookupCache, _ buildParams, parsed upload.ParsedRow, row *upload.PreviewRow) error {
	item, msg, err := resolveMenuItem(ctx, lookups, parsed, row.OutletID)
	if err != nil {
		return err
	}
	if msg != "" {
		*row = rejectRow(*row, msg)
		return nil
	}
	row.ItemID = item.ItemID
	row.ItemLabel = itemLabel(item)

	rawPrice, _ := parsed.Get("base_price")
	priceCell, perr := upload.ParseNonNegativeNumberCell(rawPrice)
	if perr != nil || priceCell.IsEmpty() {
		*row = rejectRow(*row, "base_price must be a non-negative number")
		return nil
	}
	// Prices are stored as integers; round once here so the preview shows
	// exactly what apply will write.
	rounded, _ := priceCell.Int()

	rawAvail, _ := parsed.Get("is_available")
	availCell, berr := upload.ParseBoolCell(rawAvail)
	if berr != nil {
		*row = rejectRow(*row, "is_available must be true or false")
		return nil
	}

	// A missing stock column carries the current stock forward unchanged; a
	// present but empty cell clears it.
	stockCell := stockFromSnapshot(item)
	if rawStock, hasStockCol := parsed.Get("stock"); hasStockCol {
		var serr error
		stockCell, serr = upload.ParseNumberCell(rawStock)
		if serr != nil {
			*row = rejectRow(*row, "stock must be a number")
			return nil
		}
	}

	row.Old = upload.Values{
		"base_price":   upload.IntCell(item.BasePrice),
		"is_available": upload.BoolCell(item.IsAvailable),
		"stock":        stockFromSnapshot(item),
	}
	row.New = upload.Values{
		"base_price":   upload.IntCell(rounded),
		"is_available": availCell,
		"stock":        stockCell,
	}
	return nil
}

func (menuPricesHandler) apply(ctx context.Context, tx shared.Tx, row upload.PreviewRow, actorID uuid.UUID, reason string) error {
	// Fresh re-read: the audit "before" must reflect the row as it is now,
	// not as it was when the preview was built.
	fresh, err := tx.Reads().MenuItemByID(ctx, row.OutletID, row.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errRowVanished)
		}
		return err
	}

	newPrice, _ := row.New["base_price"].Int()
	newAvail, _ := row.New["is_available"].Bool()
	newStock := cellToDecimalPtr(row.New["stock"])

	if err := tx.Menu().UpdateItem(ctx, row.OutletID, row.ItemID, newPrice, newAvail, newStock); err != nil {
		return err
	}

	if fresh.BasePrice != newPrice {
		entry := shared.PriceHistoryEntry{
			OutletID:  row.OutletID,
			ItemID:    row.ItemID,
			OldPrice:  fresh.BasePrice,
			NewPrice:  newPrice,
			ChangedBy: actorID,
			Reason:    reason,
		}
		if err := tx.PriceHistory().Insert(ctx, entry); err != nil {
			return err
		}
	}

	before := upload.Values{
		"base_price":   upload.IntCell(fresh.BasePrice),
		"is_available": upload.BoolCell(fresh.IsAvailable),
		"stock":        stockFromSnapshot(fresh),
	}
	return writeAudit(ctx, tx, shared.AuditEntry{
		EntityType: "menu_item",
		EntityID:   menuEntityID(row),
		Action:     "bulk_update_prices_availability",
		ActorID:    actorID,
	}, before, row.New, reason)
}

// ----------------------------------------------------------------------------
// menuStock
// ----------------------------------------------------------------------------

type menuStockHandler struct{}

func (menuStockHandler) validateAndDiff(ctx context.Context, lookups *lookupCache, _ buildParams, parsed upload.ParsedRow, row *upload.PreviewRow) error {
	item, msg, err := resolveMenuItem(ctx, lookups, parsed, row.OutletID)
	if err != nil {
		return err
	}
	if msg != "" {
		*row = rejectRow(*row, msg)
		return nil
	}
	row.ItemID = item.ItemID
	row.ItemLabel = itemLabel(item)

	rawStock, _ := parsed.Get("stock")
	stockCell, serr := upload.ParseNonNegativeNumberCell(rawStock)
	if serr != nil {
		*row = rejectRow(*row, "stock must be a non-negative number")
		return nil
	}

	row.Old = upload.Values{"stock": stockFromSnapshot(item)}
	row.New = upload.Values{"stock": stockCell}
	return nil
}

func (menuStockHandler) apply(ctx context.Context, tx shared.Tx, row upload.PreviewRow, actorID uuid.UUID, reason string) error {
	fresh, err := tx.Reads().MenuItemByID(ctx, row.OutletID, row.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errRowVanished)
		}
		return err
	}

	newStock := cellToDecimalPtr(row.New["stock"])
	if err := tx.Menu().UpdateStock(ctx, row.OutletID, row.ItemID, newStock); err != nil {
		return err
	}

	before := upload.Values{"stock": stockFromSnapshot(fresh)}
	return writeAudit(ctx, tx, shared.AuditEntry{
		EntityType: "menu_item",
		EntityID:   menuEntityID(row),
		Action:     "bulk_update_stock",
		ActorID:    actorID,
	}, before, row.New, reason)
}

// ----------------------------------------------------------------------------
// campaignDiscounts
// ----------------------------------------------------------------------------

var validDiscountTypes = map[string]bool{
	"percent":   true,
	"fixed":     true,
	"new_price": true,
}

type campaignDiscountsHandler struct{}

func (campaignDiscountsHandler) validateAndDiff(ctx context.Context, lookups *lookupCache, p buildParams, parsed upload.ParsedRow, row *upload.PreviewRow) error {
	campaignID, msg := parseRequiredID(parsed, "campaign_id")
	if msg != "" {
		*row = rejectRow(*row, msg)
		return nil
	}
	if p.ContextCampaignID != nil && campaignID != *p.ContextCampaignID {
		*row = rejectRow(*row, fmt.Sprintf("campaign_id %d does not match the selected campaign %d", campaignID, *p.ContextCampaignID))
		return nil
	}

	campaign, err := lookups.campaign(ctx, row.OutletID, campaignID)
	if err != nil {
		return err
	}
	if campaign == nil {
		*row = rejectRow(*row, "Campaign not found")
		return nil
	}
	row.CampaignID = campaignID

	rawItem, _ := parsed.Get("item_id")
	if rawItem == "" {
		*row = rejectRow(*row, "item_id is required")
		return nil
	}
	itemID, ierr := strconv.ParseInt(rawItem, 10, 64)
	if ierr != nil {
		*row = rejectRow(*row, "item_id must be a number")
		return nil
	}
	item, err := lookups.itemByID(ctx, row.OutletID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		*row = rejectRow(*row, "Item not found")
		return nil
	}
	row.ItemID = itemID
	row.ItemLabel = itemLabel(item)

	rawType, _ := parsed.Get("discount_type")
	if !validDiscountTypes[rawType] {
		*row = rejectRow(*row, "discount_type must be one of percent, fixed, new_price")
		return nil
	}

	rawValue, _ := parsed.Get("discount_value")
	valueCell, verr := upload.ParseNonNegativeNumberCell(rawValue)
	if verr != nil || valueCell.IsEmpty() {
		*row = rejectRow(*row, "discount_value must be a non-negative number")
		return nil
	}

	existing, err := lookups.discount(ctx, campaignID, itemID)
	if err != nil {
		return err
	}
	if existing != nil {
		row.Old = upload.Values{
			"discount_type":  upload.TextCell(existing.DiscountType),
			"discount_value": upload.NumberCell(existing.DiscountValue),
		}
	}
	row.New = upload.Values{
		"discount_type":  upload.TextCell(rawType),
		"discount_value": valueCell,
	}
	return nil
}

func (campaignDiscountsHandler) apply(ctx context.Context, tx shared.Tx, row upload.PreviewRow, actorID uuid.UUID, reason string) error {
	discountType := row.New["discount_type"].String()
	discountValue, _ := row.New["discount_value"].Decimal()

	// The upsert is the atomicity boundary here; no fresh re-read is needed,
	// so the audit carries the preview's own old/new.
	if err := tx.Campaigns().UpsertDiscount(ctx, row.CampaignID, row.ItemID, discountType, discountValue); err != nil {
		return err
	}

	return writeAudit(ctx, tx, shared.AuditEntry{
		EntityType: "campaign_discount",
		EntityID:   fmt.Sprintf("%d:%d", row.CampaignID, row.ItemID),
		Action:     "bulk_update_campaign_discounts",
		ActorID:    actorID,
	}, row.Old, row.New, reason)
}

// ----------------------------------------------------------------------------
// shared helpers
// ----------------------------------------------------------------------------

func menuEntityID(row upload.PreviewRow) string {
	return fmt.Sprintf("%d:%d", row.OutletID, row.ItemID)
}

func stockFromSnapshot(item *shared.MenuItemSnapshot) upload.Cell {
	if item.Stock == nil {
		return upload.EmptyCell()
	}
	return upload.NumberCell(*item.Stock)
}

func cellToDecimalPtr(c upload.Cell) *decimal.Decimal {
	d, ok := c.Decimal()
	if !ok {
		return nil
	}
	return &d
}

// writeAudit serializes before/after value sets, attaching the operator's
// reason to the after snapshot, and inserts one audit entry.
func writeAudit(ctx context.Context, tx shared.Tx, entry shared.AuditEntry, before, after upload.Values, reason string) error {
	var err error
	entry.Before, err = marshalValues(before, "")
	if err != nil {
		return err
	}
	entry.After, err = marshalValues(after, reason)
	if err != nil {
		return err
	}
	return tx.Audit().Insert(ctx, entry)
}

func marshalValues(v upload.Values, reason string) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	payload := make(map[string]any, len(v)+1)
	for f, c := range v {
		payload[f] = c
	}
	if reason != "" {
		payload["reason"] = reason
	}
	return json.Marshal(payload)
}
