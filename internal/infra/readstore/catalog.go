package readstore

import (
	"context"

	"ops-console/internal/infra"
	"ops-console/internal/infra/db"
	"ops-console/internal/pkg/pgconv"
	"ops-console/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

// CatalogReadStore resolves outlets, menu items and campaign discounts for
// the preview builder and the apply engine's re-reads. It is constructed
// over whatever DBTX the caller holds, so the same queries serve both the
// pool and an open transaction.
type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) OutletByID(ctx context.Context, outletID int64) (*shared.OutletSnapshot, error) {
	const q = `SELECT id, name FROM outlets WHERE id = $1`

	var snap shared.OutletSnapshot
	if err := r.db.QueryRow(ctx, q, outletID).Scan(&snap.ID, &snap.Name); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("outlet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get outlet", err)
	}
	return &snap, nil
}

const menuItemColumns = `m.item_id, i.sku, i.name, m.base_price, m.is_available, m.stock
	FROM outlet_menu_items m
	JOIN menu_items i ON i.id = m.item_id`

func (r *CatalogReadStore) MenuItemByID(ctx context.Context, outletID, itemID int64) (*shared.MenuItemSnapshot, error) {
	q := `SELECT ` + menuItemColumns + ` WHERE m.outlet_id = $1 AND m.item_id = $2`
	return r.scanMenuItem(r.db.QueryRow(ctx, q, outletID, itemID))
}

func (r *CatalogReadStore) MenuItemBySKU(ctx context.Context, outletID int64, sku string) (*shared.MenuItemSnapshot, error) {
	q := `SELECT ` + menuItemColumns + ` WHERE m.outlet_id = $1 AND i.sku = $2`
	return r.scanMenuItem(r.db.QueryRow(ctx, q, outletID, sku))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *CatalogReadStore) scanMenuItem(row rowScanner) (*shared.MenuItemSnapshot, error) {
	var (
		snap  shared.MenuItemSnapshot
		stock pgtype.Numeric
	)
	if err := row.Scan(&snap.ItemID, &snap.SKU, &snap.Name, &snap.BasePrice, &snap.IsAvailable, &stock); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("menu item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get menu item", err)
	}

	var err error
	snap.Stock, err = pgconv.DecimalPtrFromNumeric(stock)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert stock", err)
	}
	return &snap, nil
}

func (r *CatalogReadStore) CampaignByID(ctx context.Context, outletID, campaignID int64) (*shared.CampaignSnapshot, error) {
	const q = `SELECT id, outlet_id, name FROM campaigns WHERE id = $1 AND outlet_id = $2`

	var snap shared.CampaignSnapshot
	if err := r.db.QueryRow(ctx, q, campaignID, outletID).Scan(&snap.ID, &snap.OutletID, &snap.Name); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get campaign", err)
	}
	return &snap, nil
}

func (r *CatalogReadStore) CampaignDiscount(ctx context.Context, campaignID, itemID int64) (*shared.DiscountSnapshot, error) {
	const q = `SELECT campaign_id, item_id, discount_type, discount_value
		FROM campaign_discounts WHERE campaign_id = $1 AND item_id = $2`

	var (
		snap  shared.DiscountSnapshot
		value pgtype.Numeric
	)
	if err := r.db.QueryRow(ctx, q, campaignID, itemID).Scan(&snap.CampaignID, &snap.ItemID, &snap.DiscountType, &value); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("campaign discount not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get campaign discount", err)
	}

	v, err := pgconv.DecimalPtrFromNumeric(value)
	if err != nil || v == nil {
		return nil, infra.WrapRepoErr("failed to convert discount value", err)
	}
	snap.DiscountValue = *v
	return &snap, nil
}
