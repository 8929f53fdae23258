package repository

import (
	"context"

	"ops-console/internal/infra"
	"ops-console/internal/infra/db"
	"ops-console/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
)

type MenuRepository struct {
	db db.DBTX
}

func NewMenuRepository(dbtx db.DBTX) *MenuRepository {
	return &MenuRepository{db: dbtx}
}

func (r *MenuRepository) UpdateItem(ctx context.Context, outletID, itemID int64, basePrice int64, isAvailable bool, stock *decimal.Decimal) error {
	const q = `UPDATE outlet_menu_items
		SET base_price = $3, is_available = $4, stock = $5
		WHERE outlet_id = $1 AND item_id = $2`

	tag, err := r.db.Exec(ctx, q, outletID, itemID, basePrice, isAvailable, pgconv.NumericFromDecimalPtr(stock))
	if err != nil {
		return infra.WrapRepoErr("failed to update menu item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("menu item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MenuRepository) UpdateStock(ctx context.Context, outletID, itemID int64, stock *decimal.Decimal) error {
	const q = `UPDATE outlet_menu_items SET stock = $3
		WHERE outlet_id = $1 AND item_id = $2`

	tag, err := r.db.Exec(ctx, q, outletID, itemID, pgconv.NumericFromDecimalPtr(stock))
	if err != nil {
		return infra.WrapRepoErr("failed to update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("menu item not found", nil, infra.KindNotFound)
	}
	return nil
}
