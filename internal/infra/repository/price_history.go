package repository

import (
	"context"

	"ops-console/internal/infra"
	"ops-console/internal/infra/db"
	"ops-console/internal/usecase/shared"
)

// PriceHistoryRepository appends to the immutable price change log. Rows are
// never updated or deleted.
type PriceHistoryRepository struct {
	db db.DBTX
}

func NewPriceHistoryRepository(dbtx db.DBTX) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: dbtx}
}

func (r *PriceHistoryRepository) Insert(ctx context.Context, entry shared.PriceHistoryEntry) error {
	const q = `INSERT INTO price_history (outlet_id, item_id, old_price, new_price, changed_by, reason)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, q,
		entry.OutletID, entry.ItemID, entry.OldPrice, entry.NewPrice, entry.ChangedBy, entry.Reason)
	if err != nil {
		return infra.WrapRepoErr("failed to insert price history entry", err)
	}
	return nil
}
