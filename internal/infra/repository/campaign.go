package repository

import (
	"context"

	"ops-console/internal/infra"
	"ops-console/internal/infra/db"
	"ops-console/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
)

type CampaignRepository struct {
	db db.DBTX
}

func NewCampaignRepository(dbtx db.DBTX) *CampaignRepository {
	return &CampaignRepository{db: dbtx}
}

func (r *CampaignRepository) UpsertDiscount(ctx context.Context, campaignID, itemID int64, discountType string, discountValue decimal.Decimal) error {
	const q = `INSERT INTO campaign_discounts (campaign_id, item_id, discount_type, discount_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (campaign_id, item_id)
		DO UPDATE SET discount_type = EXCLUDED.discount_type, discount_value = EXCLUDED.discount_value`

	if _, err := r.db.Exec(ctx, q, campaignID, itemID, discountType, pgconv.NumericFromDecimal(discountValue)); err != nil {
		return infra.WrapRepoErr("failed to upsert campaign discount", err)
	}
	return nil
}
