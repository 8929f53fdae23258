//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ops-console/internal/domain/upload"
	"ops-console/internal/domain/user"
	"ops-console/internal/usecase/commands"
	"ops-console/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyRequest(p *upload.Preview) commands.ApplyPreviewRequest {
	return commands.ApplyPreviewRequest{PreviewID: p.ID, Reason: "weekly price sync"}
}

func TestApplyPreviewGatekeeping(t *testing.T) {
	t.Run("reason is mandatory", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)

		_, err := f.uc.ApplyPreview(context.Background(), commands.ApplyPreviewRequest{
			PreviewID: p.ID,
			Reason:    "   ",
		}, f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrReasonRequired)

		// Nothing was written
		assert.Empty(t, f.state.audits)
	})

	t.Run("unknown preview id", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)
		f.store.Delete(p.ID)

		_, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrPreviewNotFound)
	})

	t.Run("expired preview cannot be applied", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)

		f.clk.Add(30 * time.Minute)
		_, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrPreviewNotFound)
	})

	t.Run("role is re-checked at apply time", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuPricesAvailability",
			"outlet_id,item_id,base_price,is_available\n1,10,5000,true\n", user.RoleAdmin)

		_, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrRoleNotAllowed)
		assert.Empty(t, f.state.audits)
	})

	t.Run("previews with error rows are rejected before any write", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock",
			"outlet_id,item_id,stock\n1,10,25\n99,10,5\n", user.RoleOperator)
		require.Equal(t, 1, p.Summary.Errors)

		_, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrPreviewHasErrors)

		assert.Empty(t, f.state.audits)
		assert.Equal(t, decPtr("5").String(), f.state.items[[2]int64{1, 10}].Stock.String())
	})

	t.Run("double apply is rejected", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)

		_, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
		require.NoError(t, err)

		_, err = f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
		assert.ErrorIs(t, err, commands.ErrPreviewAlreadyApplied)
		assert.Len(t, f.state.audits, 1)
	})
}

func TestApplyMenuStock(t *testing.T) {
	f := newPreviewFixture(t)
	p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,25\n", user.RoleOperator)

	result, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)

	item := f.state.items[[2]int64{1, 10}]
	require.NotNil(t, item.Stock)
	assert.Equal(t, "25", item.Stock.String())

	require.Len(t, f.state.audits, 1)
	audit := f.state.audits[0]
	assert.Equal(t, "menu_item", audit.EntityType)
	assert.Equal(t, "1:10", audit.EntityID)
	assert.Equal(t, "bulk_update_stock", audit.Action)
	assert.Equal(t, f.actorID, audit.ActorID)

	var after map[string]any
	require.NoError(t, json.Unmarshal(audit.After, &after))
	assert.Equal(t, "weekly price sync", after["reason"])
	assert.EqualValues(t, 25, after["stock"])

	// Stock changes never touch price history
	assert.Empty(t, f.state.priceHistory)
}

func TestApplyMenuPrices(t *testing.T) {
	t.Run("price change writes history", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuPricesAvailability",
			"outlet_id,item_id,base_price,is_available\n1,10,5000,false\n", user.RoleAdmin)

		result, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)

		item := f.state.items[[2]int64{1, 10}]
		assert.Equal(t, int64(5000), item.BasePrice)
		assert.False(t, item.IsAvailable)

		require.Len(t, f.state.priceHistory, 1)
		entry := f.state.priceHistory[0]
		assert.Equal(t, int64(4000), entry.OldPrice)
		assert.Equal(t, int64(5000), entry.NewPrice)
		assert.Equal(t, f.actorID, entry.ChangedBy)
		assert.Equal(t, "weekly price sync", entry.Reason)

		require.Len(t, f.state.audits, 1)
		assert.Equal(t, "bulk_update_prices_availability", f.state.audits[0].Action)
	})

	t.Run("availability-only change skips price history", func(t *testing.T) {
		f := newPreviewFixture(t)
		p := f.createPreview(t, "menuPricesAvailability",
			"outlet_id,item_id,base_price,is_available\n1,10,4000,false\n", user.RoleAdmin)

		_, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleAdmin)
		require.NoError(t, err)

		assert.Empty(t, f.state.priceHistory)
		assert.Len(t, f.state.audits, 1)
	})
}

func TestApplyCampaignDiscounts(t *testing.T) {
	f := newPreviewFixture(t)
	p := f.createPreview(t, "campaignDiscounts",
		"outlet_id,campaign_id,item_id,discount_type,discount_value\n1,100,10,fixed,300\n1,100,11,percent,10\n", user.RoleOperator)

	result, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
	require.NoError(t, err)
	assert.Equal(t, 2, result.SuccessCount)

	updated := f.state.discounts[[2]int64{100, 10}]
	assert.Equal(t, "fixed", updated.DiscountType)
	assert.Equal(t, "300", updated.DiscountValue.String())

	inserted := f.state.discounts[[2]int64{100, 11}]
	assert.Equal(t, "percent", inserted.DiscountType)

	require.Len(t, f.state.audits, 2)
	assert.Equal(t, "campaign_discount", f.state.audits[0].EntityType)
	assert.Equal(t, "100:10", f.state.audits[0].EntityID)
	assert.Equal(t, "bulk_update_campaign_discounts", f.state.audits[0].Action)

	// The insert's before snapshot is a JSON null, not an empty object
	assert.Equal(t, "null", string(f.state.audits[1].Before))
}

func TestApplyWarningRows(t *testing.T) {
	// WARNING rows go through the same idempotent write path and are audited
	f := newPreviewFixture(t)
	p := f.createPreview(t, "menuStock", "outlet_id,item_id,stock\n1,10,5\n", user.RoleOperator)
	require.Equal(t, 1, p.Summary.Warnings)

	result, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Len(t, f.state.audits, 1)
}

func TestApplyVanishedRow(t *testing.T) {
	f := newPreviewFixture(t)
	p := f.createPreview(t, "menuStock",
		"outlet_id,item_id,stock\n1,10,25\n1,11,7\n", user.RoleOperator)

	// Item 11 disappears between preview and apply
	delete(f.state.items, [2]int64{1, 11})

	result, err := f.uc.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].RowNumber)
	assert.Equal(t, "row no longer exists", result.Errors[0].Message)

	// The surviving row still landed
	assert.Equal(t, "25", f.state.items[[2]int64{1, 10}].Stock.String())
}

func TestApplyRetrySafety(t *testing.T) {
	// A retried transaction must not double count or double write through
	// the result the caller sees.
	state := newCatalogState()
	state.addOutlet(1, "Downtown")
	state.addItem(1, shared.MenuItemSnapshot{ItemID: 10, Name: "Margherita Pizza", BasePrice: 4000, IsAvailable: true})

	f := newPreviewFixture(t)
	retrying := commands.NewUploadUseCase(&fakeUoW{state: state, extraAttempts: 1}, f.store, 1000)

	p, err := retrying.CreatePreview(context.Background(), commands.CreatePreviewRequest{
		Type:    "menuStock",
		CSVText: "outlet_id,item_id,stock\n1,10,25\n",
	}, f.actorID, user.RoleOperator)
	require.NoError(t, err)

	result, err := retrying.ApplyPreview(context.Background(), applyRequest(p), f.actorID, user.RoleOperator)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
}
