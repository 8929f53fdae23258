//go:build unit

package commands_test

import (
	"context"
	"testing"

	"ops-console/internal/infra"
	"ops-console/internal/usecase/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// catalogState is the in-memory world the fakes read and write. The same
// state backs preview reads and the transactional fakes, so apply tests can
// observe mutations directly.
type catalogState struct {
	outlets   map[int64]shared.OutletSnapshot
	items     map[[2]int64]shared.MenuItemSnapshot
	campaigns map[[2]int64]shared.CampaignSnapshot
	discounts map[[2]int64]shared.DiscountSnapshot

	priceHistory []shared.PriceHistoryEntry
	audits       []shared.AuditEntry
}

func newCatalogState() *catalogState {
	return &catalogState{
		outlets:   make(map[int64]shared.OutletSnapshot),
		items:     make(map[[2]int64]shared.MenuItemSnapshot),
		campaigns: make(map[[2]int64]shared.CampaignSnapshot),
		discounts: make(map[[2]int64]shared.DiscountSnapshot),
	}
}

func (s *catalogState) addOutlet(id int64, name string) {
	s.outlets[id] = shared.OutletSnapshot{ID: id, Name: name}
}

func (s *catalogState) addItem(outletID int64, item shared.MenuItemSnapshot) {
	s.items[[2]int64{outletID, item.ItemID}] = item
}

func (s *catalogState) addCampaign(outletID, campaignID int64, name string) {
	s.campaigns[[2]int64{outletID, campaignID}] = shared.CampaignSnapshot{ID: campaignID, OutletID: outletID, Name: name}
}

func (s *catalogState) addDiscount(d shared.DiscountSnapshot) {
	s.discounts[[2]int64{d.CampaignID, d.ItemID}] = d
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", nil, infra.KindNotFound)
}

type fakeReads struct {
	state *catalogState
}

func (r fakeReads) OutletByID(_ context.Context, outletID int64) (*shared.OutletSnapshot, error) {
	o, ok := r.state.outlets[outletID]
	if !ok {
		return nil, notFound("outlet")
	}
	return &o, nil
}

func (r fakeReads) MenuItemByID(_ context.Context, outletID, itemID int64) (*shared.MenuItemSnapshot, error) {
	it, ok := r.state.items[[2]int64{outletID, itemID}]
	if !ok {
		return nil, notFound("menu item")
	}
	return &it, nil
}

func (r fakeReads) MenuItemBySKU(_ context.Context, outletID int64, sku string) (*shared.MenuItemSnapshot, error) {
	for key, it := range r.state.items {
		if key[0] == outletID && it.SKU == sku {
			found := it
			return &found, nil
		}
	}
	return nil, notFound("menu item")
}

func (r fakeReads) CampaignByID(_ context.Context, outletID, campaignID int64) (*shared.CampaignSnapshot, error) {
	c, ok := r.state.campaigns[[2]int64{outletID, campaignID}]
	if !ok {
		return nil, notFound("campaign")
	}
	return &c, nil
}

func (r fakeReads) CampaignDiscount(_ context.Context, campaignID, itemID int64) (*shared.DiscountSnapshot, error) {
	d, ok := r.state.discounts[[2]int64{campaignID, itemID}]
	if !ok {
		return nil, notFound("campaign discount")
	}
	return &d, nil
}

// fakeUoW runs the transaction closure directly against the shared state.
// extraAttempts simulates serialization retries: the closure runs that many
// additional times before the final, counted run.
type fakeUoW struct {
	state         *catalogState
	extraAttempts int
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &fakeTx{state: u.state}
	for range u.extraAttempts {
		if err := fn(ctx, tx); err != nil {
			return err
		}
	}
	return fn(ctx, tx)
}

func (u *fakeUoW) Reads() shared.CatalogReads {
	return fakeReads{state: u.state}
}

type fakeTx struct {
	state *catalogState
}

func (t *fakeTx) Menu() shared.MenuRepository                 { return fakeMenuRepo{state: t.state} }
func (t *fakeTx) Campaigns() shared.CampaignRepository        { return fakeCampaignRepo{state: t.state} }
func (t *fakeTx) PriceHistory() shared.PriceHistoryRepository { return fakePriceHistoryRepo{state: t.state} }
func (t *fakeTx) Audit() shared.AuditRepository               { return fakeAuditRepo{state: t.state} }
func (t *fakeTx) Reads() shared.CatalogReads                  { return fakeReads{state: t.state} }

type fakeMenuRepo struct {
	state *catalogState
}

func (r fakeMenuRepo) UpdateItem(_ context.Context, outletID, itemID int64, basePrice int64, isAvailable bool, stock *decimal.Decimal) error {
	key := [2]int64{outletID, itemID}
	it, ok := r.state.items[key]
	if !ok {
		return notFound("menu item")
	}
	it.BasePrice = basePrice
	it.IsAvailable = isAvailable
	it.Stock = stock
	r.state.items[key] = it
	return nil
}

func (r fakeMenuRepo) UpdateStock(_ context.Context, outletID, itemID int64, stock *decimal.Decimal) error {
	key := [2]int64{outletID, itemID}
	it, ok := r.state.items[key]
	if !ok {
		return notFound("menu item")
	}
	it.Stock = stock
	r.state.items[key] = it
	return nil
}

type fakeCampaignRepo struct {
	state *catalogState
}

func (r fakeCampaignRepo) UpsertDiscount(_ context.Context, campaignID, itemID int64, discountType string, discountValue decimal.Decimal) error {
	r.state.addDiscount(shared.DiscountSnapshot{
		CampaignID:    campaignID,
		ItemID:        itemID,
		DiscountType:  discountType,
		DiscountValue: discountValue,
	})
	return nil
}

type fakePriceHistoryRepo struct {
	state *catalogState
}

func (r fakePriceHistoryRepo) Insert(_ context.Context, entry shared.PriceHistoryEntry) error {
	r.state.priceHistory = append(r.state.priceHistory, entry)
	return nil
}

type fakeAuditRepo struct {
	state *catalogState
}

func (r fakeAuditRepo) Insert(_ context.Context, entry shared.AuditEntry) error {
	r.state.audits = append(r.state.audits, entry)
	return nil
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
