package shared

import (
	"context"

	"ops-console/internal/domain/order"
	"ops-console/internal/domain/upload"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnitOfWork is the transaction boundary of the apply engine. Within runs fn
// inside one atomic transaction: either every row mutation and audit write
// commits, or none do. Reads exposes non-transactional catalog lookups for
// preview building, where a consistent snapshot is not required.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Reads() CatalogReads
}

type Tx interface {
	Menu() MenuRepository
	Campaigns() CampaignRepository
	PriceHistory() PriceHistoryRepository
	Audit() AuditRepository
	// Reads are scoped to the transaction so apply-time re-reads see the
	// state the writes will land on.
	Reads() CatalogReads
}

// CatalogReads resolves the current state the preview builder diffs against
// and the apply engine re-reads before writing. Not-found conditions are
// reported via infra.KindNotFound, never as nil snapshots.
type CatalogReads interface {
	OutletByID(ctx context.Context, outletID int64) (*OutletSnapshot, error)
	MenuItemByID(ctx context.Context, outletID, itemID int64) (*MenuItemSnapshot, error)
	MenuItemBySKU(ctx context.Context, outletID int64, sku string) (*MenuItemSnapshot, error)
	CampaignByID(ctx context.Context, outletID, campaignID int64) (*CampaignSnapshot, error)
	CampaignDiscount(ctx context.Context, campaignID, itemID int64) (*DiscountSnapshot, error)
}

// OrderReads feeds the problem-flag derivation with an order's event
// timeline.
type OrderReads interface {
	OrderEvents(ctx context.Context, orderID uuid.UUID) ([]order.Event, error)
}

type OutletSnapshot struct {
	ID   int64
	Name string
}

// MenuItemSnapshot is one outlet-scoped menu row joined to the item catalog.
type MenuItemSnapshot struct {
	ItemID      int64
	SKU         string
	Name        string
	BasePrice   int64
	IsAvailable bool
	Stock       *decimal.Decimal
}

type CampaignSnapshot struct {
	ID       int64
	OutletID int64
	Name     string
}

type DiscountSnapshot struct {
	CampaignID    int64
	ItemID        int64
	DiscountType  string
	DiscountValue decimal.Decimal
}

type MenuRepository interface {
	// UpdateItem writes price/availability/stock for one (outlet, item) row.
	UpdateItem(ctx context.Context, outletID, itemID int64, basePrice int64, isAvailable bool, stock *decimal.Decimal) error
	// UpdateStock touches only the stock column.
	UpdateStock(ctx context.Context, outletID, itemID int64, stock *decimal.Decimal) error
}

type CampaignRepository interface {
	// UpsertDiscount inserts the (campaign, item) discount or updates it in
	// place when the pair already exists.
	UpsertDiscount(ctx context.Context, campaignID, itemID int64, discountType string, discountValue decimal.Decimal) error
}

type PriceHistoryEntry struct {
	OutletID  int64
	ItemID    int64
	OldPrice  int64
	NewPrice  int64
	ChangedBy uuid.UUID
	Reason    string
}

type PriceHistoryRepository interface {
	Insert(ctx context.Context, entry PriceHistoryEntry) error
}

// AuditEntry records one row mutation: who changed what, with before/after
// snapshots serialized as JSON.
type AuditEntry struct {
	EntityType string
	EntityID   string
	Action     string
	ActorID    uuid.UUID
	Before     []byte
	After      []byte
}

type AuditRepository interface {
	Insert(ctx context.Context, entry AuditEntry) error
}

// PreviewStore is the staging area between preview build and apply. It mints
// the opaque preview id, owns the TTL, and must be safe for concurrent use.
// A preview is reachable only by presenting its id.
type PreviewStore interface {
	Create(typ upload.Type, rows []upload.PreviewRow, summary upload.PreviewSummary, actorID uuid.UUID) *upload.Preview
	Get(id uuid.UUID) (*upload.Preview, bool)
	MarkApplied(id uuid.UUID) (*upload.Preview, bool)
	PruneExpired()
	Delete(id uuid.UUID)
}
