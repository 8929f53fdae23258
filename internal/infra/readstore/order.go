package readstore

import (
	"context"

	"ops-console/internal/domain/order"
	"ops-console/internal/infra"
	"ops-console/internal/infra/db"

	"github.com/google/uuid"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

// OrderEvents returns an order's lifecycle timeline in occurrence order.
// An order with no events is indistinguishable from a missing order; both
// surface as an empty slice.
func (r *OrderReadStore) OrderEvents(ctx context.Context, orderID uuid.UUID) ([]order.Event, error) {
	const q = `SELECT event_type, occurred_at FROM order_events
		WHERE order_id = $1 ORDER BY occurred_at`

	rows, err := r.db.Query(ctx, q, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query order events", err)
	}
	defer rows.Close()

	var events []order.Event
	for rows.Next() {
		var e order.Event
		if err := rows.Scan(&e.Type, &e.OccurredAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order events", err)
	}
	return events, nil
}
