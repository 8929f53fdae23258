package queries

import (
	"context"

	"ops-console/internal/domain/order"
	"ops-console/internal/infra"
	"ops-console/internal/pkg/clock"
	"ops-console/internal/pkg/errs"
	"ops-console/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

type OrderQueries interface {
	Problems(ctx context.Context, orderID uuid.UUID) ([]order.Problem, error)
}

type orderQueriesImpl struct {
	reads      shared.OrderReads
	clock      clock.Clock
	thresholds order.Thresholds
}

func NewOrderQueries(reads shared.OrderReads, clk clock.Clock, thresholds order.Thresholds) OrderQueries {
	return &orderQueriesImpl{reads: reads, clock: clk, thresholds: thresholds}
}

// Problems derives the SLA flags for one order from its event timeline.
// Flags are computed on every read; nothing is stored.
func (q *orderQueriesImpl) Problems(ctx context.Context, orderID uuid.UUID) ([]order.Problem, error) {
	events, err := q.reads.OrderEvents(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrOrderNotFound
	}
	return order.DeriveProblems(events, q.clock.Now(), q.thresholds), nil
}
