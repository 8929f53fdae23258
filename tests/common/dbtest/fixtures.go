//go:build e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Well-known fixture ids used across the e2e suites.
const (
	OutletDowntown = int64(1)
	OutletAirport  = int64(2)

	ItemPizza = int64(10)
	ItemCola  = int64(11)

	CampaignSummer = int64(100)
)

var (
	// OrderStale has only a created event far in the past, so SLA flags fire.
	OrderStale = uuid.MustParse("00000000-0000-0000-0000-00000000a001")
	// OrderDelivered ran through the whole lifecycle on time.
	OrderDelivered = uuid.MustParse("00000000-0000-0000-0000-00000000a002")
)

// SeedReferenceData loads the catalog rows the e2e suites run against.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now().UTC()

	statements := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO outlets (id, name) VALUES ($1, $2)`, []any{OutletDowntown, "Downtown"}},
		{`INSERT INTO outlets (id, name) VALUES ($1, $2)`, []any{OutletAirport, "Airport"}},

		{`INSERT INTO menu_items (id, sku, name) VALUES ($1, $2, $3)`, []any{ItemPizza, "PIZZA-M", "Margherita Pizza"}},
		{`INSERT INTO menu_items (id, sku, name) VALUES ($1, $2, $3)`, []any{ItemCola, "COLA-05", "Cola 0.5L"}},

		{`INSERT INTO outlet_menu_items (outlet_id, item_id, base_price, is_available, stock) VALUES ($1, $2, $3, $4, $5)`,
			[]any{OutletDowntown, ItemPizza, int64(4000), true, "5"}},
		{`INSERT INTO outlet_menu_items (outlet_id, item_id, base_price, is_available, stock) VALUES ($1, $2, $3, $4, NULL)`,
			[]any{OutletDowntown, ItemCola, int64(500), false}},

		{`INSERT INTO campaigns (id, outlet_id, name) VALUES ($1, $2, $3)`, []any{CampaignSummer, OutletDowntown, "Summer Deals"}},
		{`INSERT INTO campaign_discounts (campaign_id, item_id, discount_type, discount_value) VALUES ($1, $2, $3, $4)`,
			[]any{CampaignSummer, ItemPizza, "percent", "15"}},

		{`INSERT INTO order_events (order_id, event_type, occurred_at) VALUES ($1, $2, $3)`,
			[]any{OrderStale, "created", now.Add(-2 * time.Hour)}},

		{`INSERT INTO order_events (order_id, event_type, occurred_at) VALUES ($1, $2, $3)`,
			[]any{OrderDelivered, "created", now.Add(-90 * time.Minute)}},
		{`INSERT INTO order_events (order_id, event_type, occurred_at) VALUES ($1, $2, $3)`,
			[]any{OrderDelivered, "courier_assigned", now.Add(-85 * time.Minute)}},
		{`INSERT INTO order_events (order_id, event_type, occurred_at) VALUES ($1, $2, $3)`,
			[]any{OrderDelivered, "picked_up", now.Add(-70 * time.Minute)}},
		{`INSERT INTO order_events (order_id, event_type, occurred_at) VALUES ($1, $2, $3)`,
			[]any{OrderDelivered, "delivered", now.Add(-40 * time.Minute)}},
	}

	for _, st := range statements {
		if _, err := pool.Exec(ctx, st.sql, st.args...); err != nil {
			return err
		}
	}
	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
