package components

import (
	"ops-console/internal/infra/db"
	"ops-console/internal/infra/previewstore"
	"ops-console/internal/infra/readstore"
	"ops-console/internal/infra/uow"
	"ops-console/internal/pkg/clock"
	"ops-console/internal/pkg/config"
	"ops-console/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read-side stores
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(shared.OrderReads)),
		),
		// Staged previews (in-memory, TTL-bound)
		NewPreviewStore,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewPreviewStore(clk clock.Clock, cfg config.Config) shared.PreviewStore {
	return previewstore.New(clk, cfg.Upload.PreviewTTL)
}
