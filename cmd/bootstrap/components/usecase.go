package components

import (
	"ops-console/internal/domain/order"
	"ops-console/internal/pkg/clock"
	"ops-console/internal/pkg/config"
	"ops-console/internal/usecase/commands"
	"ops-console/internal/usecase/queries"
	"ops-console/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) order.Thresholds {
		return order.Thresholds{
			AssignWithin:  cfg.SLA.AssignWithin,
			PickupWithin:  cfg.SLA.PickupWithin,
			DeliverWithin: cfg.SLA.DeliverWithin,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewUploadCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
	),
)

func NewUploadCommands(uowImpl shared.UnitOfWork, store shared.PreviewStore, cfg config.Config) commands.UploadCommands {
	return commands.NewUploadUseCase(uowImpl, store, cfg.Upload.MaxRows)
}
