package components

import (
	"ops-console/internal/handler"
	"ops-console/internal/handler/api"
	"ops-console/internal/handler/middleware"
	"ops-console/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewUploadHandler,
		api.NewOrderHandler,
		fx.Annotate(
			NewTokenValidator,
			fx.As(new(middleware.TokenValidator)),
		),
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewTokenValidator(svc *jwt.Service) *jwt.Service {
	return svc
}
