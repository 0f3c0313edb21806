package entry

import (
	"github.com/wasteworks/hazbill/internal/entry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("entry.service",
	fx.Provide(service.NewInwardService),
	fx.Provide(service.NewOutwardService),
)
