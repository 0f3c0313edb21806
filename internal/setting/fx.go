package setting

import (
	"github.com/wasteworks/hazbill/internal/setting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("setting.service",
	fx.Provide(service.NewService),
)
