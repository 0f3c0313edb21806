package transporter

import (
	"github.com/wasteworks/hazbill/internal/transporter/service"
	"go.uber.org/fx"
)

var Module = fx.Module("transporter.service",
	fx.Provide(service.NewService),
)
