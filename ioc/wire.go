//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/jobgenie/internal/resource"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		resource.InitModule,
		InitSession,
		initWebServer)
	return new(App), nil
}
