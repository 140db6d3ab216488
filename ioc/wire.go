//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/resale/internal/backup"
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ, InitSNGenerator)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		product.InitModule,
		customer.InitModule,
		order.InitModule,
		InitUserModule,
		backup.InitModule,
		InitSession,
		initGinxServer)
	return new(App), nil
}
