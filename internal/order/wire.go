// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order/internal/event"
	"github.com/ecodeclub/resale/internal/order/internal/repository"
	"github.com/ecodeclub/resale/internal/order/internal/repository/dao"
	"github.com/ecodeclub/resale/internal/order/internal/service"
	"github.com/ecodeclub/resale/internal/order/internal/web"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	InitTablesOnce,
	repository.NewRepository,
	event.NewOrderEventProducer,
	service.NewService,
	web.NewHandler,
)

func InitModule(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	pm *product.Module,
	cm *customer.Module,
	snGenerator *sequencenumber.Generator) (*Module, error) {
	wire.Build(ProviderSet,
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.FieldsOf(new(*customer.Module), "Svc"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewOrderGORMDAO(db)
}
