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

package customer

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/resale/internal/customer/internal/repository"
	"github.com/ecodeclub/resale/internal/customer/internal/repository/cache"
	"github.com/ecodeclub/resale/internal/customer/internal/repository/dao"
	"github.com/ecodeclub/resale/internal/customer/internal/service"
	"github.com/ecodeclub/resale/internal/customer/internal/web"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	InitTablesOnce,
	cache.NewCustomerECache,
	repository.NewCachedCustomerRepository,
	service.NewService,
	web.NewHandler,
)

func InitModule(db *egorm.Component, ec ecache.Cache, snGenerator *sequencenumber.Generator) *Module {
	wire.Build(ProviderSet, wire.Struct(new(Module), "*"))
	return new(Module)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.CustomerDAO {
	once.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewCustomerGORMDAO(db)
}
