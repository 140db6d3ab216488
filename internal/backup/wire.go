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

package backup

import (
	"github.com/ecodeclub/resale/internal/backup/internal/service"
	"github.com/ecodeclub/resale/internal/backup/internal/web"
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/ecodeclub/resale/internal/user"
	"github.com/google/wire"
)

func InitModule(pm *product.Module,
	cm *customer.Module,
	om *order.Module,
	um *user.Module) *Module {
	wire.Build(
		wire.FieldsOf(new(*product.Module), "Svc"),
		wire.FieldsOf(new(*customer.Module), "Svc"),
		wire.FieldsOf(new(*order.Module), "Svc"),
		wire.FieldsOf(new(*user.Module), "Svc"),
		service.NewService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}
