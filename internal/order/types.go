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

package order

import (
	"github.com/ecodeclub/resale/internal/order/internal/domain"
	"github.com/ecodeclub/resale/internal/order/internal/event"
	"github.com/ecodeclub/resale/internal/order/internal/service"
	"github.com/ecodeclub/resale/internal/order/internal/web"
)

type Module struct {
	Svc Service
	Hdl *Handler
}

type Service = service.Service
type Handler = web.Handler
type Order = domain.Order
type OrderItem = domain.OrderItem
type RefundInfo = domain.RefundInfo
type OrderStatus = domain.OrderStatus

type OrderEvent = event.OrderEvent

const OrderEventName = event.OrderEventName
