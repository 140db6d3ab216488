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

package domain

import (
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/ecodeclub/resale/internal/user"
)

// Snapshot 全量备份
type Snapshot struct {
	Products  []product.Product
	Customers []customer.Customer
	Orders    []order.Order
	// Users 可以为空，为空的时候恢复不会动用户表
	Users     []user.User
	Timestamp int64
}

// Complete 商品、客户、订单缺一不可
func (s Snapshot) Complete() bool {
	return s.Products != nil && s.Customers != nil && s.Orders != nil
}
