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
	"time"

	"github.com/ecodeclub/resale/internal/pkg/duration"
)

type OrderStatus string

func (s OrderStatus) String() string {
	return string(s)
}

const (
	StatusCompleted OrderStatus = "completed"
	// StatusPending 目前没有流程会产生这个状态
	StatusPending   OrderStatus = "pending"
	StatusCancelled OrderStatus = "cancelled"
)

// Order 一次销售，客户信息和商品信息都是下单时的快照
type Order struct {
	ID            int64
	SN            string
	CustomerSN    string
	CustomerName  string
	CustomerPhone string
	Items         []OrderItem
	// TotalAmount 创建时按照 Items 计算，之后不会再变
	TotalAmount int64
	Status      OrderStatus
	Notes       string
	// Refund 只有取消的订单才有
	Refund *RefundInfo
	Ctime  int64
	Utime  int64
}

type OrderItem struct {
	ProductSN string
	VariantSN string
	// Name 商品名称 + 使用时长，例如 "Netflix (1 tháng)"
	Name        string
	PriceAtSale int64
	CostAtSale  int64
	UsageTime   duration.Label
}

type RefundInfo struct {
	RefundToCustomer   int64
	RefundFromSupplier int64
	RefundDate         int64
	Reason             string
}

func (o Order) CreatedAt() time.Time {
	return time.UnixMilli(o.Ctime)
}

func (o Order) Cancelled() bool {
	return o.Status == StatusCancelled
}

// Cost 进货成本
func (o Order) Cost() int64 {
	var res int64
	for _, item := range o.Items {
		res += item.CostAtSale
	}
	return res
}

// Revenue 取消的订单扣掉退给客户的钱
func (o Order) Revenue() int64 {
	if o.Cancelled() && o.Refund != nil {
		return o.TotalAmount - o.Refund.RefundToCustomer
	}
	return o.TotalAmount
}

// Profit 取消的订单还要加上从上游追回的钱
func (o Order) Profit() int64 {
	profit := o.TotalAmount - o.Cost()
	if o.Cancelled() && o.Refund != nil {
		profit = profit - o.Refund.RefundToCustomer + o.Refund.RefundFromSupplier
	}
	return profit
}

// Active 至少一个商品还没到期
func (o Order) Active(now time.Time) bool {
	start := o.CreatedAt()
	for _, item := range o.Items {
		expiry, ok := duration.ExpiryDate(start, item.UsageTime)
		if !ok || !expiry.Before(now) {
			return true
		}
	}
	return false
}

func SumPrice(items []OrderItem) int64 {
	var res int64
	for _, item := range items {
		res += item.PriceAtSale
	}
	return res
}
