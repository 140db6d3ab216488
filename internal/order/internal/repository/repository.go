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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/resale/internal/order/internal/domain"
	"github.com/ecodeclub/resale/internal/order/internal/repository/dao"
	"github.com/ecodeclub/resale/internal/pkg/duration"
)

var (
	ErrOrderNotFound      = dao.ErrRecordNotFound
	ErrOrderStatusChanged = dao.ErrOrderStatusChanged
)

//go:generate mockgen -source=./repository.go -package=repomocks -destination=./mocks/order.mock.go OrderRepository
type OrderRepository interface {
	CreateOrder(ctx context.Context, o domain.Order) (int64, error)
	FindBySN(ctx context.Context, sn string) (domain.Order, error)
	Cancel(ctx context.Context, sn string, refund domain.RefundInfo) error
	Delete(ctx context.Context, sn string) error
	CountByCustomer(ctx context.Context, customerSN string) (int64, error)
	// ListByCustomer customerSN 为空的时候返回全部订单
	ListByCustomer(ctx context.Context, customerSN string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ReplaceAll(ctx context.Context, os []domain.Order) error
}

type orderRepository struct {
	dao dao.OrderDAO
}

func NewRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{dao: d}
}

func (o *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (int64, error) {
	return o.dao.Create(ctx, o.toEntity(order), o.toItemEntities(order.Items))
}

func (o *orderRepository) FindBySN(ctx context.Context, sn string) (domain.Order, error) {
	order, items, err := o.dao.FindBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toDomain(order, items), nil
}

func (o *orderRepository) Cancel(ctx context.Context, sn string, refund domain.RefundInfo) error {
	return o.dao.Cancel(ctx, sn, dao.Refund{
		RefundToCustomer:   refund.RefundToCustomer,
		RefundFromSupplier: refund.RefundFromSupplier,
		RefundDate:         refund.RefundDate,
		RefundReason:       refund.Reason,
	})
}

func (o *orderRepository) Delete(ctx context.Context, sn string) error {
	return o.dao.DeleteBySN(ctx, sn)
}

func (o *orderRepository) CountByCustomer(ctx context.Context, customerSN string) (int64, error) {
	return o.dao.CountByCustomer(ctx, customerSN)
}

func (o *orderRepository) ListByCustomer(ctx context.Context, customerSN string) ([]domain.Order, error) {
	if customerSN == "" {
		return o.ListAll(ctx)
	}
	os, err := o.dao.ListByCustomer(ctx, customerSN)
	if err != nil {
		return nil, err
	}
	return o.withItems(ctx, os)
}

func (o *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	os, err := o.dao.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return o.withItems(ctx, os)
}

func (o *orderRepository) withItems(ctx context.Context, os []dao.Order) ([]domain.Order, error) {
	items, err := o.dao.FindItemsByOrderIDs(ctx, slice.Map(os, func(idx int, src dao.Order) int64 {
		return src.Id
	}))
	if err != nil {
		return nil, err
	}
	grouped := make(map[int64][]dao.OrderItem, len(os))
	for _, item := range items {
		grouped[item.OrderId] = append(grouped[item.OrderId], item)
	}
	return slice.Map(os, func(idx int, src dao.Order) domain.Order {
		return o.toDomain(src, grouped[src.Id])
	}), nil
}

// ReplaceAll 订单的自增 ID 按照顺序重新分配
func (o *orderRepository) ReplaceAll(ctx context.Context, os []domain.Order) error {
	orders := make([]dao.Order, 0, len(os))
	var items []dao.OrderItem
	for i, order := range os {
		entity := o.toEntity(order)
		entity.Id = int64(i + 1)
		orders = append(orders, entity)
		for _, item := range o.toItemEntities(order.Items) {
			item.OrderId = entity.Id
			item.Ctime = entity.Ctime
			item.Utime = entity.Utime
			items = append(items, item)
		}
	}
	return o.dao.ReplaceAll(ctx, orders, items)
}

func (o *orderRepository) toEntity(order domain.Order) dao.Order {
	entity := dao.Order{
		Id:            order.ID,
		SN:            order.SN,
		CustomerSN:    order.CustomerSN,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status.String(),
		Notes:         order.Notes,
		Ctime:         order.Ctime,
		Utime:         order.Utime,
	}
	if order.Refund != nil {
		entity.Refund = dao.Refund{
			RefundToCustomer:   order.Refund.RefundToCustomer,
			RefundFromSupplier: order.Refund.RefundFromSupplier,
			RefundDate:         order.Refund.RefundDate,
			RefundReason:       order.Refund.Reason,
		}
	}
	return entity
}

func (o *orderRepository) toItemEntities(items []domain.OrderItem) []dao.OrderItem {
	return slice.Map(items, func(idx int, src domain.OrderItem) dao.OrderItem {
		return dao.OrderItem{
			ProductSN:   src.ProductSN,
			VariantSN:   src.VariantSN,
			Name:        src.Name,
			PriceAtSale: src.PriceAtSale,
			CostAtSale:  src.CostAtSale,
			UsageTime:   src.UsageTime.String(),
		}
	})
}

func (o *orderRepository) toDomain(order dao.Order, items []dao.OrderItem) domain.Order {
	res := domain.Order{
		ID:            order.Id,
		SN:            order.SN,
		CustomerSN:    order.CustomerSN,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		TotalAmount:   order.TotalAmount,
		Status:        domain.OrderStatus(order.Status),
		Notes:         order.Notes,
		Ctime:         order.Ctime,
		Utime:         order.Utime,
		Items: slice.Map(items, func(idx int, src dao.OrderItem) domain.OrderItem {
			return domain.OrderItem{
				ProductSN:   src.ProductSN,
				VariantSN:   src.VariantSN,
				Name:        src.Name,
				PriceAtSale: src.PriceAtSale,
				CostAtSale:  src.CostAtSale,
				UsageTime:   duration.Label(src.UsageTime),
			}
		}),
	}
	if res.Status == domain.StatusCancelled {
		res.Refund = &domain.RefundInfo{
			RefundToCustomer:   order.RefundToCustomer,
			RefundFromSupplier: order.RefundFromSupplier,
			RefundDate:         order.RefundDate,
			Reason:             order.RefundReason,
		}
	}
	return res
}
