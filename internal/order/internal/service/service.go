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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order/internal/domain"
	"github.com/ecodeclub/resale/internal/order/internal/event"
	"github.com/ecodeclub/resale/internal/order/internal/repository"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ecodeclub/resale/internal/pkg/snowflake"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

const recentOrderCount = 5

var (
	ErrEmptyCart          = errors.New("订单至少需要一个商品")
	ErrMissingCustomer    = errors.New("缺少客户信息")
	ErrInvalidCartLine    = errors.New("商品或规格不存在")
	ErrOrderNotFound      = repository.ErrOrderNotFound
	ErrOrderNotCancelable = errors.New("只有已完成的订单才能取消")
	ErrInvalidRefund      = errors.New("退款金额不能为负数")
	ErrInvalidQuery       = errors.New("查询条件不合法")
)

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go Service
type Service interface {
	CreateOrder(ctx context.Context, cart domain.Cart) (domain.Order, error)
	Detail(ctx context.Context, sn string) (domain.Order, error)
	// List 先按照状态和关键字过滤，再分页
	List(ctx context.Context, q domain.Query) ([]domain.Order, int, error)
	RecommendRefund(ctx context.Context, sn string) (int64, error)
	CancelOrder(ctx context.Context, sn string, refund domain.RefundInfo) (domain.Order, error)
	// DeleteOrder 客户没有其他订单的时候会一起删除客户
	DeleteOrder(ctx context.Context, sn string) error
	Dashboard(ctx context.Context, window domain.TimeWindow) (domain.Dashboard, error)
	Export(ctx context.Context) ([]domain.Order, error)
	Replace(ctx context.Context, os []domain.Order) error
}

type service struct {
	repo        repository.OrderRepository
	productSvc  product.Service
	customerSvc customer.Service
	snGenerator *sequencenumber.Generator
	producer    event.OrderEventProducer
	now         func() time.Time
	logger      *elog.Component
}

func NewService(repo repository.OrderRepository,
	productSvc product.Service,
	customerSvc customer.Service,
	snGenerator *sequencenumber.Generator,
	producer event.OrderEventProducer) Service {
	return newService(repo, productSvc, customerSvc, snGenerator, producer, time.Now)
}

func newService(repo repository.OrderRepository,
	productSvc product.Service,
	customerSvc customer.Service,
	snGenerator *sequencenumber.Generator,
	producer event.OrderEventProducer,
	now func() time.Time) *service {
	return &service{
		repo:        repo,
		productSvc:  productSvc,
		customerSvc: customerSvc,
		snGenerator: snGenerator,
		producer:    producer,
		now:         now,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) CreateOrder(ctx context.Context, cart domain.Cart) (domain.Order, error) {
	if len(cart.Lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	buyer, err := s.resolveCustomer(ctx, cart)
	if err != nil {
		return domain.Order{}, err
	}
	items := make([]domain.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		item, err1 := s.toOrderItem(ctx, line)
		if err1 != nil {
			return domain.Order{}, err1
		}
		items = append(items, item)
	}
	sn, err := s.snGenerator.Generate(snowflake.KindOrder)
	if err != nil {
		return domain.Order{}, fmt.Errorf("生成订单编号失败: %w", err)
	}
	ctime := cart.OrderDate
	if ctime == 0 {
		ctime = s.now().UnixMilli()
	}
	order := domain.Order{
		SN:            sn,
		CustomerSN:    buyer.SN,
		CustomerName:  buyer.Name,
		CustomerPhone: buyer.Phone,
		Items:         items,
		TotalAmount:   domain.SumPrice(items),
		Status:        domain.StatusCompleted,
		Notes:         strings.TrimSpace(cart.Notes),
		Ctime:         ctime,
	}
	order.ID, err = s.repo.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	s.publish(ctx, order, event.TypeCreated)
	return order, nil
}

func (s *service) resolveCustomer(ctx context.Context, cart domain.Cart) (customer.Customer, error) {
	if cart.CustomerSN != "" {
		c, err := s.customerSvc.Detail(ctx, cart.CustomerSN)
		if errors.Is(err, customer.ErrCustomerNotFound) {
			return customer.Customer{}, fmt.Errorf("%w: %s", ErrMissingCustomer, cart.CustomerSN)
		}
		return c, err
	}
	if cart.NewCustomer == nil {
		return customer.Customer{}, ErrMissingCustomer
	}
	c, err := s.customerSvc.FindOrCreate(ctx, customer.Customer{
		Name:       cart.NewCustomer.Name,
		Phone:      cart.NewCustomer.Phone,
		Email:      cart.NewCustomer.Email,
		SocialLink: cart.NewCustomer.SocialLink,
	})
	if errors.Is(err, customer.ErrInvalidCustomer) {
		return customer.Customer{}, fmt.Errorf("%w: %w", ErrMissingCustomer, err)
	}
	return c, err
}

func (s *service) toOrderItem(ctx context.Context, line domain.CartLine) (domain.OrderItem, error) {
	p, v, err := s.productSvc.FindVariant(ctx, line.ProductSN, line.VariantSN)
	if errors.Is(err, product.ErrProductNotFound) || errors.Is(err, product.ErrVariantNotFound) {
		return domain.OrderItem{}, fmt.Errorf("%w: %s/%s", ErrInvalidCartLine, line.ProductSN, line.VariantSN)
	}
	if err != nil {
		return domain.OrderItem{}, err
	}
	price := v.SellPrice
	if line.PriceOverride != nil {
		if *line.PriceOverride < 0 {
			return domain.OrderItem{}, fmt.Errorf("%w: 售价不能为负数", ErrInvalidCartLine)
		}
		price = *line.PriceOverride
	}
	usage := line.UsageTime
	if usage == "" {
		usage = v.Duration
	}
	return domain.OrderItem{
		ProductSN:   p.SN,
		VariantSN:   v.SN,
		Name:        fmt.Sprintf("%s (%s)", p.Name, usage),
		PriceAtSale: price,
		// 成本永远以下单时的进货价为准
		CostAtSale: v.ImportPrice,
		UsageTime:  usage,
	}, nil
}

func (s *service) Detail(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindBySN(ctx, sn)
}

func (s *service) List(ctx context.Context, q domain.Query) ([]domain.Order, int, error) {
	if q.Status == "" {
		q.Status = domain.FilterAll
	}
	if !q.Status.Valid() || q.Offset < 0 || q.Limit < 0 {
		return nil, 0, ErrInvalidQuery
	}
	os, err := s.repo.ListByCustomer(ctx, q.CustomerSN)
	if err != nil {
		return nil, 0, err
	}
	os = domain.FilterOrders(os, q.Status, q.Search, s.now())
	domain.SortByCtimeDesc(os)
	total := len(os)
	if q.Offset >= total {
		return []domain.Order{}, total, nil
	}
	end := total
	if q.Limit > 0 && q.Offset+q.Limit < total {
		end = q.Offset + q.Limit
	}
	return os[q.Offset:end], total, nil
}

func (s *service) RecommendRefund(ctx context.Context, sn string) (int64, error) {
	o, err := s.repo.FindBySN(ctx, sn)
	if err != nil {
		return 0, err
	}
	return domain.RecommendRefund(o, s.now()), nil
}

func (s *service) CancelOrder(ctx context.Context, sn string, refund domain.RefundInfo) (domain.Order, error) {
	if refund.RefundToCustomer < 0 || refund.RefundFromSupplier < 0 {
		return domain.Order{}, ErrInvalidRefund
	}
	o, err := s.repo.FindBySN(ctx, sn)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Status != domain.StatusCompleted {
		return domain.Order{}, fmt.Errorf("%w: 当前状态 %s", ErrOrderNotCancelable, o.Status)
	}
	refund.Reason = strings.TrimSpace(refund.Reason)
	refund.RefundDate = s.now().UnixMilli()
	err = s.repo.Cancel(ctx, sn, refund)
	if errors.Is(err, repository.ErrOrderStatusChanged) {
		return domain.Order{}, fmt.Errorf("%w: %w", ErrOrderNotCancelable, err)
	}
	if err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.StatusCancelled
	o.Refund = &refund
	s.publish(ctx, o, event.TypeCancelled)
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, sn string) error {
	o, err := s.repo.FindBySN(ctx, sn)
	if err != nil {
		return err
	}
	if err = s.repo.Delete(ctx, sn); err != nil {
		return err
	}
	s.publish(ctx, o, event.TypeDeleted)
	// 订单已经删除成功，客户删除失败只记录日志
	s.deleteOrphanCustomer(ctx, o.CustomerSN)
	return nil
}

func (s *service) deleteOrphanCustomer(ctx context.Context, customerSN string) {
	if customerSN == "" {
		return
	}
	cnt, err := s.repo.CountByCustomer(ctx, customerSN)
	if err != nil {
		s.logger.Error("统计客户剩余订单失败",
			elog.FieldErr(err),
			elog.String("customerSN", customerSN))
		return
	}
	if cnt > 0 {
		return
	}
	err = s.customerSvc.Delete(ctx, customerSN)
	if err != nil && !errors.Is(err, customer.ErrCustomerNotFound) {
		s.logger.Error("删除没有订单的客户失败",
			elog.FieldErr(err),
			elog.String("customerSN", customerSN))
	}
}

func (s *service) Dashboard(ctx context.Context, window domain.TimeWindow) (domain.Dashboard, error) {
	if !window.Valid() {
		return domain.Dashboard{}, ErrInvalidQuery
	}
	var (
		eg     errgroup.Group
		os     []domain.Order
		counts int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListAll(ctx)
		return err
	})
	eg.Go(func() error {
		var err error
		counts, err = s.customerSvc.Count(ctx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return domain.Dashboard{}, err
	}
	now := s.now()
	return domain.Dashboard{
		Stats:          domain.ComputeStats(os, window, now),
		RecentOrders:   domain.Recent(os, recentOrderCount),
		TotalCustomers: counts,
	}, nil
}

func (s *service) Export(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Replace(ctx context.Context, os []domain.Order) error {
	return s.repo.ReplaceAll(ctx, os)
}

func (s *service) publish(ctx context.Context, o domain.Order, typ event.EventType) {
	evt := event.OrderEvent{
		SN:         o.SN,
		Type:       typ,
		CustomerSN: o.CustomerSN,
		Amount:     o.TotalAmount,
		Ctime:      s.now().UnixMilli(),
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送订单事件失败",
			elog.FieldErr(err),
			elog.FieldKey(string(typ)),
			elog.FieldValueAny(evt))
	}
}
