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

package web

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/resale/internal/order/internal/domain"
	"github.com/ecodeclub/resale/internal/order/internal/service"
	"github.com/ecodeclub/resale/internal/pkg/duration"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const requestIDExpiration = 10 * time.Minute

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc    service.Service
	cache  ecache.Cache
	logger *elog.Component
}

func NewHandler(svc service.Service, cache ecache.Cache) *Handler {
	return &Handler{svc: svc, cache: cache, logger: elog.DefaultLogger}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/create", ginx.B[CreateOrderReq](h.CreateOrder))
	g.POST("/list", ginx.B[ListReq](h.List))
	g.POST("/detail", ginx.B[SNReq](h.Detail))
	g.POST("/refund/recommend", ginx.B[SNReq](h.RecommendRefund))
	g.POST("/cancel", ginx.B[CancelReq](h.Cancel))
	g.POST("/delete", ginx.B[SNReq](h.Delete))
	g.POST("/dashboard", ginx.B[DashboardReq](h.Dashboard))
}

func (h *Handler) CreateOrder(ctx *ginx.Context, req CreateOrderReq) (ginx.Result, error) {
	ok, err := h.checkRequestID(ctx.Request.Context(), req.RequestID)
	if err != nil {
		return systemErrorResult, fmt.Errorf("请求ID错误: %w", err)
	}
	if !ok {
		return duplicateRequestResult, nil
	}
	o, err := h.svc.CreateOrder(ctx.Request.Context(), h.toCart(req))
	if err != nil {
		// 失败之后允许使用同一个请求ID重试
		h.releaseRequestID(ctx.Request.Context(), req.RequestID)
	}
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return emptyCartResult, nil
	case errors.Is(err, service.ErrMissingCustomer):
		return missingCustomerResult, nil
	case errors.Is(err, service.ErrInvalidCartLine):
		return invalidCartLineResult, nil
	case err != nil:
		return systemErrorResult, fmt.Errorf("创建订单失败: %w", err)
	}
	return ginx.Result{Data: h.toVO(o, time.Now())}, nil
}

// checkRequestID 没有请求ID的时候不检查
func (h *Handler) checkRequestID(ctx context.Context, requestID string) (bool, error) {
	if requestID == "" {
		return true, nil
	}
	return h.cache.SetNX(ctx, h.createOrderRequestKey(requestID), requestID, requestIDExpiration)
}

func (h *Handler) releaseRequestID(ctx context.Context, requestID string) {
	if requestID == "" {
		return
	}
	if _, err := h.cache.Delete(ctx, h.createOrderRequestKey(requestID)); err != nil {
		h.logger.Warn("删除请求ID失败", elog.FieldErr(err), elog.String("requestID", requestID))
	}
}

func (h *Handler) createOrderRequestKey(requestID string) string {
	return fmt.Sprintf("order:create:%s", requestID)
}

func (h *Handler) toCart(req CreateOrderReq) domain.Cart {
	cart := domain.Cart{
		CustomerSN: req.CustomerSN,
		Notes:      req.Notes,
		OrderDate:  req.OrderDate,
		Lines: slice.Map(req.Lines, func(idx int, src CartLine) domain.CartLine {
			return domain.CartLine{
				ProductSN:     src.ProductSN,
				VariantSN:     src.VariantSN,
				PriceOverride: src.PriceOverride,
				UsageTime:     duration.Label(src.UsageTime),
			}
		}),
	}
	if req.NewCustomer != nil {
		cart.NewCustomer = &domain.Buyer{
			Name:       req.NewCustomer.Name,
			Phone:      req.NewCustomer.Phone,
			Email:      req.NewCustomer.Email,
			SocialLink: req.NewCustomer.SocialLink,
		}
	}
	return cart
}

func (h *Handler) List(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	os, total, err := h.svc.List(ctx.Request.Context(), domain.Query{
		Status:     domain.StatusFilter(req.Status),
		Search:     req.Search,
		CustomerSN: req.CustomerSN,
		Offset:     req.Offset,
		Limit:      req.Limit,
	})
	switch {
	case errors.Is(err, service.ErrInvalidQuery):
		return invalidQueryResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	now := time.Now()
	return ginx.Result{
		Data: ListResp{
			Total: total,
			Orders: slice.Map(os, func(idx int, src domain.Order) Order {
				return h.toVO(src, now)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	o, err := h.svc.Detail(ctx.Request.Context(), req.SN)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toVO(o, time.Now())}, nil
}

func (h *Handler) RecommendRefund(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	amount, err := h.svc.RecommendRefund(ctx.Request.Context(), req.SN)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: RecommendRefundResp{Amount: amount}}, nil
}

func (h *Handler) Cancel(ctx *ginx.Context, req CancelReq) (ginx.Result, error) {
	o, err := h.svc.CancelOrder(ctx.Request.Context(), req.SN, domain.RefundInfo{
		RefundToCustomer:   req.RefundToCustomer,
		RefundFromSupplier: req.RefundFromSupplier,
		Reason:             req.Reason,
	})
	switch {
	case errors.Is(err, service.ErrInvalidRefund):
		return invalidRefundResult, nil
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case errors.Is(err, service.ErrOrderNotCancelable):
		return orderNotCancelableResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toVO(o, time.Now())}, nil
}

func (h *Handler) Delete(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	err := h.svc.DeleteOrder(ctx.Request.Context(), req.SN)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		return orderNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) Dashboard(ctx *ginx.Context, req DashboardReq) (ginx.Result, error) {
	window := domain.TimeWindow{Kind: domain.WindowKind(req.Window)}
	if window.Kind == "" {
		window.Kind = domain.WindowToday
	}
	if req.Start > 0 {
		window.Start = time.UnixMilli(req.Start)
	}
	if req.End > 0 {
		window.End = time.UnixMilli(req.End)
	}
	d, err := h.svc.Dashboard(ctx.Request.Context(), window)
	switch {
	case errors.Is(err, service.ErrInvalidQuery):
		return invalidQueryResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	now := time.Now()
	return ginx.Result{
		Data: DashboardResp{
			Revenue:        d.Stats.Revenue,
			Profit:         d.Stats.Profit,
			OrderCount:     d.Stats.OrderCount,
			TotalCustomers: d.TotalCustomers,
			RecentOrders: slice.Map(d.RecentOrders, func(idx int, src domain.Order) Order {
				return h.toVO(src, now)
			}),
		},
	}, nil
}

func (h *Handler) toVO(o domain.Order, now time.Time) Order {
	res := Order{
		SN:            o.SN,
		CustomerSN:    o.CustomerSN,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status.String(),
		State:         h.state(o, now),
		Notes:         o.Notes,
		Ctime:         o.Ctime,
		Items: slice.Map(o.Items, func(idx int, src domain.OrderItem) OrderItem {
			item := OrderItem{
				ProductSN:   src.ProductSN,
				VariantSN:   src.VariantSN,
				Name:        src.Name,
				PriceAtSale: src.PriceAtSale,
				CostAtSale:  src.CostAtSale,
				UsageTime:   src.UsageTime.String(),
			}
			if expiry, ok := duration.ExpiryDate(o.CreatedAt(), src.UsageTime); ok {
				item.ExpiryDate = expiry.UnixMilli()
			}
			return item
		}),
	}
	if o.Refund != nil {
		res.Refund = &Refund{
			RefundToCustomer:   o.Refund.RefundToCustomer,
			RefundFromSupplier: o.Refund.RefundFromSupplier,
			RefundDate:         o.Refund.RefundDate,
			Reason:             o.Refund.Reason,
		}
	}
	return res
}

func (h *Handler) state(o domain.Order, now time.Time) string {
	switch {
	case o.Cancelled():
		return string(domain.FilterCancelled)
	case o.Active(now):
		return string(domain.FilterActive)
	default:
		return string(domain.FilterExpired)
	}
}
