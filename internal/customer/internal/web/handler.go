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
	"errors"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/resale/internal/customer/internal/domain"
	"github.com/ecodeclub/resale/internal/customer/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultLimit = 50

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/customer")
	g.POST("/save", ginx.B[SaveReq](h.Save))
	g.POST("/list", ginx.B[ListReq](h.List))
	g.POST("/detail", ginx.B[SNReq](h.Detail))
	g.POST("/delete", ginx.B[SNReq](h.Delete))
}

func (h *Handler) Save(ctx *ginx.Context, req SaveReq) (ginx.Result, error) {
	c, err := h.svc.Save(ctx.Request.Context(), domain.Customer{
		SN:         req.Customer.SN,
		Name:       req.Customer.Name,
		Phone:      req.Customer.Phone,
		Email:      req.Customer.Email,
		SocialLink: req.Customer.SocialLink,
	})
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: c.SN}, nil
}

func (h *Handler) List(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	if req.Limit <= 0 {
		req.Limit = defaultLimit
	}
	cs, total, err := h.svc.List(ctx.Request.Context(), req.Search, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListResp{
			Total: total,
			Customers: slice.Map(cs, func(idx int, src domain.Customer) Customer {
				return toVO(src)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	c, err := h.svc.Detail(ctx.Request.Context(), req.SN)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Data: toVO(c)}, nil
}

func (h *Handler) Delete(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	err := h.svc.Delete(ctx.Request.Context(), req.SN)
	if err != nil {
		return h.errResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) errResult(err error) (ginx.Result, error) {
	switch {
	case errors.Is(err, service.ErrInvalidCustomer):
		return invalidCustomerResult, nil
	case errors.Is(err, service.ErrDuplicatePhone):
		return duplicatePhoneResult, nil
	case errors.Is(err, service.ErrCustomerNotFound):
		return customerNotFoundResult, nil
	default:
		return systemErrorResult, err
	}
}

func toVO(c domain.Customer) Customer {
	return Customer{
		SN:         c.SN,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		SocialLink: c.SocialLink,
		Ctime:      c.Ctime,
	}
}
