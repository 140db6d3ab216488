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
	"github.com/ecodeclub/resale/internal/pkg/duration"
	"github.com/ecodeclub/resale/internal/product/internal/domain"
	"github.com/ecodeclub/resale/internal/product/internal/service"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/save", ginx.B[SaveReq](h.Save))
	g.POST("/list", ginx.W(h.List))
	g.POST("/detail", ginx.B[SNReq](h.Detail))
	g.POST("/delete", ginx.B[SNReq](h.Delete))
	g.GET("/durations", ginx.W(h.Durations))
}

func (h *Handler) Save(ctx *ginx.Context, req SaveReq) (ginx.Result, error) {
	sn, err := h.svc.Save(ctx.Request.Context(), h.toDomain(req.Product))
	switch {
	case errors.Is(err, service.ErrInvalidProduct):
		res := invalidProductResult
		res.Msg = err.Error()
		return res, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: sn}, nil
}

func (h *Handler) List(ctx *ginx.Context) (ginx.Result, error) {
	ps, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListResp{
			Total: len(ps),
			Products: slice.Map(ps, func(idx int, src domain.Product) Product {
				return h.toVO(src)
			}),
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	p, err := h.svc.Detail(ctx.Request.Context(), req.SN)
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return productNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toVO(p)}, nil
}

func (h *Handler) Delete(ctx *ginx.Context, req SNReq) (ginx.Result, error) {
	err := h.svc.Delete(ctx.Request.Context(), req.SN)
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return productNotFoundResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) Durations(ctx *ginx.Context) (ginx.Result, error) {
	return ginx.Result{
		Data: slice.Map(service.Durations(), func(idx int, src duration.Label) string {
			return src.String()
		}),
	}, nil
}

func (h *Handler) toDomain(p Product) domain.Product {
	return domain.Product{
		SN:     p.SN,
		Name:   p.Name,
		Source: p.Source,
		Variants: slice.Map(p.Variants, func(idx int, src Variant) domain.Variant {
			return domain.Variant{
				SN:          src.SN,
				Duration:    duration.Label(src.Duration),
				ImportPrice: src.ImportPrice,
				SellPrice:   src.SellPrice,
			}
		}),
	}
}

func (h *Handler) toVO(p domain.Product) Product {
	return Product{
		SN:     p.SN,
		Name:   p.Name,
		Source: p.Source,
		Variants: slice.Map(p.Variants, func(idx int, src domain.Variant) Variant {
			return Variant{
				SN:          src.SN,
				Duration:    src.Duration.String(),
				ImportPrice: src.ImportPrice,
				SellPrice:   src.SellPrice,
			}
		}),
		Ctime: p.Ctime,
		Utime: p.Utime,
	}
}
