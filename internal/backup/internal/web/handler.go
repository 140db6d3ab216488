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

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/resale/internal/backup/internal/service"
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
	g := server.Group("/backup")
	g.POST("/export", ginx.W(h.Export))
	g.POST("/restore", ginx.B[Snapshot](h.Restore))
}

func (h *Handler) Export(ctx *ginx.Context) (ginx.Result, error) {
	s, err := h.svc.Export(ctx.Request.Context())
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newSnapshot(s),
	}, nil
}

func (h *Handler) Restore(ctx *ginx.Context, req Snapshot) (ginx.Result, error) {
	err := h.svc.Restore(ctx.Request.Context(), req.toDomain())
	switch {
	case errors.Is(err, service.ErrInvalidSnapshot):
		return invalidSnapshotResult, nil
	case err != nil:
		return systemErrorResult, err
	default:
		return ginx.Result{Msg: "OK"}, nil
	}
}
