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
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/resale/internal/user/internal/domain"
	"github.com/ecodeclub/resale/internal/user/internal/service"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	userSvc service.UserService
}

func NewHandler(userSvc service.UserService) *Handler {
	return &Handler{
		userSvc: userSvc,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.POST("/login", ginx.B[LoginReq](h.Login))
	users.Any("/token/refresh", ginx.W(h.RefreshAccessToken))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	users := server.Group("/users")
	users.GET("/profile", ginx.S(h.Profile))
	users.POST("/profile", ginx.BS[EditReq](h.Edit))
	users.POST("/password", ginx.BS[ChangePasswordReq](h.ChangePassword))
}

func (h *Handler) Login(ctx *ginx.Context, req LoginReq) (ginx.Result, error) {
	u, err := h.userSvc.Login(ctx.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return invalidCredentialsResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	_, err = session.NewSessionBuilder(ctx, u.ID).
		SetJwtData(map[string]string{
			"username": u.Username,
		}).Build()
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toProfile(u)}, nil
}

func (h *Handler) RefreshAccessToken(ctx *ginx.Context) (ginx.Result, error) {
	err := session.RenewAccessToken(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) Profile(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	u, err := h.userSvc.Profile(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Data: h.toProfile(u)}, nil
}

// Edit 目前只能修改姓名
func (h *Handler) Edit(ctx *ginx.Context, req EditReq, sess session.Session) (ginx.Result, error) {
	err := h.userSvc.UpdateProfile(ctx.Request.Context(), sess.Claims().Uid, req.FullName)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) ChangePassword(ctx *ginx.Context, req ChangePasswordReq, sess session.Session) (ginx.Result, error) {
	err := h.userSvc.ChangePassword(ctx.Request.Context(), sess.Claims().Uid,
		req.OldPassword, req.NewPassword, req.Confirm)
	switch {
	case errors.Is(err, service.ErrInvalidPassword):
		return invalidPasswordResult, nil
	case errors.Is(err, service.ErrPasswordMismatch):
		return passwordMismatchResult, nil
	case errors.Is(err, service.ErrInvalidCredentials):
		return invalidCredentialsResult, nil
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) toProfile(u domain.User) Profile {
	return Profile{
		Id:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
	}
}
