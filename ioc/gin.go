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

package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/resale/internal/backup"
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/order"
	"github.com/ecodeclub/resale/internal/pkg/middleware"
	"github.com/ecodeclub/resale/internal/product"
	"github.com/ecodeclub/resale/internal/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	pm *product.Module,
	cm *customer.Module,
	om *order.Module,
	um *user.Module,
	bm *backup.Module,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("server.web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc:  allowOrigin(econf.GetStringSlice("cors.allowedOrigins")),
	}))
	res.Use(middleware.NewMetricsBuilder("resale", "web").Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	um.Hdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	um.Hdl.PrivateRoutes(res.Engine)
	pm.Hdl.PrivateRoutes(res.Engine)
	cm.Hdl.PrivateRoutes(res.Engine)
	om.Hdl.PrivateRoutes(res.Engine)
	bm.Hdl.PrivateRoutes(res.Engine)
	return res
}

func allowOrigin(domains []string) func(origin string) bool {
	return func(origin string) bool {
		if strings.HasPrefix(origin, "http://localhost") {
			return true
		}
		return slice.Contains(domains, origin)
	}
}
