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
	"context"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/resale/internal/user"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
)

// InitUserModule 启动的时候确保管理员账号存在，并且把旧的明文密码转成 bcrypt
func InitUserModule(db *egorm.Component, ec ecache.Cache) *user.Module {
	type AdminConfig struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		FullName string `yaml:"fullName"`
	}
	cfg := AdminConfig{
		Username: "admin",
		Password: "admin123",
		FullName: "Administrator",
	}
	// 没有配置的时候使用默认值
	var err error
	if econf.Get("user.admin") != nil {
		err = econf.UnmarshalKey("user.admin", &cfg)
	}
	if err != nil {
		panic(err)
	}

	m := user.InitModule(db, ec)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = m.Svc.EnsureAdmin(ctx, user.User{
		Username: cfg.Username,
		Password: cfg.Password,
		FullName: cfg.FullName,
	})
	if err != nil {
		panic(err)
	}
	cnt, err := m.Svc.MigrateLegacyPasswords(ctx)
	if err != nil {
		panic(err)
	}
	if cnt > 0 {
		elog.DefaultLogger.Info("迁移明文密码", elog.Int("count", cnt))
	}
	return m
}
