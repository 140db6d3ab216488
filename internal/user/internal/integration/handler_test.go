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

//go:build e2e

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/resale/internal/test"
	testioc "github.com/ecodeclub/resale/internal/test/ioc"
	"github.com/ecodeclub/resale/internal/user"
	"github.com/ecodeclub/resale/internal/user/internal/errs"
	"github.com/ecodeclub/resale/internal/user/internal/repository/dao"
	"github.com/ecodeclub/resale/internal/user/internal/web"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
	svc    user.UserService
	uid    int64
}

func (s *HandlerTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	m := user.InitModule(s.db, testioc.InitCache())
	s.svc = m.Svc

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	m.Hdl.PublicRoutes(server.Engine)
	server.Use(func(ctx *gin.Context) {
		ctx.Set("_session", session.NewMemorySession(session.Claims{
			Uid: s.uid,
		}))
	})
	m.Hdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *HandlerTestSuite) SetupTest() {
	// 模拟一个还没有迁移的明文密码账号
	err := s.db.Create(&dao.User{Username: "legacy", Password: "legacy123"}).Error
	require.NoError(s.T(), err)
	err = s.svc.EnsureAdmin(context.Background(), user.User{Username: "admin", Password: "admin123", FullName: "Admin"})
	require.NoError(s.T(), err)
	cnt, err := s.svc.MigrateLegacyPasswords(context.Background())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, cnt)
}

func (s *HandlerTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `users`").Error
	require.NoError(s.T(), err)
}

func (s *HandlerTestSuite) TearDownSuite() {
	err := s.db.Exec("DROP TABLE `users`").Error
	require.NoError(s.T(), err)
}

func (s *HandlerTestSuite) TestLogin() {
	testCases := []struct {
		name     string
		req      web.LoginReq
		wantCode int
		wantName string
	}{
		{name: "管理员登录", req: web.LoginReq{Username: "admin", Password: "admin123"}, wantName: "admin"},
		{name: "迁移之后的账号可以登录", req: web.LoginReq{Username: "legacy", Password: "legacy123"}, wantName: "legacy"},
		{name: "密码错误", req: web.LoginReq{Username: "admin", Password: "123"}, wantCode: errs.InvalidCredentialsError.Code},
		{name: "用户不存在", req: web.LoginReq{Username: "nobody", Password: "123"}, wantCode: errs.InvalidCredentialsError.Code},
	}
	for _, tc := range testCases {
		s.T().Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/users/login", iox.NewJSONReader(tc.req))
			require.NoError(t, err)
			req.Header.Set("content-type", "application/json")
			recorder := test.NewJSONResponseRecorder[web.Profile]()
			s.server.ServeHTTP(recorder, req)
			require.Equal(t, 200, recorder.Code)
			res := recorder.MustScan()
			assert.Equal(t, tc.wantCode, res.Code)
			assert.Equal(t, tc.wantName, res.Data.Username)
		})
	}
}

func (s *HandlerTestSuite) TestProfileAndPassword() {
	admin, err := s.svc.Login(context.Background(), "admin", "admin123")
	require.NoError(s.T(), err)
	s.uid = admin.ID

	edit := s.post("/users/profile", web.EditReq{FullName: "Nguyễn Quản Trị"})
	require.Equal(s.T(), 0, edit.Code)

	req, err := http.NewRequest(http.MethodGet, "/users/profile", nil)
	require.NoError(s.T(), err)
	recorder := test.NewJSONResponseRecorder[web.Profile]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(s.T(), 200, recorder.Code)
	assert.Equal(s.T(), "Nguyễn Quản Trị", recorder.MustScan().Data.FullName)

	mismatch := s.post("/users/password", web.ChangePasswordReq{OldPassword: "admin123", NewPassword: "a", Confirm: "b"})
	assert.Equal(s.T(), errs.PasswordMismatchError.Code, mismatch.Code)
	wrongOld := s.post("/users/password", web.ChangePasswordReq{OldPassword: "x", NewPassword: "a", Confirm: "a"})
	assert.Equal(s.T(), errs.InvalidCredentialsError.Code, wrongOld.Code)
	ok := s.post("/users/password", web.ChangePasswordReq{OldPassword: "admin123", NewPassword: "secret", Confirm: "secret"})
	require.Equal(s.T(), 0, ok.Code)
	_, err = s.svc.Login(context.Background(), "admin", "secret")
	assert.NoError(s.T(), err)
}

func (s *HandlerTestSuite) post(path string, body any) test.Result[any] {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[any]()
	s.server.ServeHTTP(recorder, req)
	require.Equal(s.T(), 200, recorder.Code)
	return recorder.MustScan()
}

func TestUserHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
