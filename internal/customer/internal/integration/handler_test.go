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
	"net/http"
	"testing"

	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/resale/internal/customer"
	"github.com/ecodeclub/resale/internal/customer/internal/errs"
	"github.com/ecodeclub/resale/internal/customer/internal/web"
	"github.com/ecodeclub/resale/internal/pkg/sequencenumber"
	"github.com/ecodeclub/resale/internal/pkg/snowflake"
	"github.com/ecodeclub/resale/internal/test"
	testioc "github.com/ecodeclub/resale/internal/test/ioc"
	"github.com/ego-component/egorm"
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
}

func (s *HandlerTestSuite) SetupSuite() {
	db := testioc.InitDB()
	ec := testioc.InitCache()
	sf, err := snowflake.NewGenerator(4)
	require.NoError(s.T(), err)
	cm := customer.InitModule(db, ec, sequencenumber.NewGenerator(sf))

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	cm.Hdl.PrivateRoutes(server.Engine)
	s.server = server
	s.db = db
}

func (s *HandlerTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `customers`").Error
	require.NoError(s.T(), err)
}

func (s *HandlerTestSuite) TearDownSuite() {
	err := s.db.Exec("DROP TABLE `customers`").Error
	require.NoError(s.T(), err)
}

func post[T any](s *HandlerTestSuite, path string, req any) test.Result[T] {
	httpReq, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(req))
	require.NoError(s.T(), err)
	httpReq.Header.Set("content-type", "application/json")
	recorder := test.NewJSONResponseRecorder[T]()
	s.server.ServeHTTP(recorder, httpReq)
	require.Equal(s.T(), 200, recorder.Code)
	return recorder.MustScan()
}

func (s *HandlerTestSuite) save(c web.Customer) test.Result[string] {
	return post[string](s, "/customer/save", web.SaveReq{Customer: c})
}

func (s *HandlerTestSuite) TestSave() {
	res := s.save(web.Customer{Name: "Nguyễn Văn A", Phone: " 0901234567 "})
	require.Equal(s.T(), 0, res.Code)
	sn := res.Data
	assert.NotEmpty(s.T(), sn)

	detail := post[web.Customer](s, "/customer/detail", web.SNReq{SN: sn})
	require.Equal(s.T(), 0, detail.Code)
	assert.Equal(s.T(), "0901234567", detail.Data.Phone)

	// 修改之后缓存要失效
	res = s.save(web.Customer{SN: sn, Name: "Nguyễn Văn An", Phone: "0901234567", Email: "an@example.com"})
	require.Equal(s.T(), 0, res.Code)
	detail = post[web.Customer](s, "/customer/detail", web.SNReq{SN: sn})
	assert.Equal(s.T(), "Nguyễn Văn An", detail.Data.Name)
	assert.Equal(s.T(), "an@example.com", detail.Data.Email)

	res = s.save(web.Customer{Name: "Trần Thị B", Phone: "0901234567"})
	assert.Equal(s.T(), errs.DuplicatePhoneError.Code, res.Code)

	res = s.save(web.Customer{Name: "Trần Thị B"})
	assert.Equal(s.T(), errs.InvalidCustomerError.Code, res.Code)
}

func (s *HandlerTestSuite) TestList() {
	for _, c := range []web.Customer{
		{Name: "Nguyễn Văn A", Phone: "0901111111"},
		{Name: "Trần Thị B", Phone: "0902222222"},
		{Name: "Lê Văn C", Phone: "0903333333"},
	} {
		require.Equal(s.T(), 0, s.save(c).Code)
	}

	res := post[web.ListResp](s, "/customer/list", web.ListReq{Limit: 2})
	require.Equal(s.T(), 0, res.Code)
	assert.Equal(s.T(), int64(3), res.Data.Total)
	assert.Len(s.T(), res.Data.Customers, 2)

	res = post[web.ListResp](s, "/customer/list", web.ListReq{Search: "0902"})
	require.Equal(s.T(), 0, res.Code)
	assert.Equal(s.T(), int64(1), res.Data.Total)
	require.Len(s.T(), res.Data.Customers, 1)
	assert.Equal(s.T(), "Trần Thị B", res.Data.Customers[0].Name)
}

func (s *HandlerTestSuite) TestDelete() {
	res := s.save(web.Customer{Name: "Nguyễn Văn A", Phone: "0901234567"})
	require.Equal(s.T(), 0, res.Code)

	del := post[any](s, "/customer/delete", web.SNReq{SN: res.Data})
	assert.Equal(s.T(), 0, del.Code)

	detail := post[any](s, "/customer/detail", web.SNReq{SN: res.Data})
	assert.Equal(s.T(), errs.CustomerNotFoundError.Code, detail.Code)
}

func TestHandler(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
