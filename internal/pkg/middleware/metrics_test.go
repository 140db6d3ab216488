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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsBuilder_Build(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	builder := NewMetricsBuilder("resale", "web")
	builder.Registerer = reg

	server := gin.New()
	server.Use(builder.Build())
	server.GET("/order/:sn", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})

	for i := 0; i < 3; i++ {
		req, err := http.NewRequest(http.MethodGet, "/order/DH123", nil)
		require.NoError(t, err)
		server.ServeHTTP(httptest.NewRecorder(), req)
	}
	req, err := http.NewRequest(http.MethodGet, "/not-found", nil)
	require.NoError(t, err)
	server.ServeHTTP(httptest.NewRecorder(), req)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "resale_web_http_requests_total")
	assert.Contains(t, names, "resale_web_http_response_seconds")
	assert.Contains(t, names, "resale_web_http_active_requests")

	n, err := testutil.GatherAndCount(reg, "resale_web_http_requests_total")
	require.NoError(t, err)
	// /order/:sn 和 unknown 两组标签
	assert.Equal(t, 2, n)
}
