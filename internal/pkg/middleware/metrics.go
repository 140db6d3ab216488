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
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsBuilder struct {
	Namespace string
	Subsystem string
	// 默认注册到 prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
}

func NewMetricsBuilder(namespace, subsystem string) *MetricsBuilder {
	return &MetricsBuilder{
		Namespace:  namespace,
		Subsystem:  subsystem,
		Registerer: prometheus.DefaultRegisterer,
	}
}

func (b *MetricsBuilder) Build() gin.HandlerFunc {
	labels := []string{"method", "pattern", "status"}
	factory := promauto.With(b.Registerer)
	summaryVec := factory.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      "http_response_seconds",
		Help:      "HTTP 响应时间",
		Objectives: map[float64]float64{
			0.5:  0.05,
			0.9:  0.01,
			0.99: 0.001,
		},
	}, labels)
	counterVec := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP 请求数",
	}, labels)
	activeGauge := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: b.Namespace,
		Subsystem: b.Subsystem,
		Name:      "http_active_requests",
		Help:      "正在处理的 HTTP 请求数",
	})
	return func(ctx *gin.Context) {
		start := time.Now()
		activeGauge.Inc()
		defer func() {
			activeGauge.Dec()
			// 404 的时候没有路由模板，统一归到一起，避免标签爆炸
			pattern := ctx.FullPath()
			if pattern == "" {
				pattern = "unknown"
			}
			lvs := []string{ctx.Request.Method, pattern, strconv.Itoa(ctx.Writer.Status())}
			summaryVec.WithLabelValues(lvs...).Observe(time.Since(start).Seconds())
			counterVec.WithLabelValues(lvs...).Inc()
		}()
		ctx.Next()
	}
}
